package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studyplan/internal/modules/schedule/domain"
	scheduleout "studyplan/internal/modules/schedule/port/out"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/platform/markdown"
)

// MarkdownExporter writes the plan as a weekly agenda note. Re-exporting into
// an existing note only rewrites its frontmatter keys and the schedule block.
type MarkdownExporter struct{}

func NewMarkdownExporter() scheduleout.Exporter {
	return MarkdownExporter{}
}

func (MarkdownExporter) Format() string { return "markdown" }

func (MarkdownExporter) Extensions() []string { return []string{".md", ".markdown"} }

func (MarkdownExporter) Export(_ context.Context, path string, doc domain.ExportDocument) error {
	existing := ""
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing = string(raw)
	case errors.Is(err, os.ErrNotExist):
		existing = "# " + noteTitle(doc.Meta) + "\n"
	default:
		return fmt.Errorf("%w: read note: %v", apperrors.ErrStorage, err)
	}

	content, err := markdown.UpdateNote(existing, noteMeta(doc), renderAgenda(doc))
	if err != nil {
		return fmt.Errorf("%w: update note: %v", apperrors.ErrInvalidInput, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create export dir: %v", apperrors.ErrStorage, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("%w: write note: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func noteTitle(meta domain.PlanMeta) string {
	if strings.TrimSpace(meta.Title) == "" {
		return "Study plan"
	}
	return meta.Title
}

func noteMeta(doc domain.ExportDocument) map[string]any {
	summary := doc.Plan.Summary()
	meta := map[string]any{
		"title":    noteTitle(doc.Meta),
		"source":   doc.Meta.Source,
		"start":    doc.Meta.Start.Format(domain.ExportDateLayout),
		"rest_day": doc.Meta.Rest.String(),
		"sessions": summary.Total,
		"weeks":    summary.Weeks,
	}
	if summary.Total > 0 {
		meta["end"] = summary.Last.Format(domain.ExportDateLayout)
	}
	if doc.WithProgress {
		done := 0
		for _, id := range doc.Plan.IDs() {
			if doc.IsDone(id) {
				done++
			}
		}
		meta["done"] = done
	}
	return meta
}

func renderAgenda(doc domain.ExportDocument) string {
	if doc.Plan.Len() == 0 {
		return "_No sessions scheduled._"
	}
	var b strings.Builder
	for week := 1; week <= doc.Plan.Weeks(); week++ {
		if week > 1 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## Week %d\n\n", week)
		for _, s := range doc.Plan.Page(week) {
			box := " "
			if doc.WithProgress && doc.IsDone(s.ID) {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s %s · **%s** · %s", box, s.Date.Format(domain.ExportDateLayout), s.Weekday, s.Discipline, s.Label)
			if s.Note != "" {
				fmt.Fprintf(&b, " · _%s_", s.Note)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
