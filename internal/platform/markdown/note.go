package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ScheduleStart = "<!-- studyplan:schedule:start -->"
	ScheduleEnd   = "<!-- studyplan:schedule:end -->"

	fence = "---\n"
)

// Note is a markdown document split into YAML frontmatter and body.
type Note struct {
	Meta map[string]any
	Body string
}

// Parse splits content into a Note. Content that does not open with a fence
// is all body.
func Parse(content string) (Note, error) {
	if !strings.HasPrefix(content, fence) {
		return Note{Meta: map[string]any{}, Body: content}, nil
	}
	rest := content[len(fence):]
	raw, body, ok := "", "", false
	if strings.HasPrefix(rest, fence) {
		body, ok = rest[len(fence):], true
	} else {
		raw, body, ok = strings.Cut(rest, "\n"+fence)
	}
	if !ok {
		return Note{}, fmt.Errorf("invalid frontmatter: missing closing fence")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return Note{}, fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return Note{Meta: meta, Body: strings.TrimPrefix(body, "\n")}, nil
}

func (n Note) Render() (string, error) {
	meta := n.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	raw, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString(fence)
	b.Write(raw)
	b.WriteString(fence)
	b.WriteString("\n")
	b.WriteString(n.Body)
	return b.String(), nil
}

// ReplaceBlock swaps the text between the markers for generated, appending a
// fresh block when the markers are missing. Text outside the block is kept.
func (n *Note) ReplaceBlock(startMarker, endMarker, generated string) {
	block := startMarker + "\n" + strings.TrimRight(generated, "\n") + "\n" + endMarker
	start := strings.Index(n.Body, startMarker)
	end := strings.Index(n.Body, endMarker)
	switch {
	case start >= 0 && end > start:
		n.Body = n.Body[:start] + block + n.Body[end+len(endMarker):]
	case strings.TrimSpace(n.Body) == "":
		n.Body = block + "\n"
	case strings.HasSuffix(n.Body, "\n"):
		n.Body += "\n" + block + "\n"
	default:
		n.Body += "\n\n" + block + "\n"
	}
}

// UpdateNote rewrites existing: keys in meta override its frontmatter and the
// schedule block is replaced.
func UpdateNote(existing string, meta map[string]any, block string) (string, error) {
	note, err := Parse(existing)
	if err != nil {
		return "", err
	}
	for k, v := range meta {
		note.Meta[k] = v
	}
	note.ReplaceBlock(ScheduleStart, ScheduleEnd, block)
	return note.Render()
}
