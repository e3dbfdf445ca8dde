package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studyplan/internal/modules/schedule/domain"
	scheduleout "studyplan/internal/modules/schedule/port/out"
	apperrors "studyplan/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const (
	dateLayout  = "2006-01-02"
	stampLayout = "2006-01-02T15:04:05Z07:00"
)

type SQLitePlanProjector struct {
	db *sql.DB
}

func NewSQLitePlanProjector(dbPath string) (*SQLitePlanProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create db dir: %v", apperrors.ErrStorage, err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", apperrors.ErrStorage, err)
	}
	db.SetMaxOpenConns(1)
	projector := &SQLitePlanProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ scheduleout.PlanProjector = (*SQLitePlanProjector)(nil)

func (s *SQLitePlanProjector) Close() error {
	return s.db.Close()
}

func (s *SQLitePlanProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS plan_meta (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  title TEXT NOT NULL,
  source TEXT NOT NULL,
  start_date TEXT NOT NULL,
  rest_day INTEGER NOT NULL,
  generated_at TEXT NOT NULL,
  sessions INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  position INTEGER NOT NULL,
  date TEXT NOT NULL,
  weekday TEXT NOT NULL,
  discipline TEXT NOT NULL,
  label TEXT NOT NULL,
  kind TEXT NOT NULL,
  duration TEXT NOT NULL,
  note TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS sessions_by_date ON sessions (date, position);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: create plan tables: %v", apperrors.ErrStorage, err)
	}
	return nil
}

// Replace swaps the stored plan for a new one in a single transaction.
func (s *SQLitePlanProjector) Replace(ctx context.Context, meta domain.PlanMeta, plan domain.Cronogram) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin replace: %v", apperrors.ErrStorage, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("%w: reset sessions: %v", apperrors.ErrStorage, err)
	}
	const metaStmt = `
INSERT INTO plan_meta (id, title, source, start_date, rest_day, generated_at, sessions)
VALUES (1, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  source=excluded.source,
  start_date=excluded.start_date,
  rest_day=excluded.rest_day,
  generated_at=excluded.generated_at,
  sessions=excluded.sessions;
`
	if _, err = tx.ExecContext(ctx, metaStmt,
		meta.Title,
		meta.Source,
		meta.Start.Format(dateLayout),
		int(meta.Rest),
		meta.GeneratedAt.UTC().Format(stampLayout),
		plan.Len(),
	); err != nil {
		return fmt.Errorf("%w: upsert plan meta: %v", apperrors.ErrStorage, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO sessions (id, position, date, weekday, discipline, label, kind, duration, note)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare session insert: %v", apperrors.ErrStorage, err)
	}
	defer stmt.Close()
	for i, session := range plan.Sessions {
		if _, err = stmt.ExecContext(ctx,
			session.ID,
			i,
			session.Date.Format(dateLayout),
			session.Weekday,
			session.Discipline,
			session.Label,
			string(session.Kind),
			session.Duration,
			session.Note,
		); err != nil {
			return fmt.Errorf("%w: insert session %q: %v", apperrors.ErrStorage, session.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit plan: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *SQLitePlanProjector) Load(ctx context.Context) (domain.PlanMeta, domain.Cronogram, error) {
	meta, err := s.loadMeta(ctx)
	if err != nil {
		return domain.PlanMeta{}, domain.Cronogram{}, err
	}
	sessions, err := s.query(ctx, `SELECT id, date, weekday, discipline, label, kind, duration, note FROM sessions ORDER BY position`)
	if err != nil {
		return domain.PlanMeta{}, domain.Cronogram{}, err
	}
	return meta, domain.Cronogram{Sessions: sessions}, nil
}

func (s *SQLitePlanProjector) ByDate(ctx context.Context, date time.Time) ([]domain.ScheduledSession, error) {
	if _, err := s.loadMeta(ctx); err != nil {
		return nil, err
	}
	return s.query(ctx, `SELECT id, date, weekday, discipline, label, kind, duration, note FROM sessions WHERE date = ? ORDER BY position`,
		domain.Civil(date).Format(dateLayout))
}

func (s *SQLitePlanProjector) loadMeta(ctx context.Context) (domain.PlanMeta, error) {
	var (
		meta               domain.PlanMeta
		start, generatedAt string
		rest               int
	)
	row := s.db.QueryRowContext(ctx, `SELECT title, source, start_date, rest_day, generated_at, sessions FROM plan_meta WHERE id = 1`)
	if err := row.Scan(&meta.Title, &meta.Source, &start, &rest, &generatedAt, &meta.Sessions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PlanMeta{}, apperrors.ErrNoPlan
		}
		return domain.PlanMeta{}, fmt.Errorf("%w: read plan meta: %v", apperrors.ErrStorage, err)
	}
	var err error
	if meta.Start, err = time.Parse(dateLayout, start); err != nil {
		return domain.PlanMeta{}, fmt.Errorf("%w: plan start date %q: %v", apperrors.ErrStorage, start, err)
	}
	if meta.GeneratedAt, err = time.Parse(stampLayout, generatedAt); err != nil {
		return domain.PlanMeta{}, fmt.Errorf("%w: plan timestamp %q: %v", apperrors.ErrStorage, generatedAt, err)
	}
	meta.Rest = time.Weekday(rest)
	return meta, nil
}

func (s *SQLitePlanProjector) query(ctx context.Context, q string, args ...any) ([]domain.ScheduledSession, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query sessions: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var out []domain.ScheduledSession
	for rows.Next() {
		var (
			session domain.ScheduledSession
			date    string
			kind    string
		)
		if err := rows.Scan(&session.ID, &date, &session.Weekday, &session.Discipline, &session.Label, &kind, &session.Duration, &session.Note); err != nil {
			return nil, fmt.Errorf("%w: scan session: %v", apperrors.ErrStorage, err)
		}
		if session.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: session %q date %q: %v", apperrors.ErrStorage, session.ID, date, err)
		}
		session.Kind = domain.Kind(kind)
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate sessions: %v", apperrors.ErrStorage, err)
	}
	return out, nil
}
