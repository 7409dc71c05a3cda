package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/cadence/internal/db"
)

// Session is the last playback position for one media kind.
type Session struct {
	Kind      string // "audio" or "video"
	BasePath  string
	LastPath  string
	Position  time.Duration
	UpdatedAt time.Time
}

func getSession(db *sql.DB, kind string) (*Session, error) {
	row := db.QueryRow(`
		SELECT base_path, last_path, position_ms, updated_at
		FROM sessions WHERE kind = ?
	`, kind)

	s := Session{Kind: kind}
	var lastPath sql.NullString
	var positionMS sql.NullInt64
	var updatedAt int64

	err := row.Scan(&s.BasePath, &lastPath, &positionMS, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is valid on first run
	}
	if err != nil {
		return nil, err
	}

	s.LastPath = dbutil.NullStringValue(lastPath)
	s.Position = time.Duration(dbutil.NullInt64Value(positionMS)) * time.Millisecond
	s.UpdatedAt = time.UnixMilli(updatedAt)
	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := db.Exec(`
		INSERT INTO sessions (kind, base_path, last_path, position_ms, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET
			base_path = excluded.base_path,
			last_path = excluded.last_path,
			position_ms = excluded.position_ms,
			updated_at = excluded.updated_at
	`, s.Kind, s.BasePath, dbutil.NullString(s.LastPath), s.Position.Milliseconds(), updatedAt.UnixMilli())

	return err
}
