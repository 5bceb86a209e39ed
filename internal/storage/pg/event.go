package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eventz-dev/eventz/internal/domain"
	internal_errors "github.com/eventz-dev/eventz/internal/errors"
)

const eventColumns = `id, name, is_default, redirect_url, redirect_mode, auto_redirect_delay,
	hero_image, hero_title, hero_text, hero_slogan, created_at, updated_at`

// Listing order is newest-created first, insertion order breaking ties.
// The delete-promotion tie-break depends on this ordering.
const eventOrder = `ORDER BY created_at DESC, seq DESC`

func scanEvent(row interface{ Scan(...any) error }) (domain.Event, error) {
	var ev domain.Event
	err := row.Scan(&ev.Id, &ev.Name, &ev.IsDefault, &ev.RedirectUrl, &ev.RedirectMode,
		&ev.AutoRedirectDelay, &ev.HeroImage, &ev.HeroTitle, &ev.HeroText, &ev.HeroSlogan,
		&ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

func (s *Storage) queryEvents(ctx context.Context, op, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, internal_errors.NewStore(op, err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, internal_errors.NewStore(op, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, internal_errors.NewStore(op, err)
	}
	return events, nil
}

// ListEvents returns all events, newest createdAt first.
func (s *Storage) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.queryEvents(ctx, "list events", `SELECT `+eventColumns+` FROM events `+eventOrder)
}

// Event fetches a single event by id.
func (s *Storage) Event(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, internal_errors.NewNotFound("Event not found")
		}
		return domain.Event{}, internal_errors.NewStore("get event", err)
	}
	return ev, nil
}

// DefaultEvents returns every event currently flagged as default. More than
// one element means the invariant was violated by a partial failure and a
// repair is due.
func (s *Storage) DefaultEvents(ctx context.Context) ([]domain.Event, error) {
	return s.queryEvents(ctx, "query default events",
		`SELECT `+eventColumns+` FROM events WHERE is_default `+eventOrder)
}

// DefaultEvent returns the flagged default, or the newest event as a
// best-effort substitute when no flag is set. NotFound only when the
// collection is empty.
func (s *Storage) DefaultEvent(ctx context.Context) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY is_default DESC, created_at DESC, seq DESC LIMIT 1`)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, internal_errors.NewNotFound("No events")
		}
		return domain.Event{}, internal_errors.NewStore("get default event", err)
	}
	return ev, nil
}

// InsertEvent persists a new event, assigning the id and both timestamps.
func (s *Storage) InsertEvent(ctx context.Context, ev domain.Event) (domain.Event, error) {
	ev.Id = uuid.NewString()
	now := time.Now().UTC()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (id, name, is_default, redirect_url, redirect_mode, auto_redirect_delay,
			hero_image, hero_title, hero_text, hero_slogan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		ev.Id, ev.Name, ev.IsDefault, ev.RedirectUrl, ev.RedirectMode, ev.AutoRedirectDelay,
		ev.HeroImage, ev.HeroTitle, ev.HeroText, ev.HeroSlogan, ev.CreatedAt, ev.UpdatedAt)
	if err != nil {
		return domain.Event{}, internal_errors.NewStore("insert event", err)
	}
	return ev, nil
}

// PatchEvent applies a partial update to one document and refreshes
// updated_at. Only fields named on EventPatch can ever be written.
func (s *Storage) PatchEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	set := "updated_at = $1"
	args := []any{time.Now().UTC()}

	add := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.IsDefault != nil {
		add("is_default", *patch.IsDefault)
	}
	if patch.RedirectUrl != nil {
		add("redirect_url", *patch.RedirectUrl)
	}
	if patch.RedirectMode != nil {
		add("redirect_mode", string(*patch.RedirectMode))
	}
	if patch.AutoRedirectDelay != nil {
		add("auto_redirect_delay", *patch.AutoRedirectDelay)
	}
	if patch.HeroImage != nil {
		add("hero_image", *patch.HeroImage)
	}
	if patch.HeroTitle != nil {
		add("hero_title", *patch.HeroTitle)
	}
	if patch.HeroText != nil {
		add("hero_text", *patch.HeroText)
	}
	if patch.HeroSlogan != nil {
		add("hero_slogan", *patch.HeroSlogan)
	}

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE events SET %s WHERE id = $%d", set, len(args)), args...)
	if err != nil {
		return internal_errors.NewStore("patch event", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return internal_errors.NewStore("patch event", err)
	}
	if affected == 0 {
		return internal_errors.NewNotFound("Event not found")
	}
	return nil
}

// RemoveEvent deletes a single event by id.
func (s *Storage) RemoveEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return internal_errors.NewStore("remove event", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return internal_errors.NewStore("remove event", err)
	}
	if affected == 0 {
		return internal_errors.NewNotFound("Event not found")
	}
	return nil
}
