package service

import (
	"context"
	"strings"

	"github.com/eventz-dev/eventz/internal/domain"
	"github.com/eventz-dev/eventz/internal/errors"
	"github.com/eventz-dev/eventz/internal/logger"
)

// to mock service in tests
type EventService interface {
	ListEvents(ctx context.Context) []domain.Event
	GetActiveEvent(ctx context.Context) domain.Event
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	CreateEvent(ctx context.Context, sess domain.Session, draft domain.EventDraft) (domain.Event, error)
	UpdateEvent(ctx context.Context, sess domain.Session, id string, patch domain.EventPatch) error
	DeleteEvent(ctx context.Context, sess domain.Session, id string) error
	SetActiveEvent(ctx context.Context, sess domain.Session, id string) error
}

type Events struct {
	storage EventStorage
}

// EventStorage is the per-document contract the collection offers. There are
// no cross-document transactions; every method touches at most one document
// except the pure queries.
type EventStorage interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	Event(ctx context.Context, id string) (domain.Event, error)
	DefaultEvents(ctx context.Context) ([]domain.Event, error)
	InsertEvent(ctx context.Context, ev domain.Event) (domain.Event, error)
	PatchEvent(ctx context.Context, id string, patch domain.EventPatch) error
	RemoveEvent(ctx context.Context, id string) error
}

func NewEvents(storage EventStorage) *Events {
	return &Events{storage}
}

func requireAdmin(sess domain.Session) error {
	if !sess.Admin {
		return errors.NewForbidden("Admin privileges required")
	}
	return nil
}

// ListEvents never fails: on an empty collection or a store error it returns
// the one-element fallback list so the landing page always has content.
func (e *Events) ListEvents(ctx context.Context) []domain.Event {
	events, err := e.storage.ListEvents(ctx)
	if err != nil {
		logger.Log.Error("listing events failed, serving fallback", "error", err)
		return []domain.Event{domain.FallbackEvent()}
	}
	if len(events) == 0 {
		return []domain.Event{domain.FallbackEvent()}
	}
	return events
}

// GetActiveEvent returns the single default event. When the collection is
// non-empty but no event carries the flag (possible after a partial failure),
// it promotes the newest event and persists that promotion before returning.
// The read path never fails; it degrades to the fallback event.
func (e *Events) GetActiveEvent(ctx context.Context) domain.Event {
	defaults, err := e.storage.DefaultEvents(ctx)
	if err != nil {
		logger.Log.Error("querying default event failed, serving fallback", "error", err)
		return domain.FallbackEvent()
	}
	if len(defaults) > 0 {
		// Tolerant of a transient duplicate-default state: first match wins.
		return defaults[0]
	}

	events, err := e.storage.ListEvents(ctx)
	if err != nil {
		logger.Log.Error("listing events failed, serving fallback", "error", err)
		return domain.FallbackEvent()
	}
	if len(events) == 0 {
		return domain.FallbackEvent()
	}

	// Repair pass: zero defaults among non-empty results.
	newest := events[0]
	flag := true
	if err := e.storage.PatchEvent(ctx, newest.Id, domain.EventPatch{IsDefault: &flag}); err != nil {
		logger.Log.Warn("failed to persist default promotion", "id", newest.Id, "error", err)
		return newest
	}
	newest.IsDefault = true
	return newest
}

// GetEvent is a plain read used by the preview page.
func (e *Events) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	if id == domain.SentinelEventID {
		return domain.FallbackEvent(), nil
	}
	return e.storage.Event(ctx, id)
}

func (e *Events) CreateEvent(ctx context.Context, sess domain.Session, draft domain.EventDraft) (domain.Event, error) {
	if err := requireAdmin(sess); err != nil {
		return domain.Event{}, err
	}
	ev, err := draftToEvent(draft)
	if err != nil {
		return domain.Event{}, err
	}

	if ev.IsDefault {
		if err := e.clearDefaults(ctx, ""); err != nil {
			return domain.Event{}, err
		}
	}
	return e.storage.InsertEvent(ctx, ev)
}

func (e *Events) UpdateEvent(ctx context.Context, sess domain.Session, id string, patch domain.EventPatch) error {
	// Sentinel protection applies regardless of who is calling.
	if id == domain.SentinelEventID {
		return errors.NewImmutable("Cannot update the default fallback event. Please create a new event instead.")
	}
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if err := validatePatch(patch); err != nil {
		return err
	}

	if patch.IsDefault != nil && *patch.IsDefault {
		if err := e.clearDefaults(ctx, id); err != nil {
			return err
		}
	}
	return e.storage.PatchEvent(ctx, id, patch)
}

func (e *Events) DeleteEvent(ctx context.Context, sess domain.Session, id string) error {
	if id == domain.SentinelEventID {
		return errors.NewImmutable("Cannot delete the default fallback event.")
	}
	if err := requireAdmin(sess); err != nil {
		return err
	}

	ev, err := e.storage.Event(ctx, id)
	if err != nil {
		return err
	}
	if err := e.storage.RemoveEvent(ctx, id); err != nil {
		return err
	}

	if !ev.IsDefault {
		return nil
	}
	// The deleted event was the default: promote the most recently created
	// survivor. An empty collection needs no promotion; reads serve the
	// fallback event instead.
	remaining, err := e.storage.ListEvents(ctx)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}
	flag := true
	return e.storage.PatchEvent(ctx, remaining[0].Id, domain.EventPatch{IsDefault: &flag})
}

func (e *Events) SetActiveEvent(ctx context.Context, sess domain.Session, id string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	return e.setDefault(ctx, id)
}

// setDefault flips the default flag to the target via a read-then-write-many
// sequence. The store offers only per-document atomicity, so a failure
// mid-sequence (or a concurrent call) can leave zero or duplicate defaults;
// the error is surfaced as-is and the next GetActiveEvent repairs the state.
func (e *Events) setDefault(ctx context.Context, targetId string) error {
	if _, err := e.storage.Event(ctx, targetId); err != nil {
		return err
	}
	if err := e.clearDefaults(ctx, targetId); err != nil {
		return err
	}
	flag := true
	return e.storage.PatchEvent(ctx, targetId, domain.EventPatch{IsDefault: &flag})
}

// clearDefaults drops the default flag from every flagged event except the
// one named by exceptId ("" clears all).
func (e *Events) clearDefaults(ctx context.Context, exceptId string) error {
	defaults, err := e.storage.DefaultEvents(ctx)
	if err != nil {
		return err
	}
	flag := false
	for _, ev := range defaults {
		if ev.Id == exceptId {
			continue
		}
		if err := e.storage.PatchEvent(ctx, ev.Id, domain.EventPatch{IsDefault: &flag}); err != nil {
			return err
		}
	}
	return nil
}

func draftToEvent(draft domain.EventDraft) (domain.Event, error) {
	if strings.TrimSpace(draft.Name) == "" {
		return domain.Event{}, errors.NewValidation("Event name is required")
	}
	if strings.TrimSpace(draft.RedirectUrl) == "" {
		return domain.Event{}, errors.NewValidation("Redirect URL is required")
	}
	mode := draft.RedirectMode
	if mode == "" {
		mode = domain.RedirectManual
	}
	if mode != domain.RedirectAuto && mode != domain.RedirectManual {
		return domain.Event{}, errors.NewValidation("Redirect mode must be auto or manual")
	}
	delay := draft.AutoRedirectDelay
	if delay <= 0 {
		delay = domain.DefaultAutoRedirectDelay
	}

	return domain.Event{
		Name:              strings.TrimSpace(draft.Name),
		IsDefault:         draft.IsDefault,
		RedirectUrl:       draft.RedirectUrl,
		RedirectMode:      mode,
		AutoRedirectDelay: delay,
		HeroImage:         draft.HeroImage,
		HeroTitle:         draft.HeroTitle,
		HeroText:          draft.HeroText,
		HeroSlogan:        draft.HeroSlogan,
	}, nil
}

func validatePatch(patch domain.EventPatch) error {
	if patch.IsZero() {
		return errors.NewValidation("Patch changes nothing")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return errors.NewValidation("Event name cannot be empty")
	}
	if patch.RedirectUrl != nil && strings.TrimSpace(*patch.RedirectUrl) == "" {
		return errors.NewValidation("Redirect URL cannot be empty")
	}
	if patch.RedirectMode != nil && *patch.RedirectMode != domain.RedirectAuto && *patch.RedirectMode != domain.RedirectManual {
		return errors.NewValidation("Redirect mode must be auto or manual")
	}
	if patch.AutoRedirectDelay != nil && *patch.AutoRedirectDelay <= 0 {
		return errors.NewValidation("Auto redirect delay must be positive")
	}
	if patch.IsDefault != nil && !*patch.IsDefault {
		// Turning the flag off directly would leave zero defaults; the only
		// supported transition is promoting another event.
		return errors.NewValidation("Cannot unset the default flag directly; set another event as default instead")
	}
	return nil
}
