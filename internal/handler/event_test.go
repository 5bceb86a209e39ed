package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventz-dev/eventz/internal/api"
	"github.com/eventz-dev/eventz/internal/domain"
	internal_errors "github.com/eventz-dev/eventz/internal/errors"
	mw "github.com/eventz-dev/eventz/internal/middleware"
	"github.com/eventz-dev/eventz/internal/render"
)

type MockEventService struct {
	MockList      func(ctx context.Context) []domain.Event
	MockGetActive func(ctx context.Context) domain.Event
	MockGet       func(ctx context.Context, id string) (domain.Event, error)
	MockCreate    func(ctx context.Context, sess domain.Session, draft domain.EventDraft) (domain.Event, error)
	MockUpdate    func(ctx context.Context, sess domain.Session, id string, patch domain.EventPatch) error
	MockDelete    func(ctx context.Context, sess domain.Session, id string) error
	MockSetActive func(ctx context.Context, sess domain.Session, id string) error
}

func (m *MockEventService) ListEvents(ctx context.Context) []domain.Event {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return nil
}

func (m *MockEventService) GetActiveEvent(ctx context.Context) domain.Event {
	if m.MockGetActive != nil {
		return m.MockGetActive(ctx)
	}
	return domain.Event{}
}

func (m *MockEventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Event{}, nil
}

func (m *MockEventService) CreateEvent(ctx context.Context, sess domain.Session, draft domain.EventDraft) (domain.Event, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, sess, draft)
	}
	return domain.Event{}, nil
}

func (m *MockEventService) UpdateEvent(ctx context.Context, sess domain.Session, id string, patch domain.EventPatch) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(ctx, sess, id, patch)
	}
	return nil
}

func (m *MockEventService) DeleteEvent(ctx context.Context, sess domain.Session, id string) error {
	if m.MockDelete != nil {
		return m.MockDelete(ctx, sess, id)
	}
	return nil
}

func (m *MockEventService) SetActiveEvent(ctx context.Context, sess domain.Session, id string) error {
	if m.MockSetActive != nil {
		return m.MockSetActive(ctx, sess, id)
	}
	return nil
}

func eventRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/v1/events", h.ListEvents)
	r.Get("/v1/events/active", h.GetActiveEvent)
	r.Get("/v1/events/{id}", h.GetEvent)
	r.Post("/v1/events", h.CreateEvent)
	r.Patch("/v1/events/{id}", h.UpdateEvent)
	r.Delete("/v1/events/{id}", h.DeleteEvent)
	r.Post("/v1/events/{id}/activate", h.ActivateEvent)
	return r
}

func withSession(req *http.Request, sess domain.Session) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), mw.SessionKey, &sess))
}

func TestListEventsHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)

	h.events = &MockEventService{
		MockList: func(ctx context.Context) []domain.Event {
			return []domain.Event{{Id: "e1", Name: "Launch"}, {Id: "e2", Name: "Expo"}}
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var response api.EventListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response.Events, 2)
	assert.Equal(t, "e1", response.Events[0].Id)
}

func TestGetActiveEventHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)

	t.Run("renders hero text", func(t *testing.T) {
		h.events = &MockEventService{
			MockGetActive: func(ctx context.Context) domain.Event {
				return domain.Event{Id: "e1", HeroText: "Join **us**"}
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/events/active", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var response api.EventResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "e1", response.Id)
		assert.Contains(t, response.HeroHtml, "<strong>us</strong>")
	})

	t.Run("serves fallback without error body", func(t *testing.T) {
		h.events = &MockEventService{
			MockGetActive: func(ctx context.Context) domain.Event {
				return domain.FallbackEvent()
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/events/active", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var response api.EventResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, domain.SentinelEventID, response.Id)
	})
}

func TestGetEventHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)

	t.Run("found", func(t *testing.T) {
		h.events = &MockEventService{
			MockGet: func(ctx context.Context, id string) (domain.Event, error) {
				return domain.Event{Id: id, Name: "Launch"}, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/events/e1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h.events = &MockEventService{
			MockGet: func(ctx context.Context, id string) (domain.Event, error) {
				return domain.Event{}, internal_errors.NewNotFound("Event not found")
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/events/missing", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCreateEventHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)
	requestBody := []byte(`{"name": "Launch", "redirectUrl": "https://example.com"}`)

	t.Run("successful request", func(t *testing.T) {
		var gotDraft domain.EventDraft
		var gotSess domain.Session
		h.events = &MockEventService{
			MockCreate: func(ctx context.Context, sess domain.Session, draft domain.EventDraft) (domain.Event, error) {
				gotDraft, gotSess = draft, sess
				return domain.Event{Id: "e1", Name: draft.Name}, nil
			},
		}
		req := withSession(httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBuffer(requestBody)), domain.Session{UserId: "u1", Admin: true})
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Launch", gotDraft.Name)
		assert.True(t, gotSess.Admin)
	})

	t.Run("invalid request body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBuffer([]byte(`{invalid json::}`)))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing required fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBuffer([]byte(`{"name": "Launch"}`)))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service error", func(t *testing.T) {
		h.events = &MockEventService{
			MockCreate: func(ctx context.Context, sess domain.Session, draft domain.EventDraft) (domain.Event, error) {
				return domain.Event{}, internal_errors.NewForbidden("Admin privileges required")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBuffer(requestBody))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestUpdateEventHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)

	t.Run("successful request", func(t *testing.T) {
		var gotPatch domain.EventPatch
		h.events = &MockEventService{
			MockUpdate: func(ctx context.Context, sess domain.Session, id string, patch domain.EventPatch) error {
				gotPatch = patch
				return nil
			},
		}
		req := withSession(httptest.NewRequest(http.MethodPatch, "/v1/events/e1", bytes.NewBuffer([]byte(`{"name": "Renamed"}`))), domain.Session{Admin: true})
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotPatch.Name)
		assert.Equal(t, "Renamed", *gotPatch.Name)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/v1/events/e1", bytes.NewBuffer([]byte(`{"bogus": true}`)))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("sentinel is immutable", func(t *testing.T) {
		h.events = &MockEventService{
			MockUpdate: func(ctx context.Context, sess domain.Session, id string, patch domain.EventPatch) error {
				return internal_errors.NewImmutable("Cannot update the default fallback event. Please create a new event instead.")
			},
		}
		req := httptest.NewRequest(http.MethodPatch, "/v1/events/default", bytes.NewBuffer([]byte(`{"name": "Renamed"}`)))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestDeleteEventHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)

	t.Run("successful request", func(t *testing.T) {
		var gotId string
		h.events = &MockEventService{
			MockDelete: func(ctx context.Context, sess domain.Session, id string) error {
				gotId = id
				return nil
			},
		}
		req := withSession(httptest.NewRequest(http.MethodDelete, "/v1/events/e1", nil), domain.Session{Admin: true})
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "e1", gotId)
	})

	t.Run("sentinel is immutable", func(t *testing.T) {
		h.events = &MockEventService{
			MockDelete: func(ctx context.Context, sess domain.Session, id string) error {
				return internal_errors.NewImmutable("Cannot delete the default fallback event.")
			},
		}
		req := httptest.NewRequest(http.MethodDelete, "/v1/events/default", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestActivateEventHandler(t *testing.T) {
	h := &Handler{renderer: render.New()}
	router := eventRouter(h)

	t.Run("successful request", func(t *testing.T) {
		var gotId string
		h.events = &MockEventService{
			MockSetActive: func(ctx context.Context, sess domain.Session, id string) error {
				gotId = id
				return nil
			},
		}
		req := withSession(httptest.NewRequest(http.MethodPost, "/v1/events/e2/activate", nil), domain.Session{Admin: true})
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "e2", gotId)
	})

	t.Run("target missing", func(t *testing.T) {
		h.events = &MockEventService{
			MockSetActive: func(ctx context.Context, sess domain.Session, id string) error {
				return internal_errors.NewNotFound("Event not found")
			},
		}
		req := httptest.NewRequest(http.MethodPost, "/v1/events/missing/activate", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
