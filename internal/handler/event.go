package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventz-dev/eventz/internal/api"
	"github.com/eventz-dev/eventz/internal/domain"
	mw "github.com/eventz-dev/eventz/internal/middleware"
	"github.com/eventz-dev/eventz/internal/middleware/metrics"
	"github.com/eventz-dev/eventz/internal/utils"
)

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.events.ListEvents(r.Context())

	response := api.EventListResponse{Events: make([]api.EventResponse, len(events))}
	for i, ev := range events {
		response.Events[i] = api.EventResponse{Event: ev}
	}
	writeJSON(w, response)
}

// GetActiveEvent is the landing payload. It never returns an error body: the
// service degrades to the fallback event instead.
func (h *Handler) GetActiveEvent(w http.ResponseWriter, r *http.Request) {
	ev := h.events.GetActiveEvent(r.Context())
	if ev.Id == domain.SentinelEventID {
		metrics.FallbackServed()
	}

	writeJSON(w, api.EventResponse{Event: ev, HeroHtml: h.renderer.HeroHTML(ev.HeroText)})
}

func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ev, err := h.events.GetEvent(r.Context(), id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.EventResponse{Event: ev})
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var body api.CreateEventRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ev, err := h.events.CreateEvent(r.Context(), mw.GetSession(r), body.Draft())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.EventResponse{Event: ev})
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body api.UpdateEventRequest
	if err := utils.DecodeStrict(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.events.UpdateEvent(r.Context(), mw.GetSession(r), id, body.EventPatch); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.events.DeleteEvent(r.Context(), mw.GetSession(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ActivateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.events.SetActiveEvent(r.Context(), mw.GetSession(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
