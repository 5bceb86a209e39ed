package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eventz-dev/eventz/internal/api"
	mw "github.com/eventz-dev/eventz/internal/middleware"
	"github.com/eventz-dev/eventz/internal/utils"
)

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.identity.Users(r.Context(), mw.GetSession(r))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.UserListResponse{Users: users})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body api.UpdateUserRequest
	if err := utils.DecodeStrict(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.identity.UpdateUser(r.Context(), mw.GetSession(r), id, body.UserPatch); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.identity.DeleteUser(r.Context(), mw.GetSession(r), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
