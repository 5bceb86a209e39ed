package handler

import (
	"net/http"

	"github.com/eventz-dev/eventz/internal/api"
	mw "github.com/eventz-dev/eventz/internal/middleware"
	"github.com/eventz-dev/eventz/internal/utils"
)

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    token,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, err := h.identity.Register(r.Context(), mw.GetSession(r), body.Username, body.Password, body.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.AuthResponse{User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.identity.Login(r.Context(), body.Username, body.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.setSessionCookie(w, token, int(h.cfg.JwtTTL().Seconds()))

	writeJSON(w, api.AuthResponse{User: user})
}

func (h *Handler) WalletLogin(w http.ResponseWriter, r *http.Request) {
	var body api.WalletLoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	user, token, err := h.identity.WalletLogin(r.Context(), body.WalletAddress, body.Email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	h.setSessionCookie(w, token, int(h.cfg.JwtTTL().Seconds()))

	writeJSON(w, api.AuthResponse{User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSessionCookie(w, "", -1)
	w.WriteHeader(http.StatusOK)
}
