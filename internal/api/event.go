package api

import (
	"github.com/eventz-dev/eventz/internal/domain"
)

// Request DTOs

type CreateEventRequest struct {
	Name              string              `json:"name" validate:"required"`
	IsDefault         bool                `json:"isDefault"`
	RedirectUrl       string              `json:"redirectUrl" validate:"required"`
	RedirectMode      domain.RedirectMode `json:"redirectMode" validate:"omitempty,oneof=auto manual"`
	AutoRedirectDelay int                 `json:"autoRedirectDelay" validate:"omitempty,gt=0"`
	HeroImage         string              `json:"heroImage"`
	HeroTitle         string              `json:"heroTitle"`
	HeroText          string              `json:"heroText"`
	HeroSlogan        string              `json:"heroSlogan"`
}

func (r CreateEventRequest) Draft() domain.EventDraft {
	return domain.EventDraft{
		Name:              r.Name,
		IsDefault:         r.IsDefault,
		RedirectUrl:       r.RedirectUrl,
		RedirectMode:      r.RedirectMode,
		AutoRedirectDelay: r.AutoRedirectDelay,
		HeroImage:         r.HeroImage,
		HeroTitle:         r.HeroTitle,
		HeroText:          r.HeroText,
		HeroSlogan:        r.HeroSlogan,
	}
}

// UpdateEventRequest is decoded with unknown fields rejected so the patch
// surface stays closed.
type UpdateEventRequest struct {
	domain.EventPatch
}

// Response DTOs

type EventResponse struct {
	domain.Event
	// HeroHtml is the rendered, sanitized heroText; only set on the landing
	// payload.
	HeroHtml string `json:"heroHtml,omitempty"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
}
