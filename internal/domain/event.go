package domain

import "time"

// RedirectMode controls how visitors leave the landing page.
type RedirectMode string

const (
	RedirectAuto   RedirectMode = "auto"
	RedirectManual RedirectMode = "manual"
)

// DefaultAutoRedirectDelay is applied when an auto-redirect event is created
// without an explicit delay.
const DefaultAutoRedirectDelay = 5

// SentinelEventID is the reserved id of the built-in fallback event.
// An event with this id can never be edited or deleted.
const SentinelEventID = "default"

// Event is a single landing-page configuration. Exactly one event in the
// collection carries IsDefault=true after any completed mutation; the
// fallback event is served on reads when the collection is empty or
// unreachable.
type Event struct {
	Id                string       `json:"id"`
	Name              string       `json:"name"`
	IsDefault         bool         `json:"isDefault"`
	RedirectUrl       string       `json:"redirectUrl"`
	RedirectMode      RedirectMode `json:"redirectMode"`
	AutoRedirectDelay int          `json:"autoRedirectDelay"`
	HeroImage         string       `json:"heroImage"`
	HeroTitle         string       `json:"heroTitle"`
	HeroText          string       `json:"heroText"`
	HeroSlogan        string       `json:"heroSlogan"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// EventDraft carries caller-supplied fields for a new event. Id and
// timestamps are assigned by the store.
type EventDraft struct {
	Name              string       `json:"name"`
	IsDefault         bool         `json:"isDefault"`
	RedirectUrl       string       `json:"redirectUrl"`
	RedirectMode      RedirectMode `json:"redirectMode"`
	AutoRedirectDelay int          `json:"autoRedirectDelay"`
	HeroImage         string       `json:"heroImage"`
	HeroTitle         string       `json:"heroTitle"`
	HeroText          string       `json:"heroText"`
	HeroSlogan        string       `json:"heroSlogan"`
}

// EventPatch is the closed set of updatable fields. A nil pointer means
// "leave unchanged". Unknown fields are rejected at the API boundary.
type EventPatch struct {
	Name              *string       `json:"name,omitempty"`
	IsDefault         *bool         `json:"isDefault,omitempty"`
	RedirectUrl       *string       `json:"redirectUrl,omitempty"`
	RedirectMode      *RedirectMode `json:"redirectMode,omitempty"`
	AutoRedirectDelay *int          `json:"autoRedirectDelay,omitempty"`
	HeroImage         *string       `json:"heroImage,omitempty"`
	HeroTitle         *string       `json:"heroTitle,omitempty"`
	HeroText          *string       `json:"heroText,omitempty"`
	HeroSlogan        *string       `json:"heroSlogan,omitempty"`
}

// IsZero reports whether the patch changes nothing.
func (p EventPatch) IsZero() bool {
	return p.Name == nil && p.IsDefault == nil && p.RedirectUrl == nil &&
		p.RedirectMode == nil && p.AutoRedirectDelay == nil && p.HeroImage == nil &&
		p.HeroTitle == nil && p.HeroText == nil && p.HeroSlogan == nil
}

// FallbackEvent returns the in-memory event served when no persisted event is
// available. It is a read-time substitute, never written to the store.
func FallbackEvent() Event {
	now := time.Now().UTC()
	return Event{
		Id:                SentinelEventID,
		Name:              "Default Event",
		IsDefault:         true,
		RedirectUrl:       "https://example.com",
		RedirectMode:      RedirectManual,
		AutoRedirectDelay: DefaultAutoRedirectDelay,
		HeroImage:         "/professional-business-meeting.png",
		HeroTitle:         "Welcome to Our Platform",
		HeroText:          "Discover amazing opportunities and connect with professionals worldwide. Join us today and transform your business.",
		HeroSlogan:        "Your Success Starts Here",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}
