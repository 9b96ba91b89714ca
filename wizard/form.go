// Package wizard implements the multi-step booking form: the state it collects, the order its steps are
// shown in and the conversion of a finished form into an event row.
package wizard

import "strings"

// FormState aggregates every field the booking wizard collects across all of its steps.
type FormState struct {
	EventType       string   `json:"eventType"`
	CustomEventType string   `json:"customEventType"`
	SelectedPackage *string  `json:"selectedPackage"`
	AddOns          []string `json:"addOns"`
	Services        []string `json:"services"`
	GuestCount      string   `json:"guestCount"`
	HasVenue        *bool    `json:"hasVenue"`
	CustomVenue     string   `json:"customVenue"`
	PartnerVenue    string   `json:"partnerVenue"`
	Budget          string   `json:"budget"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	DateFlexible    bool     `json:"dateFlexible"`
}

func (f *FormState) HasPackage() bool {
	return f.SelectedPackage != nil && strings.TrimSpace(*f.SelectedPackage) != ""
}

// ResolvedType prefers the enumerated type and falls back to the custom text when "other" was picked.
func (f *FormState) ResolvedType() string {
	t := strings.TrimSpace(f.EventType)
	custom := strings.TrimSpace(f.CustomEventType)
	if t == "" || strings.EqualFold(t, "other") {
		return custom
	}
	return t
}

// Reset clears the form back to its initial state.
func (f *FormState) Reset() {
	*f = FormState{}
}
