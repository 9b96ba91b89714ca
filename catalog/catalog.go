// Package catalog holds the fixed offering shown on the public site and used by the booking wizard.
package catalog

import "strings"

type Package struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	GuestRange  string   `json:"guestRange"`
	Description string   `json:"description"`
	Inclusions  []string `json:"inclusions"`
}

type Service struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type Venue struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity string `json:"capacity"`
	Style    string `json:"style"`
}

var packages = []Package{
	{
		Slug:        "silver",
		Name:        "Silver",
		Price:       "₱69,000",
		GuestRange:  "50-100",
		Description: "Essential coordination for intimate celebrations.",
		Inclusions: []string{
			"On-the-day coordination",
			"Basic venue styling",
			"Photo coverage (4 hours)",
			"Sound system",
		},
	},
	{
		Slug:        "gold",
		Name:        "Gold",
		Price:       "₱99,000",
		GuestRange:  "100-150",
		Description: "Full planning with styling and catering coordination.",
		Inclusions: []string{
			"Full event planning",
			"Themed venue styling",
			"Photo and video coverage (8 hours)",
			"Catering coordination",
			"Lights and sound",
		},
	},
	{
		Slug:        "platinum",
		Name:        "Platinum",
		Price:       "₱149,000",
		GuestRange:  "150-200",
		Description: "End-to-end production for grand events.",
		Inclusions: []string{
			"Full event planning and design",
			"Premium floral and venue styling",
			"Same-day edit video",
			"Catering coordination",
			"Lights, sound and LED wall",
			"Guest management and RSVP tracking",
		},
	},
}

var services = []Service{
	{Id: "coordination", Name: "Event Coordination", Description: "Day-of timeline and supplier management.", Category: "planning"},
	{Id: "styling", Name: "Venue Styling", Description: "Theme, florals and table setup.", Category: "design"},
	{Id: "catering", Name: "Catering", Description: "Buffet or plated menus from partner caterers.", Category: "food"},
	{Id: "photo-video", Name: "Photo and Video", Description: "Coverage by our partner studios.", Category: "media"},
	{Id: "lights-sound", Name: "Lights and Sound", Description: "PA system, DJ and stage lighting.", Category: "production"},
	{Id: "host", Name: "Host / Emcee", Description: "Professional program host.", Category: "program"},
	{Id: "cake", Name: "Cake and Desserts", Description: "Custom cake and dessert table.", Category: "food"},
	{Id: "invitations", Name: "Invitations", Description: "Printed and digital invitations.", Category: "design"},
}

var venues = []Venue{
	{Id: "garden-pavilion", Name: "The Garden Pavilion", Location: "Tagaytay", Capacity: "80-200", Style: "garden"},
	{Id: "grand-ballroom", Name: "Grand Ballroom", Location: "Makati", Capacity: "150-400", Style: "ballroom"},
	{Id: "seaside-deck", Name: "Seaside Deck", Location: "Batangas", Capacity: "50-150", Style: "beach"},
	{Id: "heritage-hall", Name: "Heritage Hall", Location: "Intramuros", Capacity: "100-250", Style: "classic"},
}

func Packages() []Package {
	out := make([]Package, len(packages))
	copy(out, packages)
	return out
}

func Services() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

func Venues() []Venue {
	out := make([]Venue, len(venues))
	copy(out, venues)
	return out
}

// FindPackage matches by slug or display name, case-insensitively.
func FindPackage(key string) (Package, bool) {
	key = strings.TrimSpace(key)
	for _, p := range packages {
		if strings.EqualFold(p.Slug, key) || strings.EqualFold(p.Name, key) {
			return p, true
		}
	}
	return Package{}, false
}

func FindVenue(id string) (Venue, bool) {
	for _, v := range venues {
		if v.Id == id {
			return v, true
		}
	}
	return Venue{}, false
}

func HasService(id string) bool {
	for _, s := range services {
		if s.Id == id {
			return true
		}
	}
	return false
}
