package wizard

import (
	"fmt"
	"strings"
	"time"

	"event_planner/catalog"
	"event_planner/constants"
	"event_planner/model"
)

// Payload is the persisted shape of a finished wizard.
type Payload struct {
	EventType     string
	Guests        model.GuestCount
	Budget        model.Budget
	EventDate     *time.Time
	EventTime     *string
	DateFlexible  bool
	VenueBooked   bool
	VenueLocation *string
	PackageName   *string
	ServiceIds    []string
}

// Assemble turns a form into a payload. It does not check step completeness; see Complete.
func Assemble(form FormState) (Payload, error) {
	p := Payload{
		EventType:    form.ResolvedType(),
		DateFlexible: form.DateFlexible,
	}
	if p.EventType == "" {
		return Payload{}, fmt.Errorf("event type: %w", ErrCannotProceed)
	}

	if form.HasPackage() {
		pkg, ok := catalog.FindPackage(*form.SelectedPackage)
		if !ok {
			return Payload{}, fmt.Errorf("%q: %w", *form.SelectedPackage, constants.ErrPackageNotFound)
		}
		price, ok := ParseAmount(pkg.Price)
		if !ok {
			return Payload{}, fmt.Errorf("package %s price %q: %w", pkg.Name, pkg.Price, constants.ErrValidation)
		}
		name := pkg.Name
		p.PackageName = &name
		p.Guests = model.GuestRange(pkg.GuestRange)
		p.Budget = model.BudgetAmount(price)
		p.ServiceIds = cleanIds(form.AddOns)
	} else {
		p.Guests = guestsFromText(form.GuestCount)
		p.Budget = budgetFromText(form.Budget)
		p.ServiceIds = cleanIds(form.Services)
	}

	p.VenueBooked, p.VenueLocation = venueOf(form)

	if !form.DateFlexible {
		date, clock, err := slotOf(form)
		if err != nil {
			return Payload{}, err
		}
		p.EventDate, p.EventTime = date, clock
	}
	return p, nil
}

func guestsFromText(text string) model.GuestCount {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.GuestCount{}
	}
	if n, ok := ParseHeadCount(text); ok {
		return model.ExactGuests(n)
	}
	return model.GuestRange(text)
}

func budgetFromText(text string) model.Budget {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Budget{}
	}
	if v, ok := ParseAmount(text); ok {
		return model.BudgetAmount(v)
	}
	return model.BudgetRange(text)
}

// venueOf marks the venue booked when the client names their own venue or picks one of ours.
// Answering "yes" without naming the venue leaves it unbooked.
func venueOf(form FormState) (bool, *string) {
	if form.HasVenue == nil {
		return false, nil
	}
	if *form.HasVenue {
		custom := strings.TrimSpace(form.CustomVenue)
		if custom == "" {
			return false, nil
		}
		return true, &custom
	}
	partner := strings.TrimSpace(form.PartnerVenue)
	if partner == "" {
		return false, nil
	}
	if v, ok := catalog.FindVenue(partner); ok {
		partner = v.Name
	}
	return true, &partner
}

func slotOf(form FormState) (*time.Time, *string, error) {
	var date *time.Time
	var clock *string
	if d := strings.TrimSpace(form.Date); d != "" {
		parsed, err := time.Parse(constants.DATE_LAYOUT, d)
		if err != nil {
			return nil, nil, fmt.Errorf("date %q: %w", d, constants.ErrValidation)
		}
		date = &parsed
	}
	if t := strings.TrimSpace(form.Time); t != "" {
		if _, err := time.Parse(constants.TIME_LAYOUT, t); err != nil {
			return nil, nil, fmt.Errorf("time %q: %w", t, constants.ErrValidation)
		}
		clock = &t
	}
	return date, clock, nil
}

func cleanIds(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Apply copies the payload onto an event row, clearing any previous values.
func (p Payload) Apply(e *model.Event) {
	e.EventType = p.EventType
	e.SetGuests(p.Guests)
	e.SetBudget(p.Budget)
	e.EventDate = p.EventDate
	e.EventTime = p.EventTime
	e.DateFlexible = p.DateFlexible
	e.VenueBooked = p.VenueBooked
	e.VenueLocation = p.VenueLocation
	e.PackageName = p.PackageName
	e.ServiceIds = p.ServiceIds
}
