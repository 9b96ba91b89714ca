package wizard

import (
	"testing"
	"time"

	"event_planner/constants"
	"event_planner/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleWithPackage(t *testing.T) {
	cases := map[string]struct {
		pkg    string
		guests string
		budget float64
	}{
		"silver":   {"Silver", "50-100", 69000},
		"gold":     {"gold", "100-150", 99000},
		"platinum": {"Platinum", "150-200", 149000},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p, err := Assemble(FormState{
				EventType:       "Wedding",
				SelectedPackage: strPtr(tc.pkg),
				GuestCount:      "999",
				Budget:          "5",
				AddOns:          []string{"cake", "cake", " host "},
				Services:        []string{"catering"},
				DateFlexible:    true,
			})
			require.NoError(t, err)

			text, ok := p.Guests.Range()
			require.True(t, ok)
			assert.Equal(t, tc.guests, text)
			_, exact := p.Guests.Exact()
			assert.False(t, exact)

			amount, ok := p.Budget.Amount()
			require.True(t, ok)
			assert.Equal(t, tc.budget, amount)
			_, isRange := p.Budget.Range()
			assert.False(t, isRange)

			assert.Equal(t, []string{"cake", "host"}, p.ServiceIds)
			require.NotNil(t, p.PackageName)
		})
	}
}

func TestAssembleUnknownPackage(t *testing.T) {
	_, err := Assemble(FormState{EventType: "Wedding", SelectedPackage: strPtr("Bronze")})
	assert.ErrorIs(t, err, constants.ErrPackageNotFound)
}

func TestAssembleGuestText(t *testing.T) {
	cases := []struct {
		text      string
		exact     *int
		rangeText *string
	}{
		{"120", intPtr(120), nil},
		{" 75 ", intPtr(75), nil},
		{"100-150", nil, strPtr("100-150")},
		{"about 80", nil, strPtr("about 80")},
		{"12.5", nil, strPtr("12.5")},
		{"", nil, nil},
	}
	for _, tc := range cases {
		p, err := Assemble(FormState{EventType: "Party", GuestCount: tc.text, DateFlexible: true})
		require.NoError(t, err)

		var e model.Event
		p.Apply(&e)
		assert.Equal(t, tc.exact, e.GuestCount, "guest text %q", tc.text)
		assert.Equal(t, tc.rangeText, e.GuestCountRange, "guest text %q", tc.text)
		assert.Nil(t, e.PackageName)
	}
}

func TestAssembleBudgetText(t *testing.T) {
	p, err := Assemble(FormState{EventType: "Party", Budget: "₱ 250,000", DateFlexible: true})
	require.NoError(t, err)
	amount, ok := p.Budget.Amount()
	require.True(t, ok)
	assert.Equal(t, 250000.0, amount)

	p, err = Assemble(FormState{EventType: "Party", Budget: "100k-150k", DateFlexible: true})
	require.NoError(t, err)
	text, ok := p.Budget.Range()
	require.True(t, ok)
	assert.Equal(t, "100k-150k", text)

	p, err = Assemble(FormState{EventType: "Party", DateFlexible: true})
	require.NoError(t, err)
	assert.True(t, p.Budget.IsZero())
}

func TestAssembleVenueBooked(t *testing.T) {
	cases := []struct {
		name     string
		hasVenue *bool
		custom   string
		partner  string
		booked   bool
		location *string
	}{
		{"unanswered", nil, "Somewhere", "grand-ballroom", false, nil},
		{"own venue named", boolPtr(true), "Lola's garden", "", true, strPtr("Lola's garden")},
		{"own venue unnamed", boolPtr(true), "  ", "grand-ballroom", false, nil},
		{"partner picked", boolPtr(false), "", "grand-ballroom", true, strPtr("Grand Ballroom")},
		{"partner not in catalog", boolPtr(false), "", "Rooftop 21", true, strPtr("Rooftop 21")},
		{"no venue yet", boolPtr(false), "ignored", "", false, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Assemble(FormState{
				EventType:    "Wedding",
				HasVenue:     tc.hasVenue,
				CustomVenue:  tc.custom,
				PartnerVenue: tc.partner,
				DateFlexible: true,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.booked, p.VenueBooked)
			assert.Equal(t, tc.location, p.VenueLocation)
		})
	}
}

func TestAssembleDate(t *testing.T) {
	p, err := Assemble(FormState{EventType: "Wedding", Date: "2026-12-12", Time: "16:30", DateFlexible: true})
	require.NoError(t, err)
	assert.Nil(t, p.EventDate)
	assert.Nil(t, p.EventTime)

	p, err = Assemble(FormState{EventType: "Wedding", Date: "2026-12-12", Time: "16:30"})
	require.NoError(t, err)
	require.NotNil(t, p.EventDate)
	assert.Equal(t, time.Date(2026, 12, 12, 0, 0, 0, 0, time.UTC), *p.EventDate)
	assert.Equal(t, "16:30", *p.EventTime)

	_, err = Assemble(FormState{EventType: "Wedding", Date: "12/12/2026", Time: "16:30"})
	assert.ErrorIs(t, err, constants.ErrValidation)
	_, err = Assemble(FormState{EventType: "Wedding", Date: "2026-12-12", Time: "4pm"})
	assert.ErrorIs(t, err, constants.ErrValidation)
}

func TestAssembleRequiresType(t *testing.T) {
	_, err := Assemble(FormState{EventType: "other"})
	assert.ErrorIs(t, err, ErrCannotProceed)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		value float64
		ok    bool
	}{
		"₱69,000":   {69000, true},
		"$1,250.50": {1250.5, true},
		"  3 000  ": {3000, true},
		"PHP 5,000": {0, false},
		"50-100":    {0, false},
		"":          {0, false},
		"₱":         {0, false},
		"-100":      {0, false},
		"1e5":       {0, false},
		"0x10":      {0, false},
		"Inf":       {0, false},
		"12.":       {0, false},
		"1,250.5.0": {0, false},
		"0.75":      {0.75, true},
	}
	for in, want := range cases {
		got, ok := ParseAmount(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.value, got, in)
	}
}

func TestParseHeadCount(t *testing.T) {
	cases := map[string]struct {
		value int
		ok    bool
	}{
		"120":      {120, true},
		" 80 ":     {80, true},
		"-5":       {-5, true},
		"+7":       {7, true},
		"100-150":  {0, false},
		"about 50": {0, false},
		"1e2":      {0, false},
		"":         {0, false},
	}
	for in, want := range cases {
		got, ok := ParseHeadCount(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.value, got, in)
	}
}

func intPtr(n int) *int { return &n }
