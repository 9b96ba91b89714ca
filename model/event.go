package model

import (
	"fmt"
	"time"

	"event_planner/constants"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Event struct {
	DTO
	UserId          uint                        `gorm:"not null;index:idx_event_guard,priority:1" json:"userId"`
	User            *User                       `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ReferenceCode   string                      `gorm:"size:20;uniqueIndex" json:"referenceCode"`
	EventType       string                      `gorm:"size:100;not null;index:idx_event_guard,priority:2" json:"eventType"`
	GuestCount      *int                        `json:"guestCount"`
	GuestCountRange *string                     `gorm:"size:100" json:"guestCountRange"`
	EventDate       *time.Time                  `gorm:"type:date;index:idx_event_guard,priority:3" json:"eventDate"`
	EventTime       *string                     `gorm:"size:5;index:idx_event_guard,priority:4" json:"eventTime"`
	DateFlexible    bool                        `gorm:"not null;default:false" json:"dateFlexible"`
	VenueBooked     bool                        `gorm:"not null;default:false" json:"venueBooked"`
	VenueLocation   *string                     `gorm:"size:255" json:"venueLocation"`
	BudgetAmount    *float64                    `json:"budgetAmount"`
	BudgetRange     *string                     `gorm:"size:100" json:"budgetRange"`
	Status          string                      `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PackageName     *string                     `gorm:"size:50" json:"packageName"`
	ServiceIds      datatypes.JSONSlice[string] `json:"serviceIds"`
}

// BeforeSave keeps exact values and free-text ranges mutually exclusive.
func (e *Event) BeforeSave(tx *gorm.DB) error {
	if e.GuestCount != nil && e.GuestCountRange != nil {
		return fmt.Errorf("guest count: %w", constants.ErrExclusiveField)
	}
	if e.BudgetAmount != nil && e.BudgetRange != nil {
		return fmt.Errorf("budget: %w", constants.ErrExclusiveField)
	}
	return nil
}

// GuestCount is either an exact head count or a free-text range, never both.
type GuestCount struct {
	exact *int
	text  *string
}

func ExactGuests(n int) GuestCount      { return GuestCount{exact: &n} }
func GuestRange(text string) GuestCount { return GuestCount{text: &text} }

func (g GuestCount) Exact() (int, bool) {
	if g.exact == nil {
		return 0, false
	}
	return *g.exact, true
}

func (g GuestCount) Range() (string, bool) {
	if g.text == nil {
		return "", false
	}
	return *g.text, true
}

func (g GuestCount) IsZero() bool { return g.exact == nil && g.text == nil }

// Budget is either an amount or a free-text range, never both.
type Budget struct {
	amount *float64
	text   *string
}

func BudgetAmount(v float64) Budget  { return Budget{amount: &v} }
func BudgetRange(text string) Budget { return Budget{text: &text} }

func (b Budget) IsZero() bool { return b.amount == nil && b.text == nil }

func (b Budget) Amount() (float64, bool) {
	if b.amount == nil {
		return 0, false
	}
	return *b.amount, true
}

func (b Budget) Range() (string, bool) {
	if b.text == nil {
		return "", false
	}
	return *b.text, true
}

func (e *Event) Guests() GuestCount {
	return GuestCount{exact: e.GuestCount, text: e.GuestCountRange}
}

func (e *Event) SetGuests(g GuestCount) {
	e.GuestCount, e.GuestCountRange = g.exact, g.text
}

func (e *Event) Budget() Budget {
	return Budget{amount: e.BudgetAmount, text: e.BudgetRange}
}

func (e *Event) SetBudget(b Budget) {
	e.BudgetAmount, e.BudgetRange = b.amount, b.text
}

// HasFixedSlot reports whether the event pins a concrete date and time.
func (e *Event) HasFixedSlot() bool {
	return !e.DateFlexible && e.EventDate != nil && e.EventTime != nil
}

// DuplicateKey identifies the (user, type, date, time) slot the duplicate guard compares.
type DuplicateKey struct {
	UserId    uint
	EventType string
	Date      time.Time
	Time      string
	ExcludeId uint
}

func (k DuplicateKey) String() string {
	return fmt.Sprintf("event:%d:%s:%s:%s", k.UserId, k.EventType, k.Date.Format(constants.DATE_LAYOUT), k.Time)
}

type EventFilter struct {
	Pagination
	Status    *string `query:"status"`
	EventType *string `query:"eventType"`
	SearchKey string  `query:"searchKey"`
	UserId    *uint   `query:"-"`
}

type UpdateEventStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled active"`
}

type UpdateEventPackageInput struct {
	PackageName *string `json:"packageName" validate:"omitempty,oneof=Silver Gold Platinum"`
}

type UpdateEventServicesInput struct {
	ServiceIds []string `json:"serviceIds" validate:"omitempty,dive,required,max=50"`
}

type ConvertEventInput struct {
	Title       string  `json:"title" validate:"required,min=2,max=200"`
	ClientNames string  `json:"clientNames" validate:"required,max=200"`
	Location    *string `json:"location" validate:"omitempty,max=255"`
	Style       string  `json:"style" validate:"omitempty,max=100"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
}
