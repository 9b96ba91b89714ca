package model

import "time"

type Guest struct {
	DTO
	EventId        uint       `gorm:"not null;index" json:"eventId"`
	Event          *Event     `gorm:"foreignKey:EventId;constraint:OnDelete:CASCADE" json:"-"`
	Name           string     `gorm:"size:150;not null" json:"name"`
	Email          *string    `gorm:"size:255" json:"email"`
	Phone          *string    `gorm:"size:30" json:"phone"`
	RSVPStatus     string     `gorm:"column:rsvp_status;size:20;not null;default:'pending';index" json:"rsvpStatus"`
	MealPreference *string    `gorm:"size:100" json:"mealPreference"`
	GroupLabel     *string    `gorm:"size:100" json:"groupLabel"`
	TableNumber    *int       `json:"tableNumber"`
	Notes          *string    `json:"notes"`
	RSVPToken      string     `gorm:"column:rsvp_token;size:36;uniqueIndex;not null" json:"-"`
	InvitedAt      *time.Time `json:"invitedAt"`
	RespondedAt    *time.Time `json:"respondedAt"`
}

type GuestInput struct {
	Name           string  `json:"name" validate:"required,min=1,max=150"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Phone          *string `json:"phone" validate:"omitempty,max=30"`
	RSVPStatus     *string `json:"rsvpStatus" validate:"omitempty,oneof=pending attending declined"`
	MealPreference *string `json:"mealPreference" validate:"omitempty,max=100"`
	GroupLabel     *string `json:"groupLabel" validate:"omitempty,max=100"`
	TableNumber    *int    `json:"tableNumber" validate:"omitempty,min=1,max=1000"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

type RSVPInput struct {
	RSVPStatus     string  `json:"rsvpStatus" validate:"required,oneof=attending declined"`
	MealPreference *string `json:"mealPreference" validate:"omitempty,max=100"`
	Notes          *string `json:"notes" validate:"omitempty,max=1000"`
}

type GuestFilter struct {
	RSVPStatus *string `query:"status" validate:"omitempty,oneof=pending attending declined"`
	GroupLabel *string `query:"group"`
	SearchKey  string  `query:"searchKey"`
}

type GuestSummary struct {
	Total     int `json:"total"`
	Attending int `json:"attending"`
	Declined  int `json:"declined"`
	Pending   int `json:"pending"`
}

// Invitation is the public view of a guest reached through an RSVP link.
type Invitation struct {
	GuestName  string     `json:"guestName"`
	EventType  string     `json:"eventType"`
	EventDate  *time.Time `json:"eventDate"`
	EventTime  *string    `json:"eventTime"`
	Location   *string    `json:"location"`
	RSVPStatus string     `json:"rsvpStatus"`
}
