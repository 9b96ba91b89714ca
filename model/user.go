package model

import "time"

type User struct {
	DTO
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	FullName string `gorm:"size:150" json:"fullName"`
	Phone    string `gorm:"size:30" json:"phone"`
	Role     string `gorm:"size:20;not null;default:'user'" json:"role"`
}

type PasswordResetCode struct {
	DTO
	UserId    uint       `gorm:"index;not null" json:"userId"`
	CodeHash  string     `gorm:"not null" json:"-"`
	ExpiresAt time.Time  `gorm:"index;not null" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
	Attempts  int        `gorm:"not null;default:0" json:"-"`
}

type SignUpInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"fullName" validate:"required,min=2,max=150"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RecoverInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type UpdateRoleInput struct {
	Role string `json:"role" validate:"required,oneof=user admin super_admin"`
}

type UserFilter struct {
	Pagination
	Role      *string `query:"role"`
	SearchKey string  `query:"searchKey"`
}

// Session is what a signed-in client needs to route itself.
type Session struct {
	User     User   `json:"user"`
	Redirect string `json:"redirect"`
}
