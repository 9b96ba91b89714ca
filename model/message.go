package model

import "time"

type Message struct {
	DTO
	UserId     uint   `gorm:"not null;index" json:"userId"`
	SenderId   uint   `gorm:"not null" json:"senderId"`
	SenderRole string `gorm:"size:10;not null" json:"senderRole"`
	Content    string `gorm:"type:text;not null" json:"content"`
	IsRead     bool   `gorm:"not null;default:false;index" json:"isRead"`
}

func (m *Message) FromUser() bool {
	return m.SenderRole == "user"
}

type SendMessageInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// Conversation is one row of the staff chat panel.
type Conversation struct {
	UserId        uint      `json:"userId"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	UnreadCount   int64     `json:"unreadCount"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

type Notification struct {
	DTO
	UserId uint       `gorm:"not null;index" json:"userId"`
	Kind   string     `gorm:"size:30;not null" json:"kind"`
	Title  string     `gorm:"size:200;not null" json:"title"`
	Body   string     `gorm:"type:text" json:"body"`
	Link   *string    `gorm:"size:255" json:"link"`
	IsRead bool       `gorm:"not null;default:false;index" json:"isRead"`
	ReadAt *time.Time `json:"readAt"`
}

type UnreadCount struct {
	Unread int64 `json:"unread"`
}
