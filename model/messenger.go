package model

import (
	"fmt"
	"time"
)

// MessageRequest statuses. A declined request is deleted, not stored.
const (
	RequestPending  = "PENDING"
	RequestAccepted = "ACCEPTED"
)

// MessageRequest gates messaging between two users. At most one request may
// exist per unordered pair, in either direction; the unique PairKey makes
// the store enforce that. No soft delete: a declined request must free the
// pair for a new one.
type MessageRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"senderId"`
	ReceiverID uint      `gorm:"not null;index" json:"receiverId"`
	PairKey    string    `gorm:"uniqueIndex;not null" json:"-"`
	Status     string    `gorm:"not null;default:PENDING" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"-"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"-"`
}

// PairKey returns the canonical key for an unordered user pair, so that
// (a,b) and (b,a) collide on the unique index.
func PairKey(a, b uint) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Message is a direct message. Creation requires an ACCEPTED MessageRequest
// between the two users; that check lives in the controller, not here.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index" json:"senderId"`
	ReceiverID uint      `gorm:"not null;index" json:"receiverId"`
	Content    string    `gorm:"not null" json:"content"`
	IsRead     bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"-"`
}
