package models

import "time"

// Contact message delivery states. A message starts pending, then
// moves to sent or failed exactly once.
const (
	ContactPending = "pending"
	ContactSent    = "sent"
	ContactFailed  = "failed"
)

// ContactMessage is a contact-form submission queued for outbound mail.
// Delivery happens asynchronously; Status records the outcome so it can
// be observed separately from the submitting request.
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	Detail    string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
