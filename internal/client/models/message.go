package models

import "time"

// Conversation is a summary row from GET /messages/conversations.
type Conversation struct {
	PetID       int64     `json:"pet_id"`
	PetName     string    `json:"pet_name"`
	LastMessage string    `json:"last_message,omitempty"`
	UnreadCount int       `json:"unread_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Message is a single direct message between two pets.
type Message struct {
	ID             int64     `json:"id"`
	SenderPetID    int64     `json:"sender_pet_id"`
	RecipientPetID int64     `json:"recipient_pet_id"`
	Content        string    `json:"content"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
