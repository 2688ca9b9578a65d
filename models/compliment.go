package models

import "time"

// SendComplimentRequest is the whole-form payload sent to the platform when
// a praise is submitted. The validate tags mirror the per-step gates of the
// praise form; coin bounds are fast-fail UX only, the platform remains the
// authority and may still reject for insufficient balance.
type SendComplimentRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	ValueID    string `json:"value_id" validate:"required"`
	Coins      int64  `json:"coins" validate:"gte=5,lte=100"`
	Message    string `json:"message" validate:"min=10"`
}

// PraiseFormData is the accumulated input of an open send-praise form.
type PraiseFormData struct {
	ReceiverID string `json:"receiver_id"`
	ValueID    string `json:"value_id"`
	Coins      int64  `json:"coins"`
	Message    string `json:"message"`
}

// PraiseStepInput carries the field values submitted with a step
// navigation. Pointers distinguish "not provided" from zero values.
type PraiseStepInput struct {
	ReceiverID *string `json:"receiver_id,omitempty"`
	ValueID    *string `json:"value_id,omitempty"`
	Coins      *int64  `json:"coins,omitempty"`
	Message    *string `json:"message,omitempty"`
}

// Compliment is the platform's record of a sent praise.
type Compliment struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	ValueID    string    `json:"value_id"`
	Coins      int64     `json:"coins"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}
