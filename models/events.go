package models

import "time"

// Event type identifiers published to the recognition events topic.
const (
	EventComplimentSent      = "compliment_sent"
	EventPrizeRedeemed       = "prize_redeemed"
	EventRedemptionCancelled = "redemption_cancelled"
)

// ComplimentSentEvent is published after the platform accepts a praise.
type ComplimentSentEvent struct {
	EventType    string    `json:"event_type"`
	ComplimentID string    `json:"compliment_id"`
	SenderID     string    `json:"sender_id"`
	ReceiverID   string    `json:"receiver_id"`
	ValueID      string    `json:"value_id"`
	Coins        int64     `json:"coins"`
	Timestamp    time.Time `json:"timestamp"`
}

// PrizeRedeemedEvent is published after the platform accepts a redemption.
type PrizeRedeemedEvent struct {
	EventType    string    `json:"event_type"`
	RedemptionID string    `json:"redemption_id"`
	UserID       string    `json:"user_id"`
	PrizeID      string    `json:"prize_id"`
	VariantID    string    `json:"variant_id,omitempty"`
	CoinPrice    int64     `json:"coin_price"`
	Timestamp    time.Time `json:"timestamp"`
}

// RedemptionCancelledEvent is published after the platform accepts a
// cancellation and refunds the coins.
type RedemptionCancelledEvent struct {
	EventType     string    `json:"event_type"`
	RedemptionID  string    `json:"redemption_id"`
	UserID        string    `json:"user_id"`
	Reason        string    `json:"reason"`
	RefundedCoins int64     `json:"refunded_coins"`
	Timestamp     time.Time `json:"timestamp"`
}
