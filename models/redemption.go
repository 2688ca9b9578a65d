package models

import (
	"strings"
	"time"
)

// RedemptionStatus is the server-reported lifecycle status of a redemption.
// The platform API is the only writer; the BFF normalizes casing on read.
type RedemptionStatus string

const (
	StatusPending    RedemptionStatus = "pending"
	StatusProcessing RedemptionStatus = "processing"
	StatusShipped    RedemptionStatus = "shipped"
	StatusDelivered  RedemptionStatus = "delivered"
	StatusCompleted  RedemptionStatus = "completed"
	StatusSent       RedemptionStatus = "sent"
	StatusFailed     RedemptionStatus = "failed"
	StatusCancelled  RedemptionStatus = "cancelled"
	StatusRefunded   RedemptionStatus = "refunded"
)

// NormalizeStatus lowercases a server-reported status for comparison.
func NormalizeStatus(s RedemptionStatus) RedemptionStatus {
	return RedemptionStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// Redemption is a record of a user exchanging redeemable coins for a catalog
// item. Created by the platform; the BFF only reads it and requests
// transitions (cancel).
type Redemption struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Status       RedemptionStatus `json:"status"`
	RedeemedAt   time.Time        `json:"redeemed_at"`
	Prize        CatalogItem      `json:"prize"`
	Variant      *Variant         `json:"variant,omitempty"`
	CancelReason string           `json:"cancel_reason,omitempty"`
}

// TimelineStep is one entry of the redemption progress timeline.
type TimelineStep struct {
	Title string `json:"title"`
	Time  string `json:"time"`
	Done  bool   `json:"done"`
}

// RedemptionView is a redemption annotated with derived lifecycle state.
type RedemptionView struct {
	Redemption
	Timeline       []TimelineStep `json:"timeline,omitempty"`
	Progress       float64        `json:"progress"`
	Voided         bool           `json:"voided"`
	CanCancel      bool           `json:"can_cancel"`
	CancelDeadline *time.Time     `json:"cancel_deadline,omitempty"`
}

// CancelRedemptionRequest is the payload for a user-initiated cancellation.
type CancelRedemptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CancelResult is returned after the platform accepts a cancellation.
// RedirectAfterSeconds is a UX affordance: the frontend shows a countdown
// before navigating away.
type CancelResult struct {
	RefundedCoins        int64 `json:"refunded_coins"`
	RedirectAfterSeconds int   `json:"redirect_after_seconds"`
}

// ListResult is a page of redemptions plus the "there may be more" heuristic
// used when the upstream endpoint reports no total count.
type ListResult struct {
	Items   []RedemptionView `json:"items"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
	HasMore bool             `json:"has_more"`
}
