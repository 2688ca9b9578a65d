package services

import (
	"time"

	"github.com/kudoshq/recognition-bff/models"
)

// CancellationWindow bounds the platform's refund exposure: once it elapses
// the user can no longer request a cancellation, even in a cancellable
// status. The boundary is inclusive.
const CancellationWindow = 24 * time.Hour

// RedirectCountdownSeconds is the fixed countdown the frontend shows after a
// successful cancellation before navigating away. UX affordance only.
const RedirectCountdownSeconds = 3

// cancellationTerminal holds statuses from which no cancellation is offered.
var cancellationTerminal = map[models.RedemptionStatus]bool{
	models.StatusCancelled: true,
	models.StatusDelivered: true,
	models.StatusCompleted: true,
	models.StatusRefunded:  true,
}

// CanCancel decides whether a user-initiated cancellation is currently
// allowed. Vouchers are delivered instantly and irrevocably, so they never
// have a cancellation path. This is a best-effort local prediction: the
// platform's answer to the actual cancel call is the final word.
func CanCancel(r *models.Redemption, now time.Time) bool {
	if r.Prize.Category == models.CategoryVoucher {
		return false
	}
	if cancellationTerminal[models.NormalizeStatus(r.Status)] {
		return false
	}
	return now.Sub(r.RedeemedAt) <= CancellationWindow
}

// CancelDeadline returns the instant at which the cancellation window closes,
// or nil when no window applies (vouchers, terminal statuses).
func CancelDeadline(r *models.Redemption, now time.Time) *time.Time {
	if !CanCancel(r, now) {
		return nil
	}
	deadline := r.RedeemedAt.Add(CancellationWindow)
	return &deadline
}
