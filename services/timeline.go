package services

import (
	"time"

	"github.com/kudoshq/recognition-bff/models"
)

// TimelineTimePlaceholder is rendered for steps that have not produced a
// timestamp yet.
const TimelineTimePlaceholder = "--"

// Timeline step titles, in forward-progress order.
const (
	StepTitleReceived   = "Order received"
	StepTitleProcessing = "Processing"
	StepTitleDispatched = "Dispatched for delivery"
	StepTitleDelivered  = "Delivered"
)

// IsVoided reports whether the redemption left the forward-progress path.
// Voided redemptions get an error indicator instead of the timeline.
func IsVoided(r *models.Redemption) bool {
	switch models.NormalizeStatus(r.Status) {
	case models.StatusCancelled, models.StatusFailed, models.StatusRefunded:
		return true
	}
	return false
}

// ProjectTimeline maps a redemption's status onto the ordered lifecycle
// steps shown in the progress UI. For any status on the forward path the
// steps are monotonically non-increasing in doneness left to right; callers
// should check IsVoided first for cancelled/failed records.
func ProjectTimeline(r *models.Redemption) []models.TimelineStep {
	status := models.NormalizeStatus(r.Status)

	receivedTime := TimelineTimePlaceholder
	if !r.RedeemedAt.IsZero() {
		receivedTime = r.RedeemedAt.Format(time.RFC3339)
	}

	dispatched := status == models.StatusShipped ||
		status == models.StatusCompleted ||
		status == models.StatusDelivered
	delivered := status == models.StatusCompleted || status == models.StatusDelivered

	return []models.TimelineStep{
		{Title: StepTitleReceived, Time: receivedTime, Done: true},
		{Title: StepTitleProcessing, Time: TimelineTimePlaceholder, Done: status != models.StatusPending},
		{Title: StepTitleDispatched, Time: TimelineTimePlaceholder, Done: dispatched},
		{Title: StepTitleDelivered, Time: TimelineTimePlaceholder, Done: delivered},
	}
}

// ProgressPercentage derives the completion percentage from a projected
// timeline. Recomputed on every refresh, never cached.
func ProgressPercentage(steps []models.TimelineStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range steps {
		if s.Done {
			done++
		}
	}
	return float64(done) / float64(len(steps)) * 100
}
