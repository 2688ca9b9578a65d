package services

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/kudoshq/recognition-bff/models"
)

// PraiseStep identifies one step of the linear send-praise flow.
type PraiseStep int

const (
	StepRecipient PraiseStep = iota
	StepValue
	StepCoins
	StepMessage
	StepConfirm

	praiseStepCount = 5
)

// Coin bounds enforced at the coins step. Fast-fail UX only: the platform
// still rejects for insufficient balance regardless of these bounds.
const (
	MinPraiseCoins = 5
	MaxPraiseCoins = 100
)

// MinPraiseMessageLen is the minimum message length, in runes.
const MinPraiseMessageLen = 10

var praiseValidate = validator.New()

// PraiseForm is the state of one open send-praise form. The zero-valued
// Data plus Step 0 is the initial state; transitions happen only through
// Apply, Next and Back, so Step never leaves [0, 4].
type PraiseForm struct {
	ID     string                `json:"id"`
	Step   PraiseStep            `json:"step"`
	Data   models.PraiseFormData `json:"data"`
	Errors map[string]string     `json:"errors,omitempty"`
}

// NewPraiseForm opens a fresh form at the recipient step.
func NewPraiseForm(id string) *PraiseForm {
	return &PraiseForm{ID: id, Step: StepRecipient}
}

// CanProceed applies the gate for the form's current step. The confirm step
// requires the whole-form schema to validate.
func (f *PraiseForm) CanProceed() bool {
	switch f.Step {
	case StepRecipient:
		return strings.TrimSpace(f.Data.ReceiverID) != ""
	case StepValue:
		return strings.TrimSpace(f.Data.ValueID) != ""
	case StepCoins:
		return f.Data.Coins >= MinPraiseCoins && f.Data.Coins <= MaxPraiseCoins
	case StepMessage:
		return utf8.RuneCountInString(strings.TrimSpace(f.Data.Message)) >= MinPraiseMessageLen
	case StepConfirm:
		return f.ValidateAll() == nil
	}
	return false
}

// Apply merges step input into the form data. Only the field owned by the
// current step is writable, so out-of-order writes cannot skip a gate.
func (f *PraiseForm) Apply(input models.PraiseStepInput) {
	switch f.Step {
	case StepRecipient:
		if input.ReceiverID != nil {
			f.Data.ReceiverID = strings.TrimSpace(*input.ReceiverID)
		}
	case StepValue:
		if input.ValueID != nil {
			f.Data.ValueID = strings.TrimSpace(*input.ValueID)
		}
	case StepCoins:
		if input.Coins != nil {
			f.Data.Coins = *input.Coins
		}
	case StepMessage:
		if input.Message != nil {
			f.Data.Message = *input.Message
		}
	}
}

// Next re-validates only the current step's field and advances on success.
// On failure the form stays put and the field error is surfaced, no silent
// advancement.
func (f *PraiseForm) Next() bool {
	if !f.CanProceed() {
		f.Errors = map[string]string{f.currentField(): f.currentGateMessage()}
		return false
	}
	f.Errors = nil
	if f.Step < StepConfirm {
		f.Step++
	}
	return true
}

// Back steps backwards and clears any surfaced error. Always permitted from
// steps 1-4; a no-op on the first step.
func (f *PraiseForm) Back() {
	f.Errors = nil
	if f.Step > StepRecipient {
		f.Step--
	}
}

// ValidateAll runs the whole-form schema over the accumulated data.
func (f *PraiseForm) ValidateAll() error {
	req := f.Request()
	return praiseValidate.Struct(&req)
}

// Request builds the platform payload from the form data.
func (f *PraiseForm) Request() models.SendComplimentRequest {
	return models.SendComplimentRequest{
		ReceiverID: f.Data.ReceiverID,
		ValueID:    f.Data.ValueID,
		Coins:      f.Data.Coins,
		Message:    strings.TrimSpace(f.Data.Message),
	}
}

// Progress reports how far through the flow the form is, as a percentage.
func (f *PraiseForm) Progress() float64 {
	return float64(f.Step) / float64(praiseStepCount-1) * 100
}

func (f *PraiseForm) currentField() string {
	switch f.Step {
	case StepRecipient:
		return "receiver_id"
	case StepValue:
		return "value_id"
	case StepCoins:
		return "coins"
	case StepMessage:
		return "message"
	}
	return "form"
}

func (f *PraiseForm) currentGateMessage() string {
	switch f.Step {
	case StepRecipient:
		return "Pick a colleague to recognize"
	case StepValue:
		return "Pick a company value"
	case StepCoins:
		return "Coins must be between 5 and 100"
	case StepMessage:
		return "Message must be at least 10 characters"
	}
	return "Form is incomplete"
}
