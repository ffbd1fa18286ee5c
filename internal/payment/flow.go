// Package payment implements the simulated payment flow as an explicit
// state machine: select -> details -> processing -> success. There is no
// real gateway behind it; processing is time-boxed and the mobile-money
// leg waits for an out-of-band user confirmation.
package payment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"kleanly/internal/domain"
)

// Step is the current position in the flow.
type Step string

const (
	StepSelect     Step = "select"
	StepDetails    Step = "details"
	StepProcessing Step = "processing"
	StepSuccess    Step = "success"
)

// Method is a payment method id.
type Method string

const (
	MethodCash  Method = "cash"
	MethodMpesa Method = "mpesa"
	MethodCard  Method = "card"
)

var (
	// ErrInvalidStep rejects an event the current step cannot accept.
	ErrInvalidStep = errors.New("invalid step for this action")

	// ErrInvalidMsisdn rejects a malformed mobile-money number. The
	// flow stays in details so the user can correct it.
	ErrInvalidMsisdn = errors.New("invalid mobile money number")
)

// Details carries method-specific data into the completion callback.
type Details struct {
	MpesaNumber   string
	TransactionID string
}

// CompleteFunc finalizes the checkout once the simulated payment has
// gone through. A returned error keeps the flow retryable: the cart
// and entered details are not lost.
type CompleteFunc func(method Method, details Details) error

// Config sets the simulated timing. Zero values mean instant, which is
// what tests use.
type Config struct {
	CashProcessingDelay  time.Duration
	MpesaProcessingDelay time.Duration
	SuccessLinger        time.Duration
	MpesaCountdown       time.Duration
}

// Flow is one payment attempt. All events are serialized behind a
// mutex because timer callbacks race with HTTP handlers.
type Flow struct {
	mu       sync.Mutex
	id       string
	amount   int64
	cfg      Config
	complete CompleteFunc

	step            Step
	method          Method
	msisdn          string
	awaitingConfirm bool
	countdownEnd    time.Time
	lastErr         error
	done            bool
	closed          bool
	timers          []*time.Timer
}

// Snapshot is a read-only view of the flow for rendering.
type Snapshot struct {
	ID               string `json:"id"`
	Amount           int64  `json:"amount"`
	Step             Step   `json:"step"`
	Method           Method `json:"method,omitempty"`
	AwaitingConfirm  bool   `json:"awaitingConfirm"`
	CountdownSeconds int    `json:"countdownSeconds"`
	Done             bool   `json:"done"`
	RetryableError   string `json:"retryableError,omitempty"`
}

func newFlow(id string, amount int64, cfg Config, complete CompleteFunc) *Flow {
	return &Flow{
		id:       id,
		amount:   amount,
		cfg:      cfg,
		complete: complete,
		step:     StepSelect,
	}
}

func (f *Flow) ID() string { return f.id }

// State returns a snapshot of the current flow state.
func (f *Flow) State() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		ID:              f.id,
		Amount:          f.amount,
		Step:            f.step,
		Method:          f.method,
		AwaitingConfirm: f.awaitingConfirm,
		Done:            f.done,
	}
	if f.awaitingConfirm && !f.countdownEnd.IsZero() {
		if rem := time.Until(f.countdownEnd); rem > 0 {
			snap.CountdownSeconds = int(rem / time.Second)
		}
	}
	if f.lastErr != nil {
		snap.RetryableError = f.lastErr.Error()
	}
	return snap
}

// ChooseMethod handles the select step. Card is always rejected in
// place; cash goes straight to processing; mobile money needs details.
func (f *Flow) ChooseMethod(m Method) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.step != StepSelect {
		return ErrInvalidStep
	}

	switch m {
	case MethodCard:
		return domain.ErrCardDisabled
	case MethodCash:
		f.method = m
		f.step = StepProcessing
		f.after(f.cfg.CashProcessingDelay, f.cashProcessed)
		return nil
	case MethodMpesa:
		f.method = m
		f.step = StepDetails
		return nil
	default:
		return fmt.Errorf("unknown payment method %q", m)
	}
}

// SubmitDetails validates the mobile-money number and moves to
// processing. A bad number is rejected in place.
func (f *Flow) SubmitDetails(rawMsisdn string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.step != StepDetails {
		return ErrInvalidStep
	}

	msisdn, ok := NormalizeMsisdn(rawMsisdn)
	if !ok {
		return ErrInvalidMsisdn
	}

	f.msisdn = msisdn
	f.step = StepProcessing
	f.after(f.cfg.MpesaProcessingDelay, f.mpesaPromptSent)
	return nil
}

// Confirm reports that the user completed the mobile-money prompt, or
// retries a failed submission. Only meaningful while the flow is
// waiting on a confirmation.
func (f *Flow) Confirm() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.step != StepProcessing || !f.awaitingConfirm {
		return ErrInvalidStep
	}

	f.awaitingConfirm = false
	f.lastErr = nil
	f.step = StepSuccess
	f.after(f.cfg.SuccessLinger, f.finish)
	return nil
}

// Cancel abandons the attempt and returns to method selection without
// submitting anything. Valid from details or processing.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || f.step == StepSelect || f.step == StepSuccess {
		return ErrInvalidStep
	}

	f.reset()
	return nil
}

// Close cancels all pending timers. Further events are rejected.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.stopTimers()
}

// Done reports whether the completion callback has succeeded.
func (f *Flow) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// cashProcessed fires once the cash delay elapses: success, then
// auto-finalize after the linger delay.
func (f *Flow) cashProcessed() {
	if f.closed || f.step != StepProcessing || f.method != MethodCash {
		return
	}
	f.step = StepSuccess
	f.after(f.cfg.SuccessLinger, f.finish)
}

// mpesaPromptSent fires once the mobile-money delay elapses: the flow
// now blocks on the user's confirmation, with a countdown that
// auto-cancels on expiry.
func (f *Flow) mpesaPromptSent() {
	if f.closed || f.step != StepProcessing || f.method != MethodMpesa {
		return
	}
	f.awaitingConfirm = true
	f.countdownEnd = time.Now().Add(f.cfg.MpesaCountdown)
	f.after(f.cfg.MpesaCountdown, f.countdownExpired)
}

// countdownExpired auto-cancels an attempt the user never confirmed.
func (f *Flow) countdownExpired() {
	if f.closed || !f.awaitingConfirm {
		return
	}
	f.reset()
}

// finish invokes the completion callback. On failure the flow drops
// back to processing with the confirm affordance so the user can retry
// without re-entering anything.
func (f *Flow) finish() {
	if f.closed || f.step != StepSuccess || f.done {
		return
	}

	details := Details{}
	if f.method == MethodMpesa {
		details.MpesaNumber = f.msisdn
		details.TransactionID = fmt.Sprintf("MP%d", time.Now().UnixMilli())
	}

	method := f.method
	f.mu.Unlock()
	err := f.complete(method, details)
	f.mu.Lock()

	if f.closed {
		return
	}
	if err != nil {
		f.lastErr = err
		f.step = StepProcessing
		f.awaitingConfirm = true
		return
	}
	f.done = true
}

// reset returns the flow to method selection, clearing everything the
// attempt accumulated.
func (f *Flow) reset() {
	f.stopTimers()
	f.step = StepSelect
	f.method = ""
	f.msisdn = ""
	f.awaitingConfirm = false
	f.countdownEnd = time.Time{}
	f.lastErr = nil
}

// after schedules fn under the flow mutex. Zero and negative delays
// still go through a timer so lock ordering stays uniform.
func (f *Flow) after(d time.Duration, fn func()) {
	t := time.AfterFunc(d, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		fn()
	})
	f.timers = append(f.timers, t)
}

func (f *Flow) stopTimers() {
	for _, t := range f.timers {
		t.Stop()
	}
	f.timers = nil
}
