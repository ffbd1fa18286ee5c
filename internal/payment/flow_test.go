package payment

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kleanly/internal/domain"
)

// completeRecorder captures completion calls from flow timers.
type completeRecorder struct {
	mu      sync.Mutex
	calls   []Details
	methods []Method
	err     error
}

func (r *completeRecorder) fn(method Method, details Details) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.methods = append(r.methods, method)
	r.calls = append(r.calls, details)
	return r.err
}

func (r *completeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *completeRecorder) last() (Method, Details) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.methods[len(r.methods)-1], r.calls[len(r.calls)-1]
}

// fastConfig keeps the scripted delays near-instant for tests.
func fastConfig() Config {
	return Config{
		CashProcessingDelay:  time.Millisecond,
		MpesaProcessingDelay: time.Millisecond,
		SuccessLinger:        time.Millisecond,
		MpesaCountdown:       time.Minute,
	}
}

func TestCashFlowCompletesAndFinalizes(t *testing.T) {
	rec := &completeRecorder{}
	reg := NewRegistry(fastConfig())
	flow := reg.Create(1100, rec.fn)
	defer flow.Close()

	require.NoError(t, flow.ChooseMethod(MethodCash))
	assert.Equal(t, StepProcessing, flow.State().Step)

	require.Eventually(t, flow.Done, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, StepSuccess, flow.State().Step)
	require.Equal(t, 1, rec.count())
	method, details := rec.last()
	assert.Equal(t, MethodCash, method)
	assert.Empty(t, details.MpesaNumber)
}

func TestCardIsRejectedInPlace(t *testing.T) {
	reg := NewRegistry(fastConfig())
	flow := reg.Create(500, (&completeRecorder{}).fn)
	defer flow.Close()

	err := flow.ChooseMethod(MethodCard)
	require.ErrorIs(t, err, domain.ErrCardDisabled)
	assert.Equal(t, StepSelect, flow.State().Step)

	// Still usable afterwards.
	require.NoError(t, flow.ChooseMethod(MethodMpesa))
	assert.Equal(t, StepDetails, flow.State().Step)
}

func TestMpesaDetailsValidation(t *testing.T) {
	reg := NewRegistry(fastConfig())
	flow := reg.Create(500, (&completeRecorder{}).fn)
	defer flow.Close()

	require.NoError(t, flow.ChooseMethod(MethodMpesa))

	err := flow.SubmitDetails("12345")
	require.ErrorIs(t, err, ErrInvalidMsisdn)
	assert.Equal(t, StepDetails, flow.State().Step)

	require.NoError(t, flow.SubmitDetails("0799 999 999"))
	assert.Equal(t, StepProcessing, flow.State().Step)
}

func TestMpesaConfirmCompletes(t *testing.T) {
	rec := &completeRecorder{}
	reg := NewRegistry(fastConfig())
	flow := reg.Create(500, rec.fn)
	defer flow.Close()

	require.NoError(t, flow.ChooseMethod(MethodMpesa))
	require.NoError(t, flow.SubmitDetails("0799999999"))

	require.Eventually(t, func() bool {
		return flow.State().AwaitingConfirm
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, flow.Confirm())
	require.Eventually(t, flow.Done, 2*time.Second, 5*time.Millisecond)

	method, details := rec.last()
	assert.Equal(t, MethodMpesa, method)
	assert.Equal(t, "0799999999", details.MpesaNumber)
	assert.NotEmpty(t, details.TransactionID)
}

func TestMpesaCancelReturnsToSelectWithoutSubmitting(t *testing.T) {
	rec := &completeRecorder{}
	reg := NewRegistry(fastConfig())
	flow := reg.Create(500, rec.fn)
	defer flow.Close()

	require.NoError(t, flow.ChooseMethod(MethodMpesa))
	require.NoError(t, flow.SubmitDetails("0799999999"))
	require.Eventually(t, func() bool {
		return flow.State().AwaitingConfirm
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, flow.Cancel())

	snap := flow.State()
	assert.Equal(t, StepSelect, snap.Step)
	assert.False(t, snap.AwaitingConfirm)
	assert.Equal(t, 0, rec.count())
}

func TestCountdownExpiryAutoCancels(t *testing.T) {
	cfg := fastConfig()
	cfg.MpesaCountdown = 20 * time.Millisecond

	rec := &completeRecorder{}
	reg := NewRegistry(cfg)
	flow := reg.Create(500, rec.fn)
	defer flow.Close()

	require.NoError(t, flow.ChooseMethod(MethodMpesa))
	require.NoError(t, flow.SubmitDetails("0799999999"))

	require.Eventually(t, func() bool {
		return flow.State().Step == StepSelect
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, rec.count())
}

func TestCompletionFailureIsRetryable(t *testing.T) {
	rec := &completeRecorder{err: errors.New("upstream down")}
	reg := NewRegistry(fastConfig())
	flow := reg.Create(500, rec.fn)
	defer flow.Close()

	require.NoError(t, flow.ChooseMethod(MethodCash))

	require.Eventually(t, func() bool {
		snap := flow.State()
		return snap.RetryableError != "" && snap.AwaitingConfirm
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, flow.Done())

	// The retry succeeds once the upstream recovers.
	rec.mu.Lock()
	rec.err = nil
	rec.mu.Unlock()

	require.NoError(t, flow.Confirm())
	require.Eventually(t, flow.Done, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, rec.count())
}

func TestRegistryLifecycle(t *testing.T) {
	reg := NewRegistry(fastConfig())
	flow := reg.Create(100, (&completeRecorder{}).fn)

	got, err := reg.Get(flow.ID())
	require.NoError(t, err)
	assert.Same(t, flow, got)

	reg.Remove(flow.ID())
	_, err = reg.Get(flow.ID())
	require.ErrorIs(t, err, domain.ErrNotFound)

	// A closed flow rejects further events.
	require.ErrorIs(t, flow.ChooseMethod(MethodCash), ErrInvalidStep)
}
