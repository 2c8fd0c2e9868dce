// Package breaker implements a circuit breaker around calls to an external
// dependency. It sheds load from a failing dependency by rejecting calls
// while the circuit is open, and probes for recovery with a single trial
// call once the reset timeout has elapsed.
package breaker

import (
	"context"
	"sync"
	"time"

	"github.com/uicatalog/catalog-mcp-go/pkg/errors"
	"github.com/uicatalog/catalog-mcp-go/pkg/logging"
)

// State is the current circuit state.
type State int

const (
	// StateClosed passes calls through and counts consecutive failures.
	StateClosed State = iota
	// StateOpen rejects calls without invoking the wrapped function.
	StateOpen
	// StateHalfOpen admits exactly one trial call.
	StateHalfOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// FailurePolicy decides whether an error counts toward the failure
// threshold. Errors it rejects still propagate to the caller but leave the
// breaker's bookkeeping untouched.
type FailurePolicy func(error) bool

// CountAllFailures counts every handler error toward the threshold.
func CountAllFailures(err error) bool {
	return err != nil
}

// IOFailuresOnly counts only handler/collaborator faults, exempting
// validation and lookup misses that say nothing about dependency health.
func IOFailuresOnly(err error) bool {
	if err == nil {
		return false
	}
	if errors.IsValidation(err) || errors.IsNotFound(err) {
		return false
	}
	return true
}

const (
	// DefaultFailureThreshold is the consecutive-failure count that opens
	// the circuit when no threshold is configured.
	DefaultFailureThreshold = 5
	// DefaultResetTimeout is how long an open circuit waits before
	// admitting a trial call.
	DefaultResetTimeout = 30 * time.Second
)

// Options configures a Breaker.
type Options struct {
	// Name identifies the guarded dependency in errors, logs and metrics.
	Name string
	// FailureThreshold is the consecutive-failure count that opens the circuit.
	FailureThreshold int
	// ResetTimeout is the open-state duration before a trial call is admitted.
	ResetTimeout time.Duration
	// FailurePolicy selects which errors count; defaults to CountAllFailures.
	FailurePolicy FailurePolicy
	// Logger receives state-transition events; defaults to a no-op logger.
	Logger logging.Logger
	// OnStateChange, when set, is invoked after every state transition.
	OnStateChange func(name string, state State)
}

// Breaker guards a single logical dependency. The full read-decide-write
// transition runs under the mutex so the update of one completed call is
// visible to the very next call evaluation.
type Breaker struct {
	mu                  sync.Mutex
	state               State
	consecutiveFailures int
	openedAt            time.Time
	probing             bool

	name          string
	threshold     int
	resetTimeout  time.Duration
	countsFailure FailurePolicy
	onStateChange func(string, State)
	logger        logging.Logger
}

// New creates a breaker in the closed state with zero recorded failures.
func New(opts Options) *Breaker {
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = DefaultFailureThreshold
	}
	if opts.ResetTimeout <= 0 {
		opts.ResetTimeout = DefaultResetTimeout
	}
	if opts.FailurePolicy == nil {
		opts.FailurePolicy = CountAllFailures
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Name == "" {
		opts.Name = "external"
	}

	return &Breaker{
		state:         StateClosed,
		name:          opts.Name,
		threshold:     opts.FailureThreshold,
		resetTimeout:  opts.ResetTimeout,
		countsFailure: opts.FailurePolicy,
		onStateChange: opts.OnStateChange,
		logger:        opts.Logger.WithFields(logging.String("component", "breaker"), logging.String("dependency", opts.Name)),
	}
}

// Execute runs call through the breaker. When the circuit is open the call
// is never invoked and a CircuitOpenError is returned; otherwise the call's
// own result and error are returned unchanged after bookkeeping. No retries
// are performed here; retry policy belongs to the caller.
func (b *Breaker) Execute(ctx context.Context, call func(context.Context) (interface{}, error)) (interface{}, error) {
	if err := b.admit(); err != nil {
		return nil, err
	}

	result, err := call(ctx)
	b.record(err)
	return result, err
}

// admit decides whether a call may proceed, applying the lazy
// open-to-half-open transition at call time.
func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && time.Since(b.openedAt) >= b.resetTimeout {
		b.transition(StateHalfOpen)
	}

	switch b.state {
	case StateClosed:
		return nil
	case StateHalfOpen:
		if b.probing {
			// A trial call is already in flight; shed everything else.
			return errors.CircuitOpen(b.name)
		}
		b.probing = true
		return nil
	default:
		return errors.CircuitOpen(b.name)
	}
}

// record applies exactly one state mutation for the completed call.
func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	wasProbe := b.probing
	b.probing = false

	if err != nil && b.countsFailure(err) {
		b.recordFailure(wasProbe)
		return
	}

	// Success, or an error the policy exempts: both heal the circuit. A
	// trial call that failed only validation proves the dependency is
	// reachable again.
	if b.consecutiveFailures != 0 || b.state != StateClosed {
		b.consecutiveFailures = 0
		if b.state != StateClosed {
			b.transition(StateClosed)
		}
	}
}

func (b *Breaker) recordFailure(wasProbe bool) {
	if wasProbe {
		// Failed trial call: reopen and restart the timer.
		b.openedAt = time.Now()
		b.transition(StateOpen)
		return
	}

	b.consecutiveFailures++
	if b.state == StateClosed && b.consecutiveFailures >= b.threshold {
		b.openedAt = time.Now()
		b.transition(StateOpen)
	}
}

// transition must be called with the mutex held.
func (b *Breaker) transition(next State) {
	prev := b.state
	b.state = next
	b.logger.Info("circuit state changed",
		logging.String("from", prev.String()),
		logging.String("to", next.String()),
		logging.Int("consecutive_failures", b.consecutiveFailures),
	)
	if b.onStateChange != nil {
		b.onStateChange(b.name, next)
	}
}

// State returns the current circuit state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// ConsecutiveFailures returns the current consecutive-failure count.
func (b *Breaker) ConsecutiveFailures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutiveFailures
}

// Name returns the guarded dependency's name.
func (b *Breaker) Name() string {
	return b.name
}
