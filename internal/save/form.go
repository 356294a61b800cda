package save

import (
	"context"
	"errors"
	"fmt"
)

// State is the save lifecycle of one form.
type State int

// Form states. Success and Failed are terminal for one attempt; the form
// returns to Idle before the next.
const (
	StateIdle State = iota
	StateValidating
	StateSaving
	StateSuccess
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSaving:
		return "saving"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrBusy is returned when a save is started while another is running.
var ErrBusy = errors.New("a save is already in progress")

// Form tracks the save state machine of one form instance.
type Form struct {
	state State
	last  Result
}

// State returns the current state.
func (f *Form) State() State { return f.state }

// Last returns the result of the most recent completed save.
func (f *Form) Last() Result { return f.last }

// Busy reports whether a save is validating or in flight.
func (f *Form) Busy() bool {
	return f.state == StateValidating || f.state == StateSaving
}

// Begin validates the form. On success the form moves to Saving and the
// caller must send the request and report it with Finish; on failure the
// form is back to Idle and no request may be sent.
func (f *Form) Begin(validate func() error) error {
	if f.Busy() {
		return ErrBusy
	}
	f.state = StateValidating
	if validate != nil {
		if err := validate(); err != nil {
			f.state = StateIdle
			return err
		}
	}
	f.state = StateSaving
	return nil
}

// Finish records the outcome of the request started after Begin.
func (f *Form) Finish(res Result) State {
	f.last = res
	if res.Success {
		f.state = StateSuccess
	} else {
		f.state = StateFailed
	}
	return f.state
}

// Reset returns a terminal form to Idle.
func (f *Form) Reset() {
	if !f.Busy() {
		f.state = StateIdle
	}
}

// Run drives one full attempt: validate, submit, then back to Idle. The
// terminal state reached is returned along with the result. A validation
// error is returned as is and submit is not called.
func (f *Form) Run(
	ctx context.Context,
	validate func() error,
	submit func(ctx context.Context) Result,
) (Result, State, error) {
	if err := f.Begin(validate); err != nil {
		return Result{}, f.state, err
	}
	terminal := f.Finish(submit(ctx))
	f.Reset()
	return f.last, terminal, nil
}
