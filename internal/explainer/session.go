package explainer

import (
	"context"
	"errors"
	"sync"
)

// Ticket identifies one dispatched action. Only the ticket from the most
// recent Begin may settle the session.
type Ticket struct {
	Seq         uint64
	Action      Action
	Code        string
	Instruction string

	ctx    context.Context
	cancel context.CancelFunc
}

// returns the context the backend call should run under; it is canceled
// as soon as a newer action begins
func (t *Ticket) Context() context.Context {
	return t.ctx
}

// Session holds the transient state of one page session.
type Session struct {
	mu          sync.Mutex
	state       State
	seq         uint64
	inflight    *Ticket
	subscribers map[int]chan State
	nextSubID   int
}

// returns a new idle session
func NewSession() *Session {
	return &Session{
		state:       State{Phase: PhaseIdle},
		subscribers: make(map[int]chan State),
	}
}

// returns a copy of the current state
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

func (s *Session) SetCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Code == code {
		return
	}

	s.state.Code = code
	s.publish()
}

func (s *Session) SetUserPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.UserPrompt == prompt {
		return
	}

	s.state.UserPrompt = prompt
	s.publish()
}

// sets both inputs in one step, publishing a single change
func (s *Session) SetInputs(code, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Code == code && s.state.UserPrompt == prompt {
		return
	}

	s.state.Code = code
	s.state.UserPrompt = prompt
	s.publish()
}

// Begin dispatches an action against the current inputs. With empty code
// for a canned action the warning is shown and ErrEmptyCode is returned; no
// request may be made. Otherwise the session enters the pending phase and
// any older in-flight request is canceled.
func (s *Session) Begin(parent context.Context, action Action) (*Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instruction, err := Dispatch(action, s.state.Code, s.state.UserPrompt)
	if err != nil {
		if errors.Is(err, ErrEmptyCode) {
			s.state.Output = MessageEmptyCode
			s.publish()
		}
		return nil, err
	}

	if s.inflight != nil {
		s.inflight.cancel()
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	s.seq++
	ticket := &Ticket{
		Seq:         s.seq,
		Action:      action,
		Code:        s.state.Code,
		Instruction: instruction,
		ctx:         ctx,
		cancel:      cancel,
	}
	s.inflight = ticket

	s.state.Mode = action
	s.state.Output = MessageThinking
	s.state.FixedCode = ""
	s.state.Phase = PhasePending
	s.publish()

	return ticket, nil
}

// Complete routes a successful result. It reports false when the ticket was
// superseded and the result was dropped.
func (s *Session) Complete(ticket *Ticket, result string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settle(ticket) {
		return false
	}

	if ticket.Action == ActionDebug {
		s.state.FixedCode = result
		s.state.Output = ""
		s.state.Phase = PhaseDebugged
	} else {
		s.state.Output = result
		if result == "" {
			s.state.Output = MessageNoResponse
		}
		s.state.Phase = PhaseExplained
	}

	s.publish()
	return true
}

// Fail records a failed request with the generic connection message. It
// reports false when the ticket was superseded.
func (s *Session) Fail(ticket *Ticket, _ error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.settle(ticket) {
		return false
	}

	s.state.Output = MessageConnectionError
	s.state.FixedCode = ""
	s.state.Phase = PhaseErrored
	s.publish()
	return true
}

// clears output and fixed code without touching the inputs
func (s *Session) ClearOutput() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight != nil {
		s.inflight.cancel()
		s.inflight = nil
	}

	s.state.Output = ""
	s.state.FixedCode = ""
	s.state.Phase = PhaseIdle
	s.publish()
}

// cancels any in-flight request and drops all subscribers
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight != nil {
		s.inflight.cancel()
		s.inflight = nil
	}

	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
}

// Subscribe returns a channel that receives the latest state after every
// change. Slow readers only see the newest state.
func (s *Session) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	ch := make(chan State, 1)
	ch <- s.state
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if sub, ok := s.subscribers[id]; ok {
			close(sub)
			delete(s.subscribers, id)
		}
	}

	return ch, cancel
}

// caller must hold s.mu
func (s *Session) settle(ticket *Ticket) bool {
	if ticket == nil || s.inflight == nil || ticket.Seq != s.inflight.Seq {
		return false
	}

	ticket.cancel()
	s.inflight = nil
	return true
}

// caller must hold s.mu
func (s *Session) publish() {
	for _, ch := range s.subscribers {
		select {
		case ch <- s.state:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s.state
		}
	}
}
