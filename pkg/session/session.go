package session

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/chain"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	"github.com/matst80/slask-wardrobe/pkg/filter"
)

type Flow string

const (
	VendorFlow Flow = "vendor"
	BuyerFlow  Flow = "buyer"
)

var ErrUnknownFlow = errors.New("unknown flow")

func ParseFlow(s string) (Flow, error) {
	switch Flow(s) {
	case VendorFlow, BuyerFlow:
		return Flow(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFlow, s)
}

// Outbox records the step a chain asked to open until the step returns or the chain is cancelled.
type Outbox struct {
	pending chain.Step
	opened  int
}

func (o *Outbox) OpenStep(step chain.Step) error {
	o.pending = step
	o.opened++
	return nil
}

// Pending returns the step waiting to be opened, if any.
func (o *Outbox) Pending() (chain.Step, bool) {
	return o.pending, o.pending != ""
}

// Take returns and clears the pending step.
func (o *Outbox) Take() (chain.Step, bool) {
	step, ok := o.Pending()
	o.pending = ""
	return step, ok
}

func (o *Outbox) Opened() int {
	return o.opened
}

type flowChain struct {
	chain  *chain.Chain
	outbox *Outbox
}

// Session is one client's interaction state. Fields must only be touched inside Do.
type Session struct {
	Id     string
	Filter *filter.State
	Draft  *draft.Draft

	mu       sync.Mutex
	chains   map[Flow]flowChain
	lastSeen atomic.Int64
}

func newSession(id string, now time.Time) *Session {
	s := &Session{
		Id:     id,
		Filter: filter.NewState(),
		Draft:  draft.New(),
		chains: make(map[Flow]flowChain, 2),
	}
	s.touch(now)
	s.chains[VendorFlow] = newFlowChain(chain.VendorSteps)
	s.chains[BuyerFlow] = newFlowChain(chain.BuyerSteps)
	return s
}

func newFlowChain(steps []chain.Step) flowChain {
	outbox := &Outbox{}
	c, err := chain.New(steps, outbox)
	if err != nil {
		panic(err)
	}
	return flowChain{chain: c, outbox: outbox}
}

// Do runs fn with exclusive access to the session, so a request runs to completion before
// the next one starts.
func (s *Session) Do(fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// Chain returns the chain of a flow and the outbox its navigation lands in. Call inside Do.
func (s *Session) Chain(flow Flow) (*chain.Chain, *Outbox, error) {
	fc, ok := s.chains[flow]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFlow, flow)
	}
	return fc.chain, fc.outbox, nil
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
