package chain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/matst80/slask-wardrobe/pkg/types"
)

// Step is one attribute-selection screen of a guided flow.
type Step = types.Dimension

// VendorSteps is the product authoring flow.
var VendorSteps = []Step{
	types.DressType,
	types.Fabric,
	types.Color,
	types.Work,
	types.WorkDensity,
	types.OriginCity,
	types.WearState,
}

// BuyerSteps is the narrowing flow offered to buyers.
var BuyerSteps = []Step{
	types.DressType,
	types.Fabric,
	types.Color,
	types.OriginCity,
}

var (
	ErrNoSteps        = errors.New("chain needs at least one step")
	ErrDuplicateStep  = errors.New("duplicate step")
	ErrUnknownStep    = errors.New("step is not part of the chain")
	ErrNotActive      = errors.New("chain is not active")
	ErrNoNavigator    = errors.New("chain needs a navigator")
	ErrAlreadyWaiting = errors.New("chain is already waiting for the step to return")
)

// Navigator opens the selection screen of a step. The chain only emits the instruction,
// opening the screen is up to the implementation.
type Navigator interface {
	OpenStep(step Step) error
}

type NavigatorFunc func(step Step) error

func (f NavigatorFunc) OpenStep(step Step) error {
	return f(step)
}

type Phase int

const (
	Idle Phase = iota
	// Active with the step screen not (successfully) opened by the chain, a resume is ignored.
	Active
	// AwaitingResume is Active with the armed flag set: the chain opened the current step
	// and the next resume advances.
	AwaitingResume
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case AwaitingResume:
		return "awaiting-resume"
	}
	return "idle"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Outcome of a resume event.
type Outcome int

const (
	Ignored Outcome = iota
	Advanced
	Completed
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Completed:
		return "completed"
	}
	return "ignored"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Chain walks a fixed ordered list of steps, opening the next one each time the screen the
// chain opened returns. It is not safe for concurrent use.
type Chain struct {
	steps  []Step
	nav    Navigator
	active bool
	index  int
	armed  bool
}

func New(steps []Step, nav Navigator) (*Chain, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	if nav == nil {
		return nil, ErrNoNavigator
	}
	for i, s := range steps {
		if slices.Index(steps, s) != i {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStep, s)
		}
	}
	return &Chain{
		steps: slices.Clone(steps),
		nav:   nav,
	}, nil
}

// Start enters the chain at from and opens that step. Starting an active chain restarts it.
// When the navigator fails the chain stays Active on that step until Retry or Start.
func (c *Chain) Start(from Step) error {
	idx := slices.Index(c.steps, from)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownStep, from)
	}
	c.active = true
	c.index = idx
	return c.open()
}

func (c *Chain) open() error {
	step := c.steps[c.index]
	c.armed = true
	if err := c.nav.OpenStep(step); err != nil {
		c.armed = false
		return fmt.Errorf("open step %s: %w", step, err)
	}
	return nil
}

// Resume handles the return from a step screen. Only a return from a screen the chain
// opened advances, and the armed flag is consumed whatever the outcome.
func (c *Chain) Resume() (Outcome, error) {
	if !c.active || !c.armed {
		return Ignored, nil
	}
	c.armed = false
	if c.index+1 < len(c.steps) {
		c.index++
		return Advanced, c.open()
	}
	c.active = false
	c.index = 0
	return Completed, nil
}

// Retry reopens the current step of a stalled chain.
func (c *Chain) Retry() error {
	if !c.active {
		return ErrNotActive
	}
	if c.armed {
		return ErrAlreadyWaiting
	}
	return c.open()
}

// Cancel leaves the chain without completing it.
func (c *Chain) Cancel() {
	c.active = false
	c.armed = false
	c.index = 0
}

func (c *Chain) Phase() Phase {
	if !c.active {
		return Idle
	}
	if c.armed {
		return AwaitingResume
	}
	return Active
}

// Current returns the step the chain is on.
func (c *Chain) Current() (Step, bool) {
	if !c.active {
		return "", false
	}
	return c.steps[c.index], true
}

func (c *Chain) Index() int {
	if !c.active {
		return -1
	}
	return c.index
}

func (c *Chain) Steps() []Step {
	return slices.Clone(c.steps)
}
