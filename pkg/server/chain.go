package server

import (
	"net/http"

	"github.com/matst80/slask-wardrobe/pkg/chain"
	"github.com/matst80/slask-wardrobe/pkg/common"
	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

type ChainResponse struct {
	Flow    session.Flow   `json:"flow"`
	Phase   chain.Phase    `json:"phase"`
	Step    *chain.Step    `json:"step"`
	Index   int            `json:"index"`
	Steps   []chain.Step   `json:"steps"`
	Open    *chain.Step    `json:"open"`
	Outcome *chain.Outcome `json:"outcome,omitempty"`
}

func chainFor(r *http.Request, sess *session.Session) (session.Flow, *chain.Chain, *session.Outbox, error) {
	flow, err := session.ParseFlow(r.PathValue("flow"))
	if err != nil {
		return "", nil, nil, common.NotFound(err)
	}
	c, outbox, err := sess.Chain(flow)
	if err != nil {
		return "", nil, nil, common.NotFound(err)
	}
	return flow, c, outbox, nil
}

// chainResponse reports the chain and the step waiting to be opened. The step stays pending
// until the client resumes or cancels the chain.
func chainResponse(flow session.Flow, c *chain.Chain, outbox *session.Outbox) ChainResponse {
	ret := ChainResponse{
		Flow:  flow,
		Phase: c.Phase(),
		Index: c.Index(),
		Steps: c.Steps(),
	}
	if step, ok := c.Current(); ok {
		ret.Step = &step
	}
	if step, ok := outbox.Pending(); ok {
		ret.Open = &step
	}
	return ret
}

func (s *Server) GetChain(r *http.Request, sess *session.Session) (any, error) {
	flow, c, outbox, err := chainFor(r, sess)
	if err != nil {
		return nil, err
	}
	return chainResponse(flow, c, outbox), nil
}

// StartChain enters the chain at ?from=, defaulting to the first step.
func (s *Server) StartChain(r *http.Request, sess *session.Session) (any, error) {
	flow, c, outbox, err := chainFor(r, sess)
	if err != nil {
		return nil, err
	}
	from := c.Steps()[0]
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = types.ParseDimension(q); err != nil {
			return nil, common.BadRequest(err)
		}
	}
	if err = c.Start(from); err != nil {
		return nil, requestError(err)
	}
	chainTransitions.WithLabelValues(string(flow), "started").Inc()
	return chainResponse(flow, c, outbox), nil
}

func (s *Server) ResumeChain(r *http.Request, sess *session.Session) (any, error) {
	flow, c, outbox, err := chainFor(r, sess)
	if err != nil {
		return nil, err
	}
	if c.Phase() == chain.AwaitingResume {
		// the opened step has returned
		outbox.Take()
	}
	outcome, err := c.Resume()
	if err != nil {
		return nil, err
	}
	chainTransitions.WithLabelValues(string(flow), outcome.String()).Inc()
	ret := chainResponse(flow, c, outbox)
	ret.Outcome = &outcome
	return ret, nil
}

func (s *Server) RetryChain(r *http.Request, sess *session.Session) (any, error) {
	flow, c, outbox, err := chainFor(r, sess)
	if err != nil {
		return nil, err
	}
	if err = c.Retry(); err != nil {
		return nil, requestError(err)
	}
	return chainResponse(flow, c, outbox), nil
}

func (s *Server) CancelChain(r *http.Request, sess *session.Session) (any, error) {
	flow, c, outbox, err := chainFor(r, sess)
	if err != nil {
		return nil, err
	}
	c.Cancel()
	outbox.Take()
	chainTransitions.WithLabelValues(string(flow), "cancelled").Inc()
	return chainResponse(flow, c, outbox), nil
}
