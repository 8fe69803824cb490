// Package job drives the recruiter workflow: post a job, then match candidates for it.
package job

import (
	"context"
	"strconv"
	"sync"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/logger"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/metrics"

	"go.uber.org/zap"
)

const workflowName = "job"

type State int

const (
	Idle State = iota
	Posting
	Matching
	Done
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Posting:
		return "Posting"
	case Matching:
		return "Matching"
	case Done:
		return "Done"
	case Error:
		return "Error"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

func (s State) InFlight() bool {
	return s == Posting || s == Matching
}

// Result is the outcome of a posting. MatchErr set means the job was posted but
// matching failed; the posting stands.
type Result struct {
	Posting  capability.JobPosting
	Ack      capability.JobPostAck
	Matches  capability.JobMatchResult
	MatchErr error
}

func (r Result) PartialSuccess() bool {
	return r.MatchErr != nil
}

func (r Result) NoMatches() bool {
	return r.MatchErr == nil && len(r.Matches.Resumes) == 0
}

type Engine struct {
	caps    capability.JobCapabilities
	logger  *zap.Logger
	metrics *metrics.Recorder

	mu     sync.Mutex
	state  State
	result *Result
	err    error
}

func New(caps capability.JobCapabilities, log *zap.Logger, rec *metrics.Recorder) *Engine {
	return &Engine{
		caps:    caps,
		logger:  logger.WithFields(log),
		metrics: rec,
	}
}

// PostJob validates the form, posts it and then matches candidates. A second
// call while one is in flight is rejected with a Busy error.
func (e *Engine) PostJob(ctx context.Context, form capability.JobForm) (Result, error) {
	const op = "post job"

	e.mu.Lock()
	switch {
	case e.state.InFlight():
		e.mu.Unlock()
		return Result{}, errs.Busy(op)
	case e.state != Idle:
		e.mu.Unlock()
		return Result{}, errs.InvalidState(op, e.state)
	}

	posting, err := form.Posting()
	if err != nil {
		e.mu.Unlock()
		return Result{}, err
	}

	e.transition(Posting)
	e.mu.Unlock()

	ack, err := e.caps.PostJob(ctx, posting)

	e.mu.Lock()
	if err != nil {
		defer e.mu.Unlock()
		if errs.KindOf(err) == "" {
			err = errs.Transport(capability.CapPostJob, 0, err)
		}
		e.err = err
		e.logger.Warn("posting failed", e.fields(zap.Error(err))...)
		e.transition(Error)
		return Result{}, err
	}
	e.transition(Matching)
	e.mu.Unlock()

	res := Result{Posting: posting, Ack: ack}

	matches, err := e.caps.MatchCandidates(ctx, capability.QueryFor(posting))
	if err != nil {
		if errs.KindOf(err) == "" {
			err = errs.Transport(capability.CapMatchCandidates, 0, err)
		}
		res.MatchErr = err
		e.logger.Warn("matching failed after successful posting",
			append(logger.WorkflowFields(workflowName, Matching.String()), zap.String("title", posting.Title), zap.Error(err))...,
		)
	} else {
		res.Matches = matches
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.result = &res
	e.transition(Done)
	return res, nil
}

// Reset returns a finished engine to Idle.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.InFlight() {
		return errs.Busy("reset")
	}

	e.result = nil
	e.err = nil
	if e.state != Idle {
		e.transition(Idle)
	}
	return nil
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Result() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}

func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// fields describes the workflow in its current state. The lock must be held.
func (e *Engine) fields(extra ...zap.Field) []zap.Field {
	return append(logger.WorkflowFields(workflowName, e.state.String()), extra...)
}

// transition must be called with the lock held.
func (e *Engine) transition(to State) {
	e.logger.Debug("transition", e.fields(zap.Stringer("to", to))...)
	e.state = to
	e.metrics.Transition(workflowName, to.String())
}
