// Package resume drives the resume intake and evaluation workflow:
// submit a resume, answer the generated questions, receive an evaluation.
package resume

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/logger"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/metrics"

	"go.uber.org/zap"
)

const workflowName = "resume"

type State int

const (
	Idle State = iota
	Submitting
	QuestionsReady
	Answering
	Evaluating
	Done
	NoQuestions
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Submitting:
		return "Submitting"
	case QuestionsReady:
		return "QuestionsReady"
	case Answering:
		return "Answering"
	case Evaluating:
		return "Evaluating"
	case Done:
		return "Done"
	case NoQuestions:
		return "NoQuestions"
	case Error:
		return "Error"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// InFlight reports whether a remote call is outstanding in this state.
func (s State) InFlight() bool {
	return s == Submitting || s == Evaluating
}

// Terminal reports whether only Reset leaves this state.
func (s State) Terminal() bool {
	return s == Done || s == NoQuestions || s == Error
}

// Snapshot is a consistent copy of the engine's data.
type Snapshot struct {
	State      State
	Questions  capability.QuestionSet
	Answers    capability.AnswerSet
	Evaluation *capability.Evaluation
	Err        error
}

// Engine is safe for concurrent use. The lock is never held across a remote call.
type Engine struct {
	caps    capability.ResumeCapabilities
	logger  *zap.Logger
	metrics *metrics.Recorder

	mu         sync.Mutex
	state      State
	questions  capability.QuestionSet
	answers    capability.AnswerSet
	evaluation *capability.Evaluation
	err        error
}

func New(caps capability.ResumeCapabilities, log *zap.Logger, rec *metrics.Recorder) *Engine {
	return &Engine{
		caps:    caps,
		logger:  logger.WithFields(log),
		metrics: rec,
	}
}

// SubmitResume sends a filled-in resume form and waits for the questions.
func (e *Engine) SubmitResume(ctx context.Context, draft capability.ResumeDraft) error {
	if err := e.start("submit resume", draft.Validate); err != nil {
		return err
	}

	qs, err := e.caps.GenerateQuestions(ctx, draft)
	return e.receiveQuestions(qs, err)
}

// UploadResumeFile sends a resume document and waits for the questions.
func (e *Engine) UploadResumeFile(ctx context.Context, file *capability.ResumeFile) error {
	if err := e.start("upload resume", file.Validate); err != nil {
		return err
	}

	qs, err := e.caps.UploadResume(ctx, *file)
	return e.receiveQuestions(qs, err)
}

// RecordAnswer stores the answer for question i.
func (e *Engine) RecordAnswer(i int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Answering {
		return errs.InvalidState("record answer", e.state)
	}
	return e.answers.Set(i, text)
}

// SubmitAnswers sends the complete answer set for evaluation. Blank answers are
// rejected locally and leave the engine in Answering.
func (e *Engine) SubmitAnswers(ctx context.Context) error {
	const op = "submit answers"

	e.mu.Lock()
	switch {
	case e.state.InFlight():
		e.mu.Unlock()
		return errs.Busy(op)
	case e.state != Answering:
		e.mu.Unlock()
		return errs.InvalidState(op, e.state)
	}

	if blank := e.answers.Blank(); len(blank) > 0 {
		e.mu.Unlock()
		return errs.Validation(op, "please answer all questions, unanswered: %s", humanIndexes(blank))
	}

	answers := append(capability.AnswerSet(nil), e.answers...)
	e.transition(Evaluating)
	e.mu.Unlock()

	ev, err := e.caps.EvaluateAnswers(ctx, answers)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		return e.fail(err)
	}

	e.evaluation = &ev
	e.transition(Done)
	return nil
}

// Reopen returns a failed evaluation to Answering with the answers kept, so the
// user can submit again.
func (e *Engine) Reopen() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Error || len(e.questions) == 0 {
		return errs.InvalidState("reopen answers", e.state)
	}

	e.err = nil
	e.transition(Answering)
	return nil
}

// Reset discards all workflow data and returns to Idle.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.InFlight() {
		return errs.Busy("reset")
	}

	e.questions = nil
	e.answers = nil
	e.evaluation = nil
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

func (e *Engine) Questions() capability.QuestionSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(capability.QuestionSet(nil), e.questions...)
}

func (e *Engine) Answers() capability.AnswerSet {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append(capability.AnswerSet(nil), e.answers...)
}

// Evaluation returns the result once the engine is Done.
func (e *Engine) Evaluation() (capability.Evaluation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.evaluation == nil {
		return capability.Evaluation{}, false
	}
	return *e.evaluation, true
}

// Err returns the failure that moved the engine to Error.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:     e.state,
		Questions: append(capability.QuestionSet(nil), e.questions...),
		Answers:   append(capability.AnswerSet(nil), e.answers...),
		Err:       e.err,
	}
	if e.evaluation != nil {
		ev := *e.evaluation
		s.Evaluation = &ev
	}
	return s
}

func (e *Engine) start(op string, validate func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.state.InFlight():
		return errs.Busy(op)
	case e.state != Idle:
		return errs.InvalidState(op, e.state)
	}

	if err := validate(); err != nil {
		return err
	}

	e.transition(Submitting)
	return nil
}

func (e *Engine) receiveQuestions(qs capability.QuestionSet, err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		return e.fail(err)
	}

	e.questions = qs.FilterBlank()
	e.transition(QuestionsReady)

	if len(e.questions) == 0 {
		e.transition(NoQuestions)
		return nil
	}

	e.answers = capability.NewAnswerSet(len(e.questions))
	e.transition(Answering)
	return nil
}

// fail must be called with the lock held.
func (e *Engine) fail(err error) error {
	if errs.KindOf(err) == "" {
		err = errs.Transport(e.state.String(), 0, err)
	}
	e.err = err
	e.logger.Warn("workflow failed", e.fields(zap.Error(err))...)
	e.transition(Error)
	return err
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

func humanIndexes(idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = fmt.Sprintf("#%d", v+1)
	}
	return strings.Join(parts, ", ")
}
