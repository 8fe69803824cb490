// Package screens renders the terminal screens of both workflows and wires
// them to the navigator.
package screens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/handoff"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/workflow/job"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/workflow/resume"

	"go.uber.org/zap"
)

const (
	RouteDashboard       handoff.Route = "dashboard"
	RouteResumeIntake    handoff.Route = "resume-intake"
	RouteAnswerQuestions handoff.Route = "answer-questions"
	RouteEvaluation      handoff.Route = "evaluation"
	RouteJobPost         handoff.Route = "job-post"
	RouteJobResults      handoff.Route = "job-results"
	RoutePostings        handoff.Route = "postings"
)

// ErrAborted is returned when the user leaves a prompt.
var ErrAborted = errors.New("aborted")

// Prompter asks the user for input.
type Prompter interface {
	// Ask reads one value. validate may be nil.
	Ask(label string, validate func(string) error) (string, error)
	// Choose returns the index and value of the selected item.
	Choose(label string, items []string) (int, string, error)
}

// ResumeDownloader fetches matched resumes.
type ResumeDownloader interface {
	DownloadResume(ctx context.Context, filename string) (capability.Attachment, error)
}

// PostingLister lists posted jobs.
type PostingLister interface {
	ListPostings(ctx context.Context) ([]capability.JobPosting, error)
}

// Deps are the collaborators the screens need. Resume and Jobs may be nil when
// the signed-in role cannot use them.
type Deps struct {
	Session     *session.Provider
	Resume      *resume.Engine
	Jobs        *job.Engine
	Downloader  ResumeDownloader
	Postings    PostingLister
	Prompt      Prompter
	Out         io.Writer
	DownloadDir string
	Logger      *zap.Logger
}

// Register mounts every screen on nav.
func Register(nav *handoff.Navigator, d Deps) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	v := &view{out: d.Out}

	nav.Register(RouteDashboard, &dashboard{deps: d, view: v})

	rs := &resumeScreens{deps: d, view: v}
	nav.Register(RouteResumeIntake, handoff.ScreenFunc(rs.intake))
	nav.Register(RouteAnswerQuestions, handoff.ScreenFunc(rs.answer))
	nav.Register(RouteEvaluation, handoff.ScreenFunc(rs.evaluation))

	js := &jobScreens{deps: d, view: v}
	nav.Register(RouteJobPost, handoff.ScreenFunc(js.post))
	nav.Register(RouteJobResults, handoff.ScreenFunc(js.results))
	nav.Register(RoutePostings, handoff.ScreenFunc(js.postings))
}

// Submission is the payload that starts the resume workflow.
type Submission struct {
	Draft *capability.ResumeDraft
	File  *capability.ResumeFile
}

type view struct {
	out io.Writer
}

func (v *view) title(s string) {
	fmt.Fprintf(v.out, "\n== %s ==\n\n", s)
}

func (v *view) line(format string, args ...any) {
	fmt.Fprintf(v.out, format+"\n", args...)
}

// notice renders a failure in words the user can act on.
func (v *view) notice(what string, err error) {
	switch {
	case errs.IsValidation(err):
		v.line("! %s: %s", what, userMessage(err))
	case errs.IsBusy(err):
		v.line("! %s: a request is already in progress, please wait.", what)
	case errs.IsTransport(err):
		v.line("! %s: the service could not be reached or returned an error. Please try again.", what)
		v.line("  (%s)", userMessage(err))
	default:
		v.line("! %s: %s", what, userMessage(err))
	}
}

func userMessage(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		msg := e.Message
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}
	return err.Error()
}

func nonBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("this field is required")
	}
	return nil
}
