package screens

import (
	"context"
	"fmt"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/errs"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/handoff"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/workflow/resume"
)

const (
	choiceRetry  = "Retry"
	choiceCancel = "Cancel"
)

type resumeScreens struct {
	deps Deps
	*view
}

func (s *resumeScreens) intake(ctx context.Context, nav *handoff.Navigator, tr *handoff.Transition) error {
	s.title("Submit your resume")

	engine := s.deps.Resume
	if engine == nil {
		s.line("Resume evaluation is available to job seekers only.")
		return nil
	}

	sub, ok := handoff.Take[Submission](tr)
	if !ok || (sub.Draft == nil && sub.File == nil) {
		draft, err := s.askDraft()
		if err != nil {
			return err
		}
		sub = Submission{Draft: &draft}
	}

	if err := engine.Reset(); err != nil {
		s.notice("Cannot start a new submission", err)
		return err
	}

	s.line("Generating interview questions...")

	var err error
	if sub.File != nil {
		err = engine.UploadResumeFile(ctx, sub.File)
	} else {
		err = engine.SubmitResume(ctx, *sub.Draft)
	}
	if err != nil {
		s.notice("Could not generate questions", err)
		return err
	}

	snap := engine.Snapshot()
	if snap.State == resume.NoQuestions {
		s.line("There are no questions to answer at this time.")
		return nil
	}

	return nav.Navigate(ctx, RouteResumeIntake, RouteAnswerQuestions, snap.Questions)
}

func (s *resumeScreens) answer(ctx context.Context, nav *handoff.Navigator, tr *handoff.Transition) error {
	s.title("Answer the questions")

	questions, ok := handoff.Take[capability.QuestionSet](tr)
	if !ok || s.deps.Resume == nil {
		s.line("There are no questions to answer. Submit your resume first.")
		return nil
	}
	engine := s.deps.Resume

	for i, q := range questions {
		answer, err := s.deps.Prompt.Ask(fmt.Sprintf("%d. %s", i+1, q), nonBlank)
		if err != nil {
			return err
		}
		if err := engine.RecordAnswer(i, answer); err != nil {
			s.notice("Could not record the answer", err)
			return err
		}
	}

	for {
		s.line("Evaluating your answers...")

		err := engine.SubmitAnswers(ctx)
		if err == nil {
			break
		}

		s.notice("Evaluation failed", err)
		if !errs.IsRetryable(err) {
			return err
		}

		_, choice, perr := s.deps.Prompt.Choose("Try again?", []string{choiceRetry, choiceCancel})
		if perr != nil {
			return perr
		}
		if choice != choiceRetry {
			return err
		}
		if rerr := engine.Reopen(); rerr != nil {
			return rerr
		}
	}

	ev, _ := engine.Evaluation()
	return nav.Navigate(ctx, RouteAnswerQuestions, RouteEvaluation, ev)
}

func (s *resumeScreens) evaluation(_ context.Context, _ *handoff.Navigator, tr *handoff.Transition) error {
	s.title("Your evaluation")

	ev, ok := handoff.Take[capability.Evaluation](tr)
	if !ok {
		s.line("No evaluation to show. Answer the interview questions first.")
		return nil
	}

	s.line("Evaluation:")
	s.line("%s", ev.Evaluation)
	s.line("")
	s.line("Advice:")
	s.line("%s", ev.Advice)
	return nil
}

func (s *resumeScreens) askDraft() (capability.ResumeDraft, error) {
	var d capability.ResumeDraft

	fields := []struct {
		label    string
		target   *string
		required bool
	}{
		{"Name", &d.Name, true},
		{"Email", &d.Email, true},
		{"Phone", &d.Phone, true},
		{"About you", &d.About, false},
		{"Skills (comma separated)", &d.Skills, false},
		{"School", &d.Education.School, false},
		{"University", &d.Education.University, false},
		{"Degree", &d.Education.Degree, false},
		{"Graduation year", &d.Education.GraduationYear, false},
		{"Experience", &d.Experience, false},
		{"Preferred roles", &d.PreferredRoles, false},
		{"English proficiency", &d.SelfAssessment.EnglishProficiency, false},
		{"Leadership skills", &d.SelfAssessment.LeadershipSkills, false},
		{"Management skills", &d.SelfAssessment.ManagementSkills, false},
		{"Problem solving", &d.SelfAssessment.ProblemSolving, false},
		{"Technical skills", &d.SelfAssessment.TechnicalSkills, false},
	}

	for _, f := range fields {
		var validate func(string) error
		if f.required {
			validate = nonBlank
		}
		v, err := s.deps.Prompt.Ask(f.label, validate)
		if err != nil {
			return d, err
		}
		*f.target = v
	}

	return d, nil
}
