package screens

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/handoff"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/workflow/job"

	"go.uber.org/zap"
)

const choiceDone = "Done"

type jobScreens struct {
	deps Deps
	*view
}

func (s *jobScreens) post(ctx context.Context, nav *handoff.Navigator, tr *handoff.Transition) error {
	s.title("Post a job")

	engine := s.deps.Jobs
	if engine == nil {
		s.line("Posting jobs is available to recruiters only.")
		return nil
	}

	form, ok := handoff.Take[capability.JobForm](tr)
	if !ok {
		var err error
		if form, err = s.askForm(); err != nil {
			return err
		}
	}

	if err := engine.Reset(); err != nil {
		s.notice("Cannot post a new job", err)
		return err
	}

	s.line("Posting the job and matching candidates...")

	res, err := engine.PostJob(ctx, form)
	if err != nil {
		s.notice("Could not post the job", err)
		return err
	}

	return nav.Navigate(ctx, RouteJobPost, RouteJobResults, res)
}

func (s *jobScreens) results(ctx context.Context, _ *handoff.Navigator, tr *handoff.Transition) error {
	s.title("Matching candidates")

	res, ok := handoff.Take[job.Result](tr)
	if !ok {
		s.line("No results to show. Post a job first.")
		return nil
	}

	s.renderAck(res)

	switch {
	case res.PartialSuccess():
		s.notice("The job was posted, but matching candidates failed", res.MatchErr)
		return nil
	case res.NoMatches():
		s.line("No matching candidates found.")
		return nil
	}

	s.line("Matched resumes for %q:", res.Posting.Title)
	for i, r := range res.Matches.Resumes {
		s.line("  %d. %s", i+1, r)
	}

	if s.deps.Downloader == nil {
		return nil
	}

	// The trailing item ends the menu; compare by index so a resume may be named like it.
	items := append(append([]string(nil), res.Matches.Resumes...), choiceDone)
	for {
		i, choice, err := s.deps.Prompt.Choose("Download a resume?", items)
		if err != nil {
			return err
		}
		if i == len(res.Matches.Resumes) {
			return nil
		}

		path, err := s.download(ctx, choice)
		if err != nil {
			s.notice("Download failed", err)
			continue
		}
		s.line("Saved %s", path)
	}
}

func (s *jobScreens) postings(ctx context.Context, _ *handoff.Navigator, _ *handoff.Transition) error {
	s.title("Job postings")

	if s.deps.Postings == nil {
		s.line("Postings are not available.")
		return nil
	}

	postings, err := s.deps.Postings.ListPostings(ctx)
	if err != nil {
		s.notice("Could not load postings", err)
		return err
	}

	if len(postings) == 0 {
		s.line("No jobs posted yet.")
		return nil
	}

	for _, p := range postings {
		s.line("#%d %s at %s (%s)", p.ID, p.Title, p.Company, p.Location)
		s.line("    skills: %s", strings.Join(p.Skills, ", "))
	}
	return nil
}

func (s *jobScreens) renderAck(res job.Result) {
	msg := res.Ack.Message
	if msg == "" {
		msg = "Job posted successfully"
	}
	s.line("%s: %s at %s", msg, res.Posting.Title, res.Posting.Company)

	if res.Ack.Name != "" {
		s.line("Name: %s", res.Ack.Name)
	}
	if res.Ack.Reason != "" {
		s.line("Reason: %s", res.Ack.Reason)
	}
	if len(res.Ack.Skills) > 0 {
		s.line("Skills: %s", strings.Join(res.Ack.Skills, ", "))
	}
	s.line("")
}

func (s *jobScreens) download(ctx context.Context, filename string) (string, error) {
	att, err := s.deps.Downloader.DownloadResume(ctx, filename)
	if err != nil {
		return "", err
	}

	dir := s.deps.DownloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(att.Filename))
	if err := os.WriteFile(path, att.Data, 0o644); err != nil {
		return "", fmt.Errorf("save resume: %w", err)
	}

	s.deps.Logger.Debug("resume downloaded", zap.String("path", path), zap.Int("bytes", len(att.Data)))
	return path, nil
}

func (s *jobScreens) askForm() (capability.JobForm, error) {
	var f capability.JobForm

	fields := []struct {
		label  string
		target *string
	}{
		{"Job title", &f.Title},
		{"Company", &f.Company},
		{"Location", &f.Location},
		{"Description", &f.Description},
		{"Skills (comma separated)", &f.Skills},
	}

	for _, field := range fields {
		v, err := s.deps.Prompt.Ask(field.label, nonBlank)
		if err != nil {
			return f, err
		}
		*field.target = v
	}

	return f, nil
}
