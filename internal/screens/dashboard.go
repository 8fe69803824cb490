package screens

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/handoff"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"
)

const (
	choiceSubmitResume = "Submit a resume"
	choiceUploadResume = "Upload a resume file"
	choicePostJob      = "Post a job"
	choicePostings     = "Browse postings"
	choiceQuit         = "Quit"
)

type dashboard struct {
	deps Deps
	*view
}

func (s *dashboard) Enter(ctx context.Context, nav *handoff.Navigator, _ *handoff.Transition) error {
	s.title("Dashboard")

	id, ok := s.deps.Session.Current()
	if !ok {
		s.line("You are not signed in. Run `jobmatch signin` first.")
		return nil
	}

	s.line("Welcome, %s (%s)", id.Name, id.Role)

	var items []string
	switch id.Role {
	case session.RoleJobSeeker:
		items = []string{choiceSubmitResume, choiceUploadResume, choiceQuit}
	case session.RoleRecruiter:
		items = []string{choicePostJob, choicePostings, choiceQuit}
	}

	_, choice, err := s.deps.Prompt.Choose("What would you like to do?", items)
	if err != nil {
		return err
	}

	switch choice {
	case choiceSubmitResume:
		return nav.Navigate(ctx, RouteDashboard, RouteResumeIntake, nil)
	case choiceUploadResume:
		path, err := s.deps.Prompt.Ask("Path to your resume (pdf, docx or txt)", nonBlank)
		if err != nil {
			return err
		}
		file, err := ReadResumeFile(path)
		if err != nil {
			s.notice("Could not read the resume file", err)
			return err
		}
		return nav.Navigate(ctx, RouteDashboard, RouteResumeIntake, Submission{File: file})
	case choicePostJob:
		return nav.Navigate(ctx, RouteDashboard, RouteJobPost, nil)
	case choicePostings:
		return nav.Navigate(ctx, RouteDashboard, RoutePostings, nil)
	default:
		return nil
	}
}

// ReadResumeFile loads a resume document. An unknown extension leaves the content type empty.
func ReadResumeFile(path string) (*capability.ResumeFile, error) {
	path = strings.TrimSpace(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &capability.ResumeFile{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}
