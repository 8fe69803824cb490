package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/screens"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Submit a resume, answer the generated questions and get an evaluation",
	Long: `Submit a resume as a file (--file), as a JSON form (--draft) or by filling
in the form interactively. The generated interview questions are asked one by
one and the answers are sent for evaluation.`,
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())
		rt.requireRole(session.RoleJobSeeker)

		filePath, _ := cmd.Flags().GetString("file")
		draftPath, _ := cmd.Flags().GetString("draft")

		if filePath != "" && draftPath != "" {
			rt.logger.Error("use either --file or --draft, not both")
			rt.exit(errors.New("conflicting flags"))
		}

		var sub screens.Submission
		switch {
		case filePath != "":
			file, err := screens.ReadResumeFile(filePath)
			if err != nil {
				rt.logger.Error("reading resume file", zap.Error(err))
				rt.exit(err)
			}
			sub.File = file
		case draftPath != "":
			draft, err := readDraft(draftPath)
			if err != nil {
				rt.logger.Error("reading resume draft", zap.Error(err))
				rt.exit(err)
			}
			sub.Draft = draft
		}

		nav, _ := rt.navigator(rt.client(), terminalPrompter{}, "")

		var payload any
		if sub.File != nil || sub.Draft != nil {
			payload = sub
		}

		rt.exit(nav.Navigate(rt.ctx, nav.Current(), screens.RouteResumeIntake, payload))
	},
}

func readDraft(path string) (*capability.ResumeDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var draft capability.ResumeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &draft, nil
}

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().StringP("file", "f", "", "resume document to upload (pdf, docx or txt)")
	resumeCmd.Flags().String("draft", "", "JSON file with the resume form")
}
