package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/capability"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/screens"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Post jobs and work with matched candidates",
}

var jobPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a job and match candidates for it",
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())
		rt.requireRole(session.RoleRecruiter)

		prompt := terminalPrompter{}
		form := capability.JobForm{}

		fields := []struct {
			flag   string
			label  string
			target *string
		}{
			{"title", "Job title", &form.Title},
			{"company", "Company", &form.Company},
			{"location", "Location", &form.Location},
			{"description", "Description", &form.Description},
			{"skills", "Skills (comma separated)", &form.Skills},
		}

		for _, f := range fields {
			v, _ := cmd.Flags().GetString(f.flag)
			if v == "" {
				var err error
				if v, err = prompt.Ask(f.label, nonEmpty); err != nil {
					rt.exit(err)
				}
			}
			*f.target = v
		}

		dir, _ := cmd.Flags().GetString("output")
		nav, _ := rt.navigator(rt.client(), prompt, dir)

		rt.exit(nav.Navigate(rt.ctx, nav.Current(), screens.RouteJobPost, form))
	},
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posted jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		rt := setup(cmd.Context())

		nav, _ := rt.navigator(rt.client(), terminalPrompter{}, "")
		rt.exit(nav.Enter(rt.ctx, screens.RoutePostings))
	},
}

var jobDownloadCmd = &cobra.Command{
	Use:   "download <resume-id>",
	Short: "Download a matched resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt := setup(cmd.Context())
		rt.requireRole(session.RoleRecruiter)

		att, err := rt.client().DownloadResume(rt.ctx, args[0])
		if err != nil {
			rt.logger.Error("downloading resume", zap.Error(err), zap.String("resume", args[0]))
			rt.exit(fmt.Errorf("download: %w", err))
		}

		dir, _ := cmd.Flags().GetString("output")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			rt.exit(err)
		}

		path := filepath.Join(dir, filepath.Base(att.Filename))
		if err := os.WriteFile(path, att.Data, 0o644); err != nil {
			rt.logger.Error("saving resume", zap.Error(err))
			rt.exit(err)
		}

		rt.logger.Info("resume saved", zap.String("path", path), zap.Int("bytes", len(att.Data)))
		rt.exit(nil)
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.AddCommand(jobPostCmd, jobListCmd, jobDownloadCmd)

	jobPostCmd.Flags().String("title", "", "job title")
	jobPostCmd.Flags().String("company", "", "company name")
	jobPostCmd.Flags().String("location", "", "job location")
	jobPostCmd.Flags().String("description", "", "job description")
	jobPostCmd.Flags().String("skills", "", "comma separated list of skills")
	jobPostCmd.Flags().StringP("output", "o", ".", "directory for downloaded resumes")

	jobDownloadCmd.Flags().StringP("output", "o", ".", "directory to save the resume to")
}
