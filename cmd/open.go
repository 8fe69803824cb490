package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/handoff"
	"github.com/Ricky-790/RAG-based-Job-matching-platform/internal/screens"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [screen]",
	Short: "Open a screen directly (default: dashboard)",
	Long: `Open a screen without going through the workflow that normally leads to it.
Screens that show pipeline results render an empty state when opened this way.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt := setup(cmd.Context())

		nav, _ := rt.navigator(rt.client(), terminalPrompter{}, ".")

		route := screens.RouteDashboard
		if len(args) == 1 {
			route = handoff.Route(args[0])
		}

		if err := nav.Enter(rt.ctx, route); err != nil {
			routes := nav.Routes()
			names := make([]string, len(routes))
			for i, r := range routes {
				names[i] = string(r)
			}
			sort.Strings(names)
			fmt.Printf("Available screens: %s\n", strings.Join(names, ", "))
			rt.exit(err)
		}

		rt.exit(nil)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
