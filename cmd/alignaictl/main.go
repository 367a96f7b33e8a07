package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag string
	sidFlag string
	rootCmd = &cobra.Command{
		Use:   "alignaictl",
		Short: "CLI client for the alignai assistant REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:4000", "Assistant service base URL")
	rootCmd.PersistentFlags().StringVarP(&sidFlag, "sid", "s", "", "Session cookie value (from a logged-in browser session)")

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check service health and configured integrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHealth(apiFlag, os.Stdout)
		},
	}
	rootCmd.AddCommand(healthCmd)

	chatCmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send a planning message for the current week",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weekOffset, _ := cmd.Flags().GetInt("week-offset")
			if sidFlag == "" {
				return fmt.Errorf("--sid required")
			}
			return runChat(apiFlag, sidFlag, args[0], weekOffset, os.Stdout)
		},
	}
	chatCmd.Flags().IntP("week-offset", "w", 0, "Week offset relative to the current week")
	rootCmd.AddCommand(chatCmd)

	topTasksCmd := &cobra.Command{
		Use:   "top-tasks",
		Short: "Rank the top priorities for today or the week",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, _ := cmd.Flags().GetString("scope")
			weekOffset, _ := cmd.Flags().GetInt("week-offset")
			if sidFlag == "" {
				return fmt.Errorf("--sid required")
			}
			return runTopTasks(apiFlag, sidFlag, scope, weekOffset, os.Stdout)
		},
	}
	topTasksCmd.Flags().String("scope", "today", `Ranking scope: "today" or "week"`)
	topTasksCmd.Flags().IntP("week-offset", "w", 0, "Week offset relative to the current week")
	rootCmd.AddCommand(topTasksCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
