package cmd

import (
	"fmt"
	"resizer/internal/adapters/handler"
	"resizer/internal/core/domain"
	"strings"

	"github.com/spf13/cobra"
)

func newJobsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"dashboard"},
		Short:   "List, inspect and delete past resizes",
	}

	cmd.AddCommand(newJobsListCmd(a))
	cmd.AddCommand(newJobsShowCmd(a))
	cmd.AddCommand(newJobsDeleteCmd(a))

	return cmd
}

func newJobsListCmd(a *app) *cobra.Command {
	var (
		opts   handler.ListOptions
		status string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List resizes",
		Example: `  resizer jobs list
  resizer jobs list --query holiday --status ready
  resizer jobs list --output yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := domain.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			opts.Status = s

			if err := a.dashboardView(cmd.OutOrStdout()).List(cmd.Context(), opts); err != nil {
				return userError(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "match file name or id")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusAll), "All, Ready, Processing or Failed")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handler.OutputTable, "table or yaml")

	return cmd
}

func newJobsShowCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single resize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.dashboardView(cmd.OutOrStdout()).Show(cmd.Context(), args[0], output); err != nil {
				return userError(err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "yaml for machine-readable output")

	return cmd
}

func newJobsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a resize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirm := func(job domain.Job) bool {
				if yes {
					return true
				}

				answer, err := readLine(cmd.InOrStdin(), cmd.ErrOrStderr(),
					fmt.Sprintf("Delete %s (%s)? [y/N] ", job.FileName, job.ID))
				if err != nil {
					return false
				}

				answer = strings.ToLower(answer)

				return answer == "y" || answer == "yes"
			}

			deleted, err := a.dashboardView(cmd.OutOrStdout()).Delete(cmd.Context(), args[0], confirm)
			if err != nil {
				return userError(err)
			}

			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
