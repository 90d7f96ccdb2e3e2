package cli

import (
	"github.com/spf13/cobra"

	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

func newGraphCommand(app *App) *cobra.Command {
	var jobName string

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Print the assembled transition graph of a job definition",
		Long: `Print the transition graph a job definition assembles to, one
outgoing edge per line in declaration order. Terminal targets show the batch
status the flow resolves to when they are reached.

Example:
  riptide graph payroll-job.xml
  riptide graph payroll-job.xml --job payroll`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			job, err := jobxml.LoadJobDefinitionFromFile(args[0], app.Expander)
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
				return NewExitError(1)
			}
			if jobName != "" && job.ID != jobName {
				cmd.PrintErrf("Error: job '%s' not found in %s (file defines '%s')\n", jobName, args[0], job.ID)
				return NewExitError(1)
			}

			flow, steps, err := jobxml.AssembleFlow(job, jobxml.NewEndStateSequence())
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
				return NewExitError(1)
			}

			cmd.Printf("Job: %s (%d steps, %d states, %d transitions)\n\n",
				job.ID, len(steps), len(flow.States), len(flow.Transitions))
			cmd.Printf("%-20s %-20s %-20s %s\n", "STATE", "ON", "NEXT", "STATUS")
			for _, state := range flow.StateNames() {
				info, _ := flow.State(state)
				if info.Kind != model.StateKindStep {
					continue
				}
				for _, t := range flow.TransitionsFrom(state) {
					on := t.Pattern
					if on == "" {
						on = "-"
					}
					next := t.Next
					status := "-"
					if next == "" {
						next = "-"
					} else if target, ok := flow.State(next); ok && target.Kind == model.StateKindTerminal {
						status = target.TerminalStatus.String()
					}
					cmd.Printf("%-20s %-20s %-20s %s\n", state, on, next, status)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&jobName, "job", "", "name the printed job must match")
	return cmd
}
