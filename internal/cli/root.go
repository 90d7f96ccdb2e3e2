// Package cli implements the riptide command line interface: offline
// validation and inspection of batch job definition files.
package cli

import (
	"github.com/spf13/cobra"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
)

// App bundles the collaborators the commands work with. Tests substitute
// their own expander to control how placeholders resolve.
type App struct {
	// Expander resolves ${VAR} placeholders in definition files before decoding.
	Expander config.EnvironmentExpander
}

// NewApp creates an App wired to the process environment.
func NewApp() *App {
	return &App{
		Expander: config.NewOsEnvironmentExpander(),
	}
}

// NewRootCommand creates the root command and attaches all subcommands.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "riptide",
		Short: "Assemble and inspect batch job definitions",
		Long: `riptide loads XML batch job definitions, assembles their transition
graphs, and reports what it finds. It performs the same resolution and
validation the embedded loader runs at application startup, without starting
an application.`,
	}

	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newGraphCommand(app))

	return rootCmd
}
