package main

import (
	"os"

	cli "github.com/hamaguri/riptide/internal/cli"
)

func main() {
	app := cli.NewApp()
	rootCmd := cli.NewRootCommand(app)

	if err := rootCmd.Execute(); err != nil {
		if code, ok := cli.IsExitError(err); ok {
			os.Exit(code)
		}
		os.Exit(1)
	}
}
