package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           Talent Workflow API
// @version         1.0
// @description     Recruiting workflow backend: jobs, skills and candidate evaluation backed by agent runtimes.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name auth
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	json  bool
	debug bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	serve := newServeCmd(flags)
	root := &cobra.Command{
		Use:           "talent-workflow-api",
		Short:         "Recruiting workflow backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		// serve is the default
		RunE: serve.RunE,
	}

	root.PersistentFlags().BoolVarP(&flags.json, "json", "j", false, "json format for logging (overrides LOG_JSON)")
	root.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "verbose/debug output (overrides LOG_DEBUG)")

	root.AddCommand(serve)
	root.AddCommand(newMigrateCmd(flags))
	root.AddCommand(newHashPasswordCmd())
	return root
}
