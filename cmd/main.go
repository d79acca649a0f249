package main

import (
	"fmt"
	"os"

	_ "github.com/AgentTarik/gosat-api/docs"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gosat-api",
		Short:         "Gosat API - CPF lookup, partner offers and loan requests",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// serve is the default
		RunE: runServe,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(tokenCmd())
	return root
}
