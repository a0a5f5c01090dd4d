package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// configPath is the persistent --config flag shared by every subcommand.
var configPath string

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo-server",
		Short:         "Todo backend with manager assignment over gRPC",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (defaults to $CONFIG_FILE)")
	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newTokenCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error("todo-server", "err", err)
		os.Exit(1)
	}
}
