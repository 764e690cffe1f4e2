package root

import (
	"fmt"

	"github.com/flarebyte/salute/cmd/salute/batch"
	"github.com/flarebyte/salute/cmd/salute/hello"
	"github.com/flarebyte/salute/cmd/salute/serve"
	"github.com/flarebyte/salute/cmd/salute/version"
	"github.com/flarebyte/salute/internal/greet"
	"github.com/flarebyte/salute/internal/logger"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for salute.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salute",
		Short: "CLI: Say hello to the world, one name at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The bare command greets the default name.
			_, err := fmt.Fprintln(cmd.OutOrStdout(), greet.Greet(greet.DefaultName))
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String(logger.LevelFlag, logger.DefaultLevel, "Diagnostics level on stderr (debug, info, warn, error)")

	// Subcommands
	cmd.AddCommand(version.Cmd)
	cmd.AddCommand(hello.Cmd)
	cmd.AddCommand(batch.Cmd)
	cmd.AddCommand(serve.Cmd)

	return cmd
}

// Execute runs the root command with provided args.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
