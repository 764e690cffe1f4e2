package batch

import (
	"errors"

	"github.com/flarebyte/salute/internal/batch"
	"github.com/flarebyte/salute/internal/config"
	"github.com/flarebyte/salute/internal/logger"
	"github.com/flarebyte/salute/internal/render"
	"github.com/spf13/cobra"
)

var cfgPath string

// Cmd implements `salute batch`.
var Cmd = &cobra.Command{
	Use:           "batch",
	Short:         "Greet every name listed in *.names.yaml files",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			return errors.New("missing required flag: --config")
		}
		cfg, err := config.LoadBatch(cfgPath)
		if err != nil {
			return err
		}
		l, err := logger.ForCommand(cmd)
		if err != nil {
			return err
		}
		env, err := batch.Run(cmd.Context(), cfg, l)
		if err != nil {
			return err
		}
		if err := render.WriteEnvelope(cmd.OutOrStdout(), render.Format(cfg.Output.Format), env, cfg.Output.Pretty); err != nil {
			return err
		}
		return evaluateBatchExit(cfg, env)
	},
}

func init() {
	Cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to config file (.cue)")
}
