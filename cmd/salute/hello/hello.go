package hello

import (
	"github.com/flarebyte/salute/internal/greet"
	"github.com/flarebyte/salute/internal/render"
	"github.com/spf13/cobra"
)

var flagFormat string

// Cmd implements `salute hello [NAME]`.
var Cmd = &cobra.Command{
	Use:           "hello [NAME]",
	Short:         "Greet a single name",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := render.ParseFormat(flagFormat, render.FormatText, render.FormatJSON, render.FormatYAML)
		if err != nil {
			return err
		}
		// An explicit "" argument is greeted as is.
		name := greet.DefaultName
		if len(args) == 1 {
			name = args[0]
		}
		return render.WriteGreeting(cmd.OutOrStdout(), format, render.Greeting{
			Name:    name,
			Message: greet.Greet(name),
		})
	},
}

func init() {
	Cmd.Flags().StringVarP(&flagFormat, "format", "f", string(render.FormatText), "Output format: text, json or yaml")
}
