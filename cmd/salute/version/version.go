package version

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/flarebyte/salute/internal/buildinfo"
	"github.com/spf13/cobra"
)

var (
	flagShort bool
	flagJSON  bool
)

// Cmd implements `salute version`.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShort || !flagJSON {
			// Exactly one line, stable for scripts.
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", buildinfo.Name, buildinfo.Summary())
			return err
		}

		// JSON goes to stdout; a human friendly line goes to stderr.
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s version: %s\n", buildinfo.Name, buildinfo.Summary())
		return encodeJSON(cmd.OutOrStdout(), buildinfo.Current(time.Now()))
	},
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	Cmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version string")
	Cmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed JSON version info")
}
