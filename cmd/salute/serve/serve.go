package serve

import (
	"os"

	"github.com/flarebyte/salute/internal/buildinfo"
	"github.com/flarebyte/salute/internal/logger"
	"github.com/flarebyte/salute/internal/server"
	"github.com/go-kratos/kratos/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var flagAddr string

// envFiles are loaded in order; earlier files win since existing values are
// never overridden.
var envFiles = []string{".env.local", ".env"}

// Cmd implements `salute serve`.
var Cmd = &cobra.Command{
	Use:           "serve",
	Short:         "Serve greetings over HTTP for local development",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadEnvFiles()
		l, err := logger.ForCommand(cmd)
		if err != nil {
			return err
		}
		srv := server.NewHTTPServer(server.Options{Addr: resolveAddr(flagAddr, os.Getenv)}, l)
		app := kratos.New(
			kratos.Name(buildinfo.Name),
			kratos.Version(buildinfo.EffectiveVersion()),
			kratos.Context(cmd.Context()),
			kratos.Server(srv),
		)
		// Blocks until SIGINT/SIGTERM or the command context is done.
		return app.Run()
	},
}

// loadEnvFiles reads the optional dotenv files in the working directory.
func loadEnvFiles() {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
}

// resolveAddr picks --addr, then :$PORT, then the default port.
func resolveAddr(flag string, getenv func(string) string) string {
	if flag != "" {
		return flag
	}
	if port := getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":" + server.DefaultPort
}

func init() {
	Cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default :$PORT or :"+server.DefaultPort+")")
}
