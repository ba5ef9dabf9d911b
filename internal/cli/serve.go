package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/plugboard-dev/plugboard/internal/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve url.handlers contributions over HTTP",
	Long: `Load the built-in modules and installed plugins, run the app.started hooks
and serve HTTP until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(a.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return a.Serve(ctx, config.Current().Listen)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Address to listen on (default :8080)")
	rootCmd.AddCommand(serveCmd)
}
