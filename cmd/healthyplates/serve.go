package healthyplates

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the grocery and health plan generators over HTTP",
	Long: "Serve JSON endpoints: POST /v1/grocery-list, POST /v1/health-plan/targets, " +
		"POST /v1/health-plan, GET /v1/practices, GET /v1/greeting and GET /healthz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}
		return withCatalog(func(cat *catalog.Catalog) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.New(cat, cfg.Server, slog.Default()).Run(ctx, addr)
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
}
