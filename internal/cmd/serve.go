package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/core"
	"github.com/orglens/orglens/internal/core/store"
	"github.com/orglens/orglens/internal/observability"
	"github.com/orglens/orglens/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP mapping server",
	Long:  "Serve the mapping pipeline over HTTP. Mapped hierarchies are persisted to the local store.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("no-save", false, "Do not persist mapped hierarchies")
}

func runServe(cmd *cobra.Command, args []string) error {
	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return err
	}

	serverLogger := observability.NewServerLogger(cfg.Logging.Level)
	defer serverLogger.Sync() // nolint:errcheck // best-effort flush

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var m server.Mapper = buildMapper(cfg, serverLogger)
	if !noSave {
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close() // nolint:errcheck // best-effort cleanup
		m = &persistingMapper{inner: m, store: db, logger: serverLogger}
	}

	srv := server.New(cfg.Server, serverLogger, m, cfg.Metrics.Enabled)
	return srv.Run(ctx)
}

// persistingMapper saves each successful mapping. A failed save is logged,
// never surfaced to the caller.
type persistingMapper struct {
	inner  server.Mapper
	store  *store.Store
	logger *zap.Logger
}

func (m *persistingMapper) Map(ctx context.Context, company string) (*core.ValidatedResult, error) {
	result, err := m.inner.Map(ctx, company)
	if err != nil {
		return nil, err
	}
	if _, err := m.store.SaveResult(ctx, result); err != nil {
		m.logger.Error("failed to persist result", zap.String("company", company), zap.Error(err))
	}
	return result, nil
}
