package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/openrdap/rdap"
	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/collect"
	"github.com/orglens/orglens/internal/config"
	"github.com/orglens/orglens/internal/core/enrich"
	"github.com/orglens/orglens/internal/core/prepare"
	"github.com/orglens/orglens/internal/core/store"
	"github.com/orglens/orglens/internal/core/validate"
	"github.com/orglens/orglens/internal/mapper"
)

// buildMapper assembles the collection, preparation and validation stack
// from config.
func buildMapper(cfg *config.Config, logger *zap.Logger) *mapper.Mapper {
	collector := &collect.Collector{
		HTTPClient: &http.Client{Timeout: cfg.Collector.Timeout},
		BaseURL:    cfg.Collector.BaseURL,
		UserAgent:  cfg.Collector.UserAgent,
		Delay:      cfg.Collector.RequestDelay,
		Logger:     logger,
	}

	enricher := &enrich.Enricher{
		Resolver: net.DefaultResolver,
		Identity: &enrich.PlaceholderIdentity{},
		Timeout:  cfg.Enrich.Timeout,
	}

	preparer := &prepare.Pipeline{
		Enricher: enricher,
		Probe:    buildProbe(cfg.DANS),
		Logger:   logger,
	}

	validator := &validate.Pipeline{
		Resolver:   net.DefaultResolver,
		HTTPClient: &http.Client{Timeout: cfg.Validate.ProbeTimeout},
		Timeout:    cfg.Validate.ResolveTimeout,
		Logger:     logger,
	}

	return &mapper.Mapper{
		Collector: collector,
		Preparer:  preparer,
		Validator: validator,
		Logger:    logger,
	}
}

func buildProbe(cfg config.DANSConfig) enrich.AssetProbe {
	if !cfg.RDAPProbe.Enabled {
		return enrich.NoopProbe{}
	}
	return &enrich.RDAPProbe{
		Client:   &rdap.Client{},
		Suffixes: cfg.RDAPProbe.Suffixes,
		Timeout:  cfg.RDAPProbe.Timeout,
	}
}

func openStore(ctx context.Context) (*store.Store, error) {
	if cfg == nil {
		return nil, errors.New("config not loaded")
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := store.Open(openCtx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(openCtx); err != nil {
		_ = db.Close() // nolint:errcheck // best-effort cleanup
		return nil, err
	}
	return db, nil
}
