package collector

import (
	"context"
	"fmt"
	"io"
	"time"

	"optionflow/config"
	"optionflow/internal/dashboard"
	"optionflow/internal/deribit/memorystore"
	"optionflow/internal/deribit/refresh"
	"optionflow/internal/deribit/snapshot"
	"optionflow/internal/flow"
	"optionflow/pkg/deribit"
	"optionflow/pkg/storage/postgres"

	"go.uber.org/zap"
)

// Archiver persists dashboard snapshots.
type Archiver interface {
	InsertSnapshot(ctx context.Context, m flow.Model) (int64, error)
	DeleteSnapshotsBefore(ctx context.Context, before time.Time) (int64, error)
	Close() error
}

// Collector wires the Deribit client, the flow pipeline, the optional
// archive and the dashboard together.
type Collector struct {
	cfg     *config.Config
	logger  *zap.Logger
	builder *flow.Builder
	archive Archiver
	now     func() time.Time
}

// New builds a Collector from configuration. The archive is opened only when
// archive.enabled is set.
func New(cfg *config.Config, logger *zap.Logger) (*Collector, error) {
	restClient := deribit.NewRESTClient(cfg.Deribit.REST.BaseURL, cfg.Deribit.REST.Timeout)
	source := snapshot.NewInstrumentLoader(restClient, logger.Named("deribit"))

	var archive Archiver
	if cfg.Archive.Enabled {
		client, err := postgres.InitializeAndMigrateSnapshotRecord(cfg.Postgres, cfg.Log.Environment, cfg.Archive.CreateDB)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot archive: %w", err)
		}
		archive = client
		logger.Info("snapshot archive enabled", zap.String("dbname", cfg.Postgres.DBName))
	}

	return NewWithSource(cfg, logger, source, archive), nil
}

// NewWithSource builds a Collector over any market data source.
func NewWithSource(cfg *config.Config, logger *zap.Logger, source flow.MarketData, archive Archiver) *Collector {
	return &Collector{
		cfg:    cfg,
		logger: logger,
		builder: &flow.Builder{
			Source:      source,
			Currency:    cfg.Scan.Currency,
			Window:      cfg.Scan.Window,
			Concurrency: cfg.Scan.Concurrency,
			Logger:      logger.Named("flow"),
		},
		archive: archive,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Build runs the pipeline once for the current time.
func (c *Collector) Build(ctx context.Context, now time.Time) flow.Model {
	return c.builder.Build(ctx, now)
}

// Snapshot builds one model, archives it when enabled and writes it as a
// text table.
func (c *Collector) Snapshot(ctx context.Context, w io.Writer) (flow.Model, error) {
	m := c.Build(ctx, c.now())
	c.archiveModel(ctx, m)

	if err := dashboard.WriteTable(w, m); err != nil {
		return m, fmt.Errorf("write table: %w", err)
	}
	return m, nil
}

// Serve refreshes the model periodically and serves the dashboard until ctx
// is cancelled.
func (c *Collector) Serve(ctx context.Context) error {
	store := memorystore.NewModelStore()

	scheduler := &refresh.Scheduler{
		Interval: c.cfg.Server.RefreshInterval,
		Build:    c.Build,
		Sinks: []func(context.Context, flow.Model){
			func(_ context.Context, m flow.Model) { store.Set(m) },
			c.archiveModel,
		},
		Now:    c.now,
		Logger: c.logger.Named("refresh"),
	}
	go scheduler.Run(ctx)

	server := dashboard.NewServer(store, c.logger.Named("dashboard"))
	return server.ListenAndServe(ctx, c.cfg.Server.Addr)
}

// Close releases the archive connection.
func (c *Collector) Close() error {
	if c.archive == nil {
		return nil
	}
	return c.archive.Close()
}

func (c *Collector) archiveModel(ctx context.Context, m flow.Model) {
	if c.archive == nil || m.State != flow.StateReady {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := c.archive.InsertSnapshot(dbCtx, m)
	if err != nil {
		c.logger.Warn("failed to archive snapshot", zap.Time("generated_at", m.GeneratedAt), zap.Error(err))
		return
	}
	c.logger.Info("archived snapshot", zap.Int64("rows", n), zap.Time("generated_at", m.GeneratedAt))

	retention := c.cfg.Archive.Retention
	if retention <= 0 {
		return
	}
	cutoff := m.GeneratedAt.Add(-retention)
	deleted, err := c.archive.DeleteSnapshotsBefore(dbCtx, cutoff)
	if err != nil {
		c.logger.Warn("failed to prune snapshots", zap.Time("cutoff", cutoff), zap.Error(err))
		return
	}
	if deleted > 0 {
		c.logger.Info("pruned snapshots", zap.Int64("rows", deleted), zap.Time("cutoff", cutoff))
	}
}
