package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

//
// ──────────────────────────────────────────────────────────────
//   QDRANT CLIENT WRAPPER
// ──────────────────────────────────────────────────────────────
//
// This file defines a thin wrapper around the official Qdrant Go client.
// QdrantClient implements vectordb.Store, so the workflow layer never
// imports the SDK directly.
//
// Responsibilities:
//   • Establish and validate connectivity with Qdrant.
//   • Translate store-agnostic requests into SDK requests and back.
//   • Bound every call by the configured timeout.
//   • Classify SDK errors into vectordb sentinels.
//

// Logger is the logging contract used by this package. *logger.Logger
// satisfies it.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// api is the subset of *qdrant.Client used by QdrantClient. Tests replace
// it with an in-process fake.
type api interface {
	HealthCheck(ctx context.Context) (*qdrant.HealthCheckReply, error)
	ListCollections(ctx context.Context) ([]string, error)
	GetCollectionInfo(ctx context.Context, collectionName string) (*qdrant.CollectionInfo, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	DeleteCollection(ctx context.Context, collectionName string) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Close() error
}

// QdrantClient wraps the official Qdrant Go client and implements
// vectordb.Store on top of it.
type QdrantClient struct {
	api     api
	sdk     *qdrant.Client
	cfg     *Config
	logger  Logger
	started bool
}

// NewQdrantClient ──────────────────────────────────────────────────────────────
// NewQdrantClient
// ──────────────────────────────────────────────────────────────
//
// NewQdrantClient constructs a new instance of QdrantClient and validates
// connectivity via a health check.
//
// The Qdrant Go SDK creates lightweight gRPC connections, so this method
// performs an immediate health check to fail fast if the service is unreachable.
// A failed health check is reported as vectordb.ErrStoreUnavailable.
//
// Example:
//
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg, Logger: log})
func NewQdrantClient(p QdrantParams) (*QdrantClient, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultGRPCPort
	}

	p.Logger.Info("Connecting to Qdrant", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
		"tls":      cfg.UseTLS,
	})

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] failed to initialize client: %w", err)
	}

	qc := newWithAPI(client, cfg, p.Logger)
	qc.sdk = client

	if err := qc.Health(context.Background()); err != nil {
		_ = client.Close()
		return nil, err
	}

	p.Logger.Info("Qdrant client connected", nil, map[string]interface{}{"address": cfg.Address()})
	return qc, nil
}

// newWithAPI wires a client around any api implementation.
func newWithAPI(a api, cfg *Config, logger Logger) *QdrantClient {
	return &QdrantClient{
		api:     a,
		cfg:     cfg,
		logger:  logger,
		started: true,
	}
}

// Health ──────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────
//
// Health verifies the availability of the Qdrant service through the SDK
// health check. It is bounded by ConnectTimeout.
func (c *QdrantClient) Health(ctx context.Context) error {
	if !c.started || c.api == nil {
		return fmt.Errorf("[Qdrant] client not initialized")
	}

	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return classify("health check", err)
	}

	c.logger.Debug("Qdrant health check passed", nil, map[string]interface{}{
		"title":    resp.GetTitle(),
		"version":  resp.GetVersion(),
		"endpoint": c.cfg.Endpoint,
	})
	return nil
}

// Client returns the underlying Qdrant SDK client, or nil when the wrapper
// was built around a fake.
func (c *QdrantClient) Client() *qdrant.Client {
	return c.sdk
}

// Close ──────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────
//
// Close shuts down the gRPC connection. Calling it twice is safe.
func (c *QdrantClient) Close() error {
	if !c.started {
		return nil
	}
	c.started = false

	c.logger.Info("Closing Qdrant client", nil, nil)
	return c.api.Close()
}

// withTimeout bounds a single store call by cfg.Timeout.
func (c *QdrantClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}
