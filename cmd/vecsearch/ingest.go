package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/vecsearch/v1/config"
	"github.com/Aleph-Alpha/vecsearch/v1/minio"
	"github.com/Aleph-Alpha/vecsearch/v1/postgres"
	"github.com/Aleph-Alpha/vecsearch/v1/record"
	"github.com/Aleph-Alpha/vecsearch/v1/vectordb"
	"github.com/Aleph-Alpha/vecsearch/v1/workflow"
)

func NewIngestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Embed records and upsert them into a collection",
		Long: `Reads a JSON array of records from a file, a Postgres query or a MinIO
object, embeds each record and upserts it. The collection is created on first
use. Per-record failures are listed in the report; the command fails when the
run cannot start or when no record could be stored.`,
		Args: cobra.NoArgs,
		RunE: makeIngestRunner(a),
	}

	cmd.Flags().StringP("input", "i", "", "JSON file with an array of records")
	cmd.Flags().String("postgres-query", "", "SQL query whose rows are the records")
	cmd.Flags().String("object", "", "MinIO object holding the records (bucket/key)")
	cmd.MarkFlagsMutuallyExclusive("input", "postgres-query", "object")
	cmd.MarkFlagsOneRequired("input", "postgres-query", "object")

	addCollectionFlag(cmd)
	addModeFlag(cmd, string(vectordb.ModeDense))
	cmd.Flags().Int("batch-size", 0, "Records per upsert (default from config)")
	return cmd
}

func makeIngestRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		collection, _ := cmd.Flags().GetString("collection")
		modeFlag, _ := cmd.Flags().GetString("mode")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		mode, err := vectordb.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd, func(c *config.Config) {
			if batchSize > 0 {
				c.Workflow.BatchSize = batchSize
			}
		})
		if err != nil {
			return err
		}

		load, extra, err := recordSource(cmd, cfg)
		if err != nil {
			return err
		}

		return a.run(cmd.Context(), cfg, func(ctx context.Context, d deps) error {
			records, err := load(ctx, d)
			if err != nil {
				return err
			}
			report, err := d.Service.Ingest(ctx, records, collection, mode)
			if err != nil {
				return err
			}
			if err := outputJSON(cmd, report); err != nil {
				return err
			}
			if report.Status == workflow.StatusFailed {
				return &allFailedError{report: report}
			}
			return nil
		}, extra...)
	}
}

type loader func(context.Context, deps) ([]record.Record, error)

// recordSource picks the loader for the source flag that was set and the
// fx modules that loader needs.
func recordSource(cmd *cobra.Command, cfg *config.Config) (loader, []fx.Option, error) {
	input, _ := cmd.Flags().GetString("input")
	query, _ := cmd.Flags().GetString("postgres-query")
	object, _ := cmd.Flags().GetString("object")

	switch {
	case input != "":
		return func(context.Context, deps) ([]record.Record, error) {
			return record.LoadFile(input)
		}, nil, nil

	case query != "":
		if !cfg.Postgres.Enabled() {
			return nil, nil, fmt.Errorf("%w: --postgres-query needs POSTGRES_DSN or a postgres section", errConfig)
		}
		return func(ctx context.Context, d deps) ([]record.Record, error) {
			rows, err := d.Postgres.QueryRecords(ctx, query)
			if err != nil {
				return nil, err
			}
			return record.FromRows(rows), nil
		}, []fx.Option{postgres.FXModule}, nil

	case object != "":
		if !cfg.Minio.Enabled() {
			return nil, nil, fmt.Errorf("%w: --object needs MINIO_ENDPOINT or a minio section", errConfig)
		}
		bucket, key := minio.SplitObjectRef(object)
		return func(ctx context.Context, d deps) ([]record.Record, error) {
			data, err := d.Objects.Get(ctx, bucket, key)
			if err != nil {
				return nil, err
			}
			records, err := record.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", object, err)
			}
			return records, nil
		}, []fx.Option{minio.FXModule}, nil
	}
	return nil, nil, fmt.Errorf("%w: one of --input, --postgres-query or --object is required", vectordb.ErrInvalidArgument)
}
