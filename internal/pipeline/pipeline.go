//-------------------------------------------------------------------------
//
// Sparkify Warehouse ETL
//
// Copyright (c) 2025 - 2026, Sparkify Data Engineering
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline drives the ETL statement catalog against the warehouse.
//
// Two linear pipelines exist: setup (drop all, create all) and ETL (load
// staging, transform, analytics). Execution is strictly sequential, one
// statement in flight at a time, and each statement commits on its own.
// The first failure aborts the remaining steps of that pipeline; there is
// no retry and no rollback of statements that already committed, so after
// a mid-pipeline failure the only recovery path is a fresh reset.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sparkify/warehouse-etl/internal/db"
	"github.com/sparkify/warehouse-etl/internal/logging"
	"github.com/sparkify/warehouse-etl/internal/warehouse"
)

// Pipeline executes catalog statements against a single warehouse
// connection (or a pool, in tests).
type Pipeline struct {
	exec    db.Executor
	catalog *warehouse.Catalog
	out     io.Writer
}

// New creates a pipeline writing analytics results to stdout.
func New(exec db.Executor, catalog *warehouse.Catalog) *Pipeline {
	return NewWithOutput(exec, catalog, os.Stdout)
}

// NewWithOutput creates a pipeline writing analytics results to out.
func NewWithOutput(exec db.Executor, catalog *warehouse.Catalog, out io.Writer) *Pipeline {
	return &Pipeline{exec: exec, catalog: catalog, out: out}
}

// Reset drops and recreates every table, leaving an empty schema. Running
// it twice in a row yields the same empty state both times.
func (p *Pipeline) Reset(ctx context.Context) error {
	if err := p.execute(ctx, "drop", p.catalog.DropStatements()); err != nil {
		return err
	}
	if err := p.execute(ctx, "create", p.catalog.CreateStatements()); err != nil {
		return err
	}
	if err := db.SaveResetMetadata(ctx, p.exec); err != nil {
		return err
	}
	logging.Info().Msg("Schema reset complete")
	return nil
}

// LoadStaging bulk-loads the raw files into the two staging tables.
func (p *Pipeline) LoadStaging(ctx context.Context) error {
	return p.execute(ctx, "load", p.catalog.CopyStatements())
}

// Transform populates the dimension tables and then the fact table from
// staging.
func (p *Pipeline) Transform(ctx context.Context) error {
	return p.execute(ctx, "transform", p.catalog.TransformStatements())
}

// Analyze runs the reporting queries over the inclusive [start, end] date
// window and prints each result set.
func (p *Pipeline) Analyze(ctx context.Context, start, end time.Time) error {
	for _, q := range p.catalog.AnalyticsQueries() {
		logging.Info().
			Str("query", q.Name).
			Str("start", start.Format("2006-01-02")).
			Str("end", end.Format("2006-01-02")).
			Msg("Executing analytics query")

		result, err := p.fetchAll(ctx, q, start, end)
		if err != nil {
			return fmt.Errorf("analytics query %s failed: %w", q.Name, err)
		}

		fmt.Fprintf(p.out, "\n%s — %s\n", q.Name, q.Description)
		renderTable(p.out, result.Columns, result.Rows)

		logging.Info().
			Str("query", q.Name).
			Int("rows", len(result.Rows)).
			Msg("Analytics query complete")
	}
	return nil
}

// RunOptions controls which ETL stages execute.
type RunOptions struct {
	// SkipLoad skips the staging COPY statements. Used when staging was
	// populated another way, such as the seed command.
	SkipLoad bool

	// SkipAnalytics stops after the transforms.
	SkipAnalytics bool
}

// Run executes the full ETL pipeline: staging loads, dimensional
// transforms, then analytics over the given window. Each stage must fully
// complete before the next starts.
func (p *Pipeline) Run(ctx context.Context, start, end time.Time, opts RunOptions) error {
	if !opts.SkipLoad {
		if err := p.LoadStaging(ctx); err != nil {
			return err
		}
	}
	if err := p.Transform(ctx); err != nil {
		return err
	}
	if !opts.SkipAnalytics {
		if err := p.Analyze(ctx, start, end); err != nil {
			return err
		}
	}
	if err := db.SaveRunMetadata(ctx, p.exec); err != nil {
		return err
	}
	logging.Info().Msg("ETL run complete")
	return nil
}

// execute runs the statements of one stage in order, stopping at the first
// failure.
func (p *Pipeline) execute(ctx context.Context, stage string, stmts []warehouse.Statement) error {
	for _, stmt := range stmts {
		logging.Info().
			Str("stage", stage).
			Str("statement", stmt.Name).
			Msg("Executing statement")

		started := time.Now()
		tag, err := p.exec.Exec(ctx, stmt.SQL)
		if err != nil {
			return fmt.Errorf("statement %s failed: %w", stmt.Name, err)
		}

		logging.Info().
			Str("stage", stage).
			Str("statement", stmt.Name).
			Int64("rows", tag.RowsAffected()).
			Dur("elapsed", time.Since(started)).
			Msg("Statement complete")
	}
	return nil
}
