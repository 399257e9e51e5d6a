package slog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/fwojciec/sift"
)

var (
	_ sift.ActorRunner   = (*LoggingActorRunner)(nil)
	_ sift.DatasetReader = (*LoggingDatasetReader)(nil)
)

// LoggingActorRunner wraps an ActorRunner with logging.
type LoggingActorRunner struct {
	next   sift.ActorRunner
	logger *slog.Logger
}

// NewLoggingActorRunner creates a new LoggingActorRunner.
func NewLoggingActorRunner(next sift.ActorRunner, logger *slog.Logger) *LoggingActorRunner {
	return &LoggingActorRunner{next: next, logger: logger}
}

// RunActor delegates to the wrapped runner and logs the run.
func (r *LoggingActorRunner) RunActor(ctx context.Context, actorID string, input any, waitSeconds int) (datasetID string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("actor run",
			"actor", actorID,
			"dataset", datasetID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.RunActor(ctx, actorID, input, waitSeconds)
}

// LoggingDatasetReader wraps a DatasetReader with logging.
type LoggingDatasetReader struct {
	next   sift.DatasetReader
	logger *slog.Logger
}

// NewLoggingDatasetReader creates a new LoggingDatasetReader.
func NewLoggingDatasetReader(next sift.DatasetReader, logger *slog.Logger) *LoggingDatasetReader {
	return &LoggingDatasetReader{next: next, logger: logger}
}

// DatasetItems delegates to the wrapped reader and logs the item count.
func (r *LoggingDatasetReader) DatasetItems(ctx context.Context, datasetID string, limit int) (items []json.RawMessage, err error) {
	defer func(begin time.Time) {
		r.logger.Info("dataset read",
			"dataset", datasetID,
			"limit", limit,
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.DatasetItems(ctx, datasetID, limit)
}
