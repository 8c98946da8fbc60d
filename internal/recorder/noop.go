package recorder

import (
	"context"

	"CycleSentinel/internal/model"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAnalysis(_ context.Context, _ *model.AnalysisResult) (string, error) {
	return "", nil
}

func (n *NoopRecorder) RecentRuns(_ context.Context, _ int) ([]RunSummary, error) {
	return nil, nil
}

func (n *NoopRecorder) Close() error { return nil }
