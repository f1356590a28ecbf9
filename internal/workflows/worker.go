package workflows

import (
	"go.temporal.io/sdk/workflow"
)

// ComputeParams carries everything a compute workflow needs. The
// correlation token travels with the job so the result upload and the
// terminal status event can be matched back to the record that
// requested them.
type ComputeParams struct {
	JobID            string
	ItemID           string
	FileID           string
	Label            bool
	Bitmask          bool
	Bins             int
	CorrelationToken string
	UserID           string
}

// ComputeWorker defines the histogram compute workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/compute_worker.go -package=mocks -mock_names=ComputeWorker=MockComputeWorker
type ComputeWorker interface {
	// ComputeHistogram downloads the source image, computes its
	// histogram, stores the result and reports job status on the bus
	ComputeHistogram(ctx workflow.Context, params *ComputeParams) error
}

// computeWorker is the concrete implementation of ComputeWorker
type computeWorker struct {
	executor Executor
}

// NewComputeWorker creates a new compute worker instance
func NewComputeWorker(executor Executor) ComputeWorker {
	return &computeWorker{executor: executor}
}
