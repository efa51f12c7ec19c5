// Package notify implements the asynchronous notification dispatcher:
// a buffered in-process job queue with a worker pool consumer. Producers
// submit fire-and-forget jobs and never wait on their execution; job
// failures are handled entirely inside the worker loop.
package notify

import (
	"context"

	"github.com/google/uuid"
)

// Job type constants
const (
	// JobTypeTaskCreated represents the notification fired when a task is created
	JobTypeTaskCreated = "task_created"
)

// Job represents a unit of background work to be processed
type Job interface {
	// ID returns the job's unique identifier
	ID() uuid.UUID

	// Type returns the job type identifier
	Type() string

	// Execute runs the job logic
	Execute(ctx context.Context) error
}

// QueueReader provides read-only access to the job channel
// allowing workers to consume jobs without the ability to enqueue
type QueueReader interface {
	// GetChannel returns a read-only channel for consuming jobs
	GetChannel() <-chan Job
}

// QueueWriter provides write access to the job queue
// allowing services to enqueue jobs for processing
type QueueWriter interface {
	// Enqueue adds a job to the queue for processing
	// Returns an error if the queue is full or closed
	Enqueue(job Job) error

	// Close closes the job queue, preventing further job submission
	Close()
}
