package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/husseinbouik/task-manager-app-backend/internal/domain"
	"github.com/husseinbouik/task-manager-app-backend/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationTask(t *testing.T) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(uuid.New(), "Buy groceries", nil, "", nil)
	require.NoError(t, err)
	return task
}

func TestNewTaskCreatedJob(t *testing.T) {
	t.Parallel()

	task := newNotificationTask(t)
	job := notify.NewTaskCreatedJob(task, nil)

	assert.NotEqual(t, uuid.Nil, job.ID())
	assert.Equal(t, notify.JobTypeTaskCreated, job.Type())
	assert.Equal(t, task.ID, job.TaskID())
	assert.Equal(t, task.Title, job.TaskTitle())
}

func TestTaskCreatedJob_CapturesFieldsAtCreation(t *testing.T) {
	t.Parallel()

	task := newNotificationTask(t)
	job := notify.NewTaskCreatedJob(task, nil)

	task.Title = "renamed after enqueue"
	assert.Equal(t, "Buy groceries", job.TaskTitle())
}

func TestTaskCreatedJob_ExecuteLogsNotification(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	task := newNotificationTask(t)
	job := notify.NewTaskCreatedJob(task, logger)

	require.NoError(t, job.Execute(context.Background()))

	output := buf.String()
	assert.Contains(t, output, "notification sent for task")
	assert.Contains(t, output, task.Title)
	assert.Contains(t, output, task.ID.String())
	assert.Contains(t, output, task.OwnerID.String())
}

func TestDispatcher_TaskCreated(t *testing.T) {
	t.Parallel()

	t.Run("enqueues a notification job", func(t *testing.T) {
		t.Parallel()

		queue := notify.NewQueue(1, nil)
		dispatcher := notify.NewDispatcher(queue, nil)
		task := newNotificationTask(t)

		dispatcher.TaskCreated(context.Background(), task)

		select {
		case job := <-queue.GetChannel():
			assert.Equal(t, notify.JobTypeTaskCreated, job.Type())
		default:
			t.Fatal("no job was enqueued")
		}
	})

	t.Run("drops the notification when the queue is full", func(t *testing.T) {
		t.Parallel()

		queue := notify.NewQueue(1, nil)
		dispatcher := notify.NewDispatcher(queue, nil)

		dispatcher.TaskCreated(context.Background(), newNotificationTask(t))
		// Second submission overflows the queue; it must be dropped silently.
		dispatcher.TaskCreated(context.Background(), newNotificationTask(t))

		<-queue.GetChannel()
		select {
		case <-queue.GetChannel():
			t.Fatal("overflow job should have been dropped")
		default:
		}
	})

	t.Run("drops the notification when the queue is closed", func(t *testing.T) {
		t.Parallel()

		queue := notify.NewQueue(1, nil)
		dispatcher := notify.NewDispatcher(queue, nil)
		queue.Close()

		dispatcher.TaskCreated(context.Background(), newNotificationTask(t))
	})
}
