package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

type captureEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (c *captureEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{ID: "t1", Type: task.Type()}, nil
}

func TestQueueRecorderEnqueuesTurn(t *testing.T) {
	enq := &captureEnqueuer{}
	rec := NewQueueRecorder(enq)
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	rec.now = func() time.Time { return at }

	if err := rec.RecordTurn(context.Background(), "s1", "hello", "Hi there!"); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}
	if len(enq.tasks) != 1 {
		t.Fatalf("enqueued %d tasks, want 1", len(enq.tasks))
	}
	task := enq.tasks[0]
	if task.Type() != TypeRecordTurn {
		t.Errorf("type = %q, want %q", task.Type(), TypeRecordTurn)
	}
	p, err := ParseRecordTurnTask(task)
	if err != nil {
		t.Fatalf("ParseRecordTurnTask: %v", err)
	}
	if p.SessionID != "s1" || p.UserMessage != "hello" || p.BotResponse != "Hi there!" || !p.Timestamp.Equal(at) {
		t.Errorf("payload = %+v", p)
	}
}

func TestQueueRecorderReturnsEnqueueError(t *testing.T) {
	boom := errors.New("redis down")
	rec := NewQueueRecorder(&captureEnqueuer{err: boom})
	if err := rec.RecordTurn(context.Background(), "s1", "a", "b"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
