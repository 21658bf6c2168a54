package tasks

import (
	"context"
	"encoding/json"
	"time"

	"greengarden/models"

	"github.com/hibiken/asynq"
)

const TypeRecordTurn = "conversation:record"

// RecordTurnMaxRetry bounds redelivery of a turn that failed to persist.
const RecordTurnMaxRetry = 3

func NewRecordTurnTask(payload models.TurnPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeRecordTurn, b)
	opts := []asynq.Option{asynq.MaxRetry(RecordTurnMaxRetry), asynq.Timeout(10 * time.Second)}

	return task, opts, nil
}

// ParseRecordTurnTask decodes the payload built by NewRecordTurnTask.
func ParseRecordTurnTask(task *asynq.Task) (models.TurnPayload, error) {
	var p models.TurnPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}

// Enqueuer is the part of *asynq.Client used here.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueRecorder hands chat turns to the background worker instead of writing them inline.
type QueueRecorder struct {
	client Enqueuer
	now    func() time.Time
}

func NewQueueRecorder(client Enqueuer) *QueueRecorder {
	return &QueueRecorder{client: client, now: time.Now}
}

func (q *QueueRecorder) RecordTurn(ctx context.Context, sessionID, userText, botText string) error {
	task, opts, err := NewRecordTurnTask(models.TurnPayload{
		SessionID:   sessionID,
		UserMessage: userText,
		BotResponse: botText,
		Timestamp:   q.now(),
	})
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task, opts...)
	return err
}
