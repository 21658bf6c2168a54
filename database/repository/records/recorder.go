package recordsRepo

import (
	"context"
	"time"

	"greengarden/models"
)

// Recorder writes chat turns straight to the records collection.
type Recorder struct {
	Repo ConversationRecordRepository
}

// NewRecorder wraps repo.
func NewRecorder(repo ConversationRecordRepository) *Recorder {
	return &Recorder{Repo: repo}
}

func (r *Recorder) RecordTurn(ctx context.Context, sessionID, userText, botText string) error {
	_, err := r.Repo.Create(ctx, models.ConversationRecord{
		SessionID:   sessionID,
		UserMessage: userText,
		BotResponse: botText,
		Timestamp:   time.Now(),
	})
	return err
}
