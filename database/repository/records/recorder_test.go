package recordsRepo

import (
	"context"
	"errors"
	"testing"

	"greengarden/models"
)

type memRecords struct {
	records []models.ConversationRecord
	err     error
}

func (m *memRecords) Create(_ context.Context, record models.ConversationRecord) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.records = append(m.records, record)
	return "r1", nil
}

func (m *memRecords) GetBySessionID(context.Context, string) ([]models.ConversationRecord, error) {
	return m.records, nil
}

func (m *memRecords) DeleteBySessionID(context.Context, string) error { return nil }
func (m *memRecords) EnsureIndexes() error                          { return nil }

func TestRecorderWritesTurn(t *testing.T) {
	repo := &memRecords{}
	if err := NewRecorder(repo).RecordTurn(context.Background(), "s1", "hi", "Hello!"); err != nil {
		t.Fatal(err)
	}
	if len(repo.records) != 1 {
		t.Fatalf("records = %d, want 1", len(repo.records))
	}
	r := repo.records[0]
	if r.SessionID != "s1" || r.UserMessage != "hi" || r.BotResponse != "Hello!" || r.Timestamp.IsZero() {
		t.Errorf("record = %+v", r)
	}
}

func TestRecorderPropagatesError(t *testing.T) {
	boom := errors.New("insert failed")
	if err := NewRecorder(&memRecords{err: boom}).RecordTurn(context.Background(), "s1", "a", "b"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
