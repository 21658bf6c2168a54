package models

import "time"

// ConversationRecord is one audited exchange between a guest and the assistant.
type ConversationRecord struct {
	ID          string    `bson:"id" json:"id"`
	SessionID   string    `bson:"sessionId" json:"sessionId"`
	UserMessage string    `bson:"userMessage" json:"userMessage"`
	BotResponse string    `bson:"botResponse" json:"botResponse"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
}

// TurnPayload is the queued form of a conversation record.
type TurnPayload struct {
	SessionID   string    `json:"sessionId"`
	UserMessage string    `json:"userMessage"`
	BotResponse string    `json:"botResponse"`
	Timestamp   time.Time `json:"timestamp"`
}
