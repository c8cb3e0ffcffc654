package db

import "github.com/google/uuid"

// A single exchange between the user and the assistant, persisted for
// history and later profile analysis.
type ChatModel struct {
	ChatID    string `bson:"_id"`
	UserID    string `bson:"userId"`
	Message   string `bson:"message"`
	Response  string `bson:"response"`
	Channel   string `bson:"channel"`
	Timestamp int64  `bson:"timestamp"`
}

func (m ChatModel) Id() string {
	if len(m.ChatID) == 0 {
		return uuid.New().String()
	}
	return m.ChatID
}

func (m ChatModel) CollectionName() string { return "chat_history" }
