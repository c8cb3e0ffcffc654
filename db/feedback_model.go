package db

import "github.com/google/uuid"

type FeedbackModel struct {
	FeedbackID string `bson:"_id"`
	UserID     string `bson:"userId"`
	Rating     int    `bson:"rating"`
	Comment    string `bson:"comment"`
	Timestamp  int64  `bson:"timestamp"`
}

func (m FeedbackModel) Id() string {
	if len(m.FeedbackID) == 0 {
		return uuid.New().String()
	}
	return m.FeedbackID
}

func (m FeedbackModel) CollectionName() string { return "feedback" }
