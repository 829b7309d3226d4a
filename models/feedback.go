package models

import "time"

// FeedbackReply is an admin reply embedded in a feedback document.
type FeedbackReply struct {
	Message   string    `bson:"message" json:"message"`
	RepliedBy string    `bson:"replied_by" json:"repliedBy"`
	RepliedAt time.Time `bson:"replied_at" json:"repliedAt"`
}

// Feedback is a user message with an optional admin reply.
type Feedback struct {
	ID        string         `bson:"id" json:"id"`
	UserID    string         `bson:"user_id" json:"userId"`
	Message   string         `bson:"message" json:"message"`
	Reply     *FeedbackReply `bson:"reply,omitempty" json:"reply,omitempty"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
}
