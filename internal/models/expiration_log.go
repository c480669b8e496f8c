package models

import "time"

// ExpiredDocument is one dated document observed during a sweep.
type ExpiredDocument struct {
	DocumentName     string    `bson:"documentName" json:"documentName"`
	AttachmentID     string    `bson:"idAttachment" json:"idAttachment"`
	ExpirationDate   time.Time `bson:"expirationDate" json:"expirationDate"`
	DaysToExpiration int       `bson:"daysToExpiration" json:"daysToExpiration"`
}

// ExpirationLog is the append-only audit record the weekly sweep writes,
// one per user per sweep when the user has at least one dated document.
type ExpirationLog struct {
	ID        string            `bson:"_id,omitempty" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Documents []ExpiredDocument `bson:"documents" json:"documents"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}
