package models

import "time"

// Visitor is a visitor token issued by this server.
type Visitor struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VisitorID  string    `gorm:"size:64;not null;uniqueIndex" json:"visitor_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastSeenAt time.Time `gorm:"autoUpdateTime" json:"last_seen_at"`
}

type SubmissionKind string

const (
	SubmissionRating SubmissionKind = "rating"
	SubmissionVote   SubmissionKind = "vote"
	SubmissionReport SubmissionKind = "report"
)

// Submission is a write proxied to the API on behalf of a visitor. The
// fingerprint composite is only kept as a hash.
type Submission struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	VisitorID       string         `gorm:"size:64;not null;index" json:"visitor_id"`
	Kind            SubmissionKind `gorm:"size:16;not null" json:"kind"`
	FacultyID       string         `gorm:"size:64" json:"faculty_id"`
	ProfessorID     string         `gorm:"size:64;index" json:"professor_id"`
	RatingID        string         `gorm:"size:64" json:"rating_id,omitempty"`
	FingerprintHash string         `gorm:"size:64" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
}
