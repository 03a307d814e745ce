package models

import "time"

// Rating is a submitted rating as returned by the API. Its Comment is what
// visitors like and report.
type Rating struct {
	ID            string    `json:"_id"`
	General       int       `json:"general"`
	Explanation   int       `json:"explanation,omitempty"`
	Accessibility int       `json:"accessibility,omitempty"`
	Difficulty    int       `json:"difficulty,omitempty"`
	Attendance    int       `json:"attendance,omitempty"`
	WouldRetake   *bool     `json:"wouldRetake,omitempty"`
	Comment       string    `json:"comment"`
	Subject       *Subject  `json:"subject,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Likes         []string  `json:"likes"`
}

// LikedBy reports whether visitorID is in the rating's likes set.
func (r Rating) LikedBy(visitorID string) bool {
	if visitorID == "" {
		return false
	}
	for _, id := range r.Likes {
		if id == visitorID {
			return true
		}
	}
	return false
}

// Merge overlays fields returned by a vote response onto r. The API may
// omit the populated subject, so the existing one is kept.
func (r Rating) Merge(updated Rating) Rating {
	subject := r.Subject
	if updated.Subject != nil {
		subject = updated.Subject
	}
	if updated.ID == "" {
		updated.ID = r.ID
	}
	if updated.Comment == "" {
		updated.Comment = r.Comment
	}
	if updated.General == 0 {
		updated.General = r.General
	}
	if updated.CreatedAt.IsZero() {
		updated.CreatedAt = r.CreatedAt
	}
	updated.Subject = subject
	return updated
}

// RatingView is a rating decorated with the current visitor's like state.
type RatingView struct {
	Rating
	LikeCount int  `json:"likeCount"`
	LikedByMe bool `json:"likedByMe"`
}

func NewRatingView(r Rating, visitorID string) RatingView {
	return RatingView{Rating: r, LikeCount: len(r.Likes), LikedByMe: r.LikedBy(visitorID)}
}

func NewRatingViews(ratings []Rating, visitorID string) []RatingView {
	views := make([]RatingView, 0, len(ratings))
	for _, r := range ratings {
		views = append(views, NewRatingView(r, visitorID))
	}
	return views
}
