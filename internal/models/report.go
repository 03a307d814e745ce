package models

import (
	"time"

	"github.com/profescore/web/internal/search"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportRejected ReportStatus = "rejected"
	ReportDeleted  ReportStatus = "deleted"
)

// ReportReasons lists the reasons offered by the report dialog.
var ReportReasons = []string{
	"Lenguaje ofensivo",
	"Información falsa",
	"Spam",
	"Ataque personal",
	"Otro",
}

type ReportTeacher struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Biography  string `json:"biography,omitempty"`
	Department string `json:"department,omitempty"`
}

type Report struct {
	ID            string        `json:"_id"`
	CommentID     string        `json:"commentId"`
	RatingComment string        `json:"ratingComment"`
	RatingDate    time.Time     `json:"ratingDate"`
	Teacher       ReportTeacher `json:"teacherId"`
	Subject       string        `json:"subject"`
	Reasons       []string      `json:"reasons"`
	ReportComment string        `json:"reportComment,omitempty"`
	Status        ReportStatus  `json:"status"`
	ReportDate    time.Time     `json:"reportDate"`
}

// Matches applies the admin list filters: status ("all" or empty matches
// any) and an accent-insensitive search over comment, teacher and subject.
func (r Report) Matches(status, query string) bool {
	if status != "" && status != "all" && string(r.Status) != status {
		return false
	}
	return search.Contains(query, r.RatingComment, r.Teacher.Name, r.Subject)
}

func FilterReports(reports []Report, status, query string) []Report {
	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if r.Matches(status, query) {
			out = append(out, r)
		}
	}
	return out
}

// ReportRequest is posted by a visitor reporting a rating comment.
type ReportRequest struct {
	Reasons []string `json:"reasons" binding:"required,min=1,dive,required"`
	Comment string   `json:"comment" binding:"max=500"`
	UserID  string   `json:"userId"`
}
