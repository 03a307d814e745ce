package models

import "time"

// AdminLoginRequest is posted by the admin login form.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type DashboardStats struct {
	FacultiesCount  int `json:"facultiesCount"`
	SubjectsCount   int `json:"subjectsCount"`
	ProfessorsCount int `json:"professorsCount"`
	RatingsCount    int `json:"ratingsCount"`
}

type Activity struct {
	Type      string    `json:"type"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// Dashboard is the admin landing page: counters plus the latest activity.
type Dashboard struct {
	Stats      DashboardStats `json:"stats"`
	Activities []Activity     `json:"activities"`
}
