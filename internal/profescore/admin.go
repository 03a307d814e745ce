package profescore

import (
	"context"
	"net/http"

	"github.com/profescore/web/internal/models"
)

// maxActivities is how many recent activities the dashboard shows.
const maxActivities = 5

func (c *Client) AdminLogin(ctx context.Context, in models.AdminLoginRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/login", body: in}, &out)
	return out, err
}

func (c *Client) DashboardStats(ctx context.Context, token string) (models.DashboardStats, error) {
	var out models.DashboardStats
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/dashboard-stats", token: token}, &out)
	return out, err
}

// RecentActivities returns at most the five latest admin activities.
func (c *Client) RecentActivities(ctx context.Context, token string) ([]models.Activity, error) {
	var out []models.Activity
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/recent-activities", token: token}, &out); err != nil {
		return nil, err
	}
	if len(out) > maxActivities {
		out = out[:maxActivities]
	}
	return out, nil
}

func (c *Client) AdminFaculties(ctx context.Context, token string) ([]models.Faculty, error) {
	var out []models.Faculty
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/faculty", token: token}, &out)
	return out, err
}

func (c *Client) AdminFaculty(ctx context.Context, token, facultyID string) (models.Faculty, error) {
	var out models.Faculty
	err := c.do(ctx, request{method: http.MethodGet, path: path("admin", "faculty", facultyID), token: token}, &out)
	return out, err
}

func (c *Client) CreateFaculty(ctx context.Context, token string, in models.FacultyInput) (models.Faculty, error) {
	var out models.Faculty
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/faculty", token: token, body: in}, &out)
	return out, err
}

func (c *Client) UpdateFaculty(ctx context.Context, token, facultyID string, in models.FacultyInput) (models.Faculty, error) {
	var out models.Faculty
	err := c.do(ctx, request{method: http.MethodPut, path: path("admin", "faculty", facultyID), token: token, body: in}, &out)
	return out, err
}

func (c *Client) DeleteFaculty(ctx context.Context, token, facultyID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("admin", "faculty", facultyID), token: token}, nil)
}

func (c *Client) AdminDepartments(ctx context.Context, token, facultyID string) ([]models.Department, error) {
	var out []models.Department
	err := c.do(ctx, request{method: http.MethodGet, path: path("admin", "faculty", facultyID, "departments"), token: token}, &out)
	return out, err
}

func (c *Client) AdminSubjects(ctx context.Context, token string) ([]models.AdminSubject, error) {
	var out []models.AdminSubject
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/subjects", token: token}, &out)
	return out, err
}

func (c *Client) AdminFacultySubjects(ctx context.Context, token, facultyID string) ([]models.Subject, error) {
	var out []models.Subject
	err := c.do(ctx, request{method: http.MethodGet, path: path("admin", "faculty", facultyID, "subjects"), token: token}, &out)
	return out, err
}

func (c *Client) CreateSubject(ctx context.Context, token, facultyID string, in models.SubjectInput) (models.Subject, error) {
	var out models.Subject
	err := c.do(ctx, request{method: http.MethodPost, path: path("admin", "faculty", facultyID, "subject"), token: token, body: in}, &out)
	return out, err
}

func (c *Client) UpdateSubject(ctx context.Context, token, facultyID, subjectID string, in models.SubjectInput) (models.Subject, error) {
	var out models.Subject
	err := c.do(ctx, request{method: http.MethodPut, path: path("admin", "faculty", facultyID, "subject", subjectID), token: token, body: in}, &out)
	return out, err
}

func (c *Client) DeleteSubject(ctx context.Context, token, facultyID, subjectID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("admin", "faculty", facultyID, "subject", subjectID), token: token}, nil)
}

func (c *Client) AdminProfessors(ctx context.Context, token string) ([]models.AdminProfessor, error) {
	var out []models.AdminProfessor
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/professors", token: token}, &out)
	return out, err
}

// CreateProfessor adds a professor. Professors teaching more than one
// subject go through the API's "multiple" endpoint.
func (c *Client) CreateProfessor(ctx context.Context, token, facultyID string, in models.ProfessorInput) (models.Professor, error) {
	p := path("admin", "faculty", facultyID, "professor") + "/"
	if len(in.Subjects) > 1 {
		p = path("admin", "faculty", facultyID, "professor", "multiple")
	}
	var out models.Professor
	err := c.do(ctx, request{method: http.MethodPost, path: p, token: token, body: in}, &out)
	return out, err
}

func (c *Client) DeleteProfessor(ctx context.Context, token, facultyID, professorID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("admin", "faculty", facultyID, "professor", professorID), token: token}, nil)
}

func (c *Client) ListReports(ctx context.Context, token string) ([]models.Report, error) {
	var out []models.Report
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/reports", token: token}, &out)
	return out, err
}

func (c *Client) GetReport(ctx context.Context, token, reportID string) (models.Report, error) {
	var out models.Report
	err := c.do(ctx, request{method: http.MethodGet, path: path("admin", "reports", reportID), token: token}, &out)
	return out, err
}

// DeleteReport accepts the report and removes the reported comment.
func (c *Client) DeleteReport(ctx context.Context, token, reportID string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: path("admin", "reports", reportID), token: token}, nil)
}

// RejectReport keeps the comment and marks the report rejected.
func (c *Client) RejectReport(ctx context.Context, token, reportID string) error {
	return c.do(ctx, request{method: http.MethodPut, path: path("admin", "reports", reportID, "reject"), token: token}, nil)
}
