package profescore

import (
	"context"
	"net/http"
	"net/url"

	"github.com/profescore/web/internal/models"
)

// ListFaculties returns the faculty list together with the top rated
// professors shown on the landing page.
func (c *Client) ListFaculties(ctx context.Context) (models.FacultyOverview, error) {
	var out models.FacultyOverview
	err := c.do(ctx, request{method: http.MethodGet, path: "/faculties"}, &out)
	return out, err
}

func (c *Client) GetFaculty(ctx context.Context, facultyID string) (models.Faculty, error) {
	var out models.Faculty
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID)}, &out)
	return out, err
}

func (c *Client) ListSubjects(ctx context.Context, facultyID string) ([]models.Subject, error) {
	var out []models.Subject
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID, "subjects")}, &out)
	return out, err
}

func (c *Client) GetSubject(ctx context.Context, facultyID, subjectID string) (models.Subject, error) {
	var out models.Subject
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID, "subjects", subjectID)}, &out)
	return out, err
}

func (c *Client) ListSubjectProfessors(ctx context.Context, facultyID, subjectID string) ([]models.Professor, error) {
	var out []models.Professor
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID, "subjects", subjectID, "professors")}, &out)
	return out, err
}

func (c *Client) ListDepartments(ctx context.Context, facultyID string) ([]models.Department, error) {
	var out []models.Department
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID, "departments")}, &out)
	return out, err
}

func (c *Client) ListProfessors(ctx context.Context, facultyID string) ([]models.Professor, error) {
	var out []models.Professor
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID, "professors")}, &out)
	return out, err
}

// GetProfessor fetches a professor with its subjects populated.
func (c *Client) GetProfessor(ctx context.Context, facultyID, professorID string) (models.Professor, error) {
	var out models.Professor
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path("faculties", facultyID, "professors", professorID),
		query:  url.Values{"populate": {"subjects"}},
	}, &out)
	return out, err
}

// ProposeProfessor submits a professor suggested by a visitor.
func (c *Client) ProposeProfessor(ctx context.Context, facultyID string, in models.ProfessorInput) (models.Professor, error) {
	var out models.Professor
	err := c.do(ctx, request{method: http.MethodPost, path: path("faculties", facultyID, "professors"), body: in}, &out)
	return out, err
}
