package profescore

import (
	"context"
	"net/http"

	"github.com/profescore/web/internal/models"
)

func (c *Client) ListRatings(ctx context.Context, facultyID, professorID string) ([]models.Rating, error) {
	var out []models.Rating
	err := c.do(ctx, request{method: http.MethodGet, path: path("faculties", facultyID, "professors", professorID, "ratings")}, &out)
	return out, err
}

// SubmitRating posts a rating. The API answers 201 on success and rejects
// duplicates per visitor, professor and subject.
func (c *Client) SubmitRating(ctx context.Context, facultyID, professorID string, in models.RatingSubmission) (models.Rating, error) {
	var out models.Rating
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path("faculties", facultyID, "professors", professorID, "ratings"),
		body:   in,
	}, &out)
	return out, err
}

// Vote toggles the visitor's like on a rating and returns the updated rating.
func (c *Client) Vote(ctx context.Context, facultyID, professorID, ratingID, visitorID string) (models.Rating, error) {
	var out models.Rating
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path("faculties", facultyID, "professors", professorID, "ratings", ratingID, "vote"),
		body:   models.VoteRequest{Type: models.VoteLike, UserID: visitorID},
	}, &out)
	return out, err
}

func (c *Client) Report(ctx context.Context, facultyID, professorID, ratingID string, in models.ReportRequest) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   path("faculties", facultyID, "professors", professorID, "ratings", ratingID, "report"),
		body:   in,
	}, nil)
}
