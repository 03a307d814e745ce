package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/apperrors"
	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/ledger"
	"github.com/profescore/web/internal/middleware"
	"github.com/profescore/web/internal/models"
	"github.com/profescore/web/internal/profescore"
)

// API is the part of the ProfeScore REST API the handlers use.
// *profescore.Client implements it.
type API interface {
	ListFaculties(ctx context.Context) (models.FacultyOverview, error)
	GetFaculty(ctx context.Context, facultyID string) (models.Faculty, error)
	ListSubjects(ctx context.Context, facultyID string) ([]models.Subject, error)
	GetSubject(ctx context.Context, facultyID, subjectID string) (models.Subject, error)
	ListSubjectProfessors(ctx context.Context, facultyID, subjectID string) ([]models.Professor, error)
	ListDepartments(ctx context.Context, facultyID string) ([]models.Department, error)
	ListProfessors(ctx context.Context, facultyID string) ([]models.Professor, error)
	GetProfessor(ctx context.Context, facultyID, professorID string) (models.Professor, error)
	ProposeProfessor(ctx context.Context, facultyID string, in models.ProfessorInput) (models.Professor, error)

	ListRatings(ctx context.Context, facultyID, professorID string) ([]models.Rating, error)
	SubmitRating(ctx context.Context, facultyID, professorID string, in models.RatingSubmission) (models.Rating, error)
	Vote(ctx context.Context, facultyID, professorID, ratingID, visitorID string) (models.Rating, error)
	Report(ctx context.Context, facultyID, professorID, ratingID string, in models.ReportRequest) error

	AdminLogin(ctx context.Context, in models.AdminLoginRequest) (models.AuthResponse, error)
	DashboardStats(ctx context.Context, token string) (models.DashboardStats, error)
	RecentActivities(ctx context.Context, token string) ([]models.Activity, error)
	AdminFaculties(ctx context.Context, token string) ([]models.Faculty, error)
	AdminFaculty(ctx context.Context, token, facultyID string) (models.Faculty, error)
	CreateFaculty(ctx context.Context, token string, in models.FacultyInput) (models.Faculty, error)
	UpdateFaculty(ctx context.Context, token, facultyID string, in models.FacultyInput) (models.Faculty, error)
	DeleteFaculty(ctx context.Context, token, facultyID string) error
	AdminDepartments(ctx context.Context, token, facultyID string) ([]models.Department, error)
	AdminSubjects(ctx context.Context, token string) ([]models.AdminSubject, error)
	AdminFacultySubjects(ctx context.Context, token, facultyID string) ([]models.Subject, error)
	CreateSubject(ctx context.Context, token, facultyID string, in models.SubjectInput) (models.Subject, error)
	UpdateSubject(ctx context.Context, token, facultyID, subjectID string, in models.SubjectInput) (models.Subject, error)
	DeleteSubject(ctx context.Context, token, facultyID, subjectID string) error
	AdminProfessors(ctx context.Context, token string) ([]models.AdminProfessor, error)
	CreateProfessor(ctx context.Context, token, facultyID string, in models.ProfessorInput) (models.Professor, error)
	DeleteProfessor(ctx context.Context, token, facultyID, professorID string) error
	ListReports(ctx context.Context, token string) ([]models.Report, error)
	GetReport(ctx context.Context, token, reportID string) (models.Report, error)
	DeleteReport(ctx context.Context, token, reportID string) error
	RejectReport(ctx context.Context, token, reportID string) error
}

// FingerprintResolver resolves the "<ip>-<fingerprintId>" composite for a
// rating submission. *identity.EnhancedResolver implements it.
type FingerprintResolver interface {
	Resolve(ctx context.Context, clientAddr, requestID string) identity.Resolution
}

// Options configure the handlers. A nil Fingerprint disables the composite
// check and a nil Ledger records nothing.
type Options struct {
	Fingerprint   FingerprintResolver
	Ledger        ledger.Ledger
	SecureCookies bool
}

// Handler combines all handler types
type Handler struct {
	Catalog *CatalogHandler
	Rating  *RatingHandler
	Comment *CommentHandler
	Auth    *AuthHandler
	Admin   *AdminHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(api API, log *zap.Logger, opts Options) *Handler {
	if opts.Ledger == nil {
		opts.Ledger = ledger.Nop{}
	}

	return &Handler{
		Catalog: NewCatalogHandler(api, log),
		Rating:  NewRatingHandler(api, log, opts.Fingerprint, opts.Ledger),
		Comment: NewCommentHandler(api, log, opts.Ledger),
		Auth:    NewAuthHandler(api, log, opts.SecureCookies),
		Admin:   NewAdminHandler(api, log),
	}
}

// apiError maps a failed API call onto the error returned to the browser.
// The API's own message is kept when it sent one.
func apiError(err error) *apperrors.AppError {
	var apiErr *profescore.APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return apperrors.ErrNetwork.WithError(err)
		}
		return apperrors.ErrInternal.WithError(err)
	}

	var base *apperrors.AppError
	switch status := apiErr.StatusCode; {
	case status == 0:
		return apperrors.ErrNetwork.WithError(err)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		base = apperrors.ErrValidationFailed
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		base = apperrors.ErrUnauthorized
	case status == http.StatusNotFound:
		base = apperrors.ErrNotFound
	case status == http.StatusConflict:
		base = apperrors.ErrConflict
	case status == http.StatusTooManyRequests:
		base = apperrors.ErrRateLimited
	case status >= 500:
		return apperrors.ErrNetwork.WithError(err)
	default:
		base = apperrors.ErrInternal
	}

	out := base.WithError(err)
	if apiErr.Message != "" {
		out.Message = apiErr.Message
	}
	return out
}

// fail logs a failed API call and responds with the mapped error.
func fail(c *gin.Context, log *zap.Logger, msg string, err error) {
	appErr := apiError(err)
	fields := []zap.Field{
		zap.String("path", c.FullPath()),
		zap.String("code", string(appErr.Code)),
		zap.Error(err),
	}
	if id := middleware.VisitorID(c); id != "" {
		fields = append(fields, zap.String("visitor_id", id))
	}
	if appErr.HTTPCode >= 500 {
		log.Error(msg, fields...)
	} else {
		log.Warn(msg, fields...)
	}
	apperrors.Respond(c, appErr)
}

// bind decodes the JSON body into dst, responding with field errors on
// failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apperrors.Respond(c, apperrors.Validation(err))
		return false
	}
	return true
}
