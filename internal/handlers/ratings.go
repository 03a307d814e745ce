package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/apperrors"
	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/ledger"
	"github.com/profescore/web/internal/middleware"
	"github.com/profescore/web/internal/models"
)

type RatingHandler struct {
	api         API
	log         *zap.Logger
	fingerprint FingerprintResolver
	ledger      ledger.Ledger
}

func NewRatingHandler(api API, log *zap.Logger, fp FingerprintResolver, l ledger.Ledger) *RatingHandler {
	return &RatingHandler{api: api, log: log, fingerprint: fp, ledger: l}
}

// GetRatingForm returns what the rating form needs: the professor, the
// subjects to pick from and whether this browser already rated them.
func (h *RatingHandler) GetRatingForm(c *gin.Context) {
	professorID := c.Param("professorId")

	professor, err := h.api.GetProfessor(c.Request.Context(), c.Param("facultyId"), professorID)
	if err != nil {
		fail(c, h.log, "Failed to fetch professor", err)
		return
	}

	subjects := professor.Subjects
	if subjects == nil {
		subjects = []models.Subject{}
	}
	c.JSON(http.StatusOK, gin.H{
		"professor":           professor,
		"subjects":            subjects,
		"alreadyRated":        alreadyRated(c, professorID),
		"fingerprintRequired": h.fingerprint != nil,
	})
}

// SubmitRating validates the form, resolves the visitor identity and posts
// the rating. With fingerprinting enabled an unresolved composite blocks
// the submission before the API is called.
func (h *RatingHandler) SubmitRating(c *gin.Context) {
	facultyID, professorID := c.Param("facultyId"), c.Param("professorId")
	ctx := c.Request.Context()

	var form models.RatingForm
	if !bind(c, &form) {
		return
	}

	visitorID := middleware.VisitorID(c)
	if visitorID == "" {
		apperrors.Respond(c, apperrors.ErrIdentityUnresolved)
		return
	}

	var fingerprint string
	if h.fingerprint != nil {
		res := h.fingerprint.Resolve(ctx, c.ClientIP(), form.FingerprintRequestID)
		if !res.Resolved() {
			h.log.Warn("Fingerprint unresolved, rating blocked",
				zap.String("visitor_id", visitorID),
				zap.String("professor_id", professorID),
				zap.Error(res.Err),
			)
			apperrors.Respond(c, apperrors.ErrIdentityUnresolved.WithError(res.Err))
			return
		}
		fingerprint = res.Value
	}

	submission := models.NewRatingSubmission(form, professorID, visitorID, fingerprint)
	rating, err := h.api.SubmitRating(ctx, facultyID, professorID, submission)
	if err != nil {
		fail(c, h.log, "Failed to submit rating", err)
		return
	}

	if store := middleware.IdentityStore(c); store != nil {
		identity.MarkRated(store, professorID)
	}
	record := models.Submission{
		VisitorID:   visitorID,
		Kind:        models.SubmissionRating,
		FacultyID:   facultyID,
		ProfessorID: professorID,
		RatingID:    rating.ID,
	}
	if err := h.ledger.RecordSubmission(ctx, record, fingerprint); err != nil {
		h.log.Warn("Failed to record rating", zap.String("visitor_id", visitorID), zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Calificación enviada con éxito",
		"rating":   rating,
		"redirect": fmt.Sprintf("/facultad/%s/maestro/%s", facultyID, professorID),
	})
}
