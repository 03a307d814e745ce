package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/apperrors"
	"github.com/profescore/web/internal/ledger"
	"github.com/profescore/web/internal/middleware"
	"github.com/profescore/web/internal/models"
)

// CommentHandler serves the likes and reports on rating comments.
type CommentHandler struct {
	api    API
	log    *zap.Logger
	ledger ledger.Ledger
}

func NewCommentHandler(api API, log *zap.Logger, l ledger.Ledger) *CommentHandler {
	return &CommentHandler{api: api, log: log, ledger: l}
}

func (h *CommentHandler) record(c *gin.Context, kind models.SubmissionKind) {
	s := models.Submission{
		VisitorID:   middleware.VisitorID(c),
		Kind:        kind,
		FacultyID:   c.Param("facultyId"),
		ProfessorID: c.Param("professorId"),
		RatingID:    c.Param("ratingId"),
	}
	if err := h.ledger.RecordSubmission(c.Request.Context(), s, ""); err != nil {
		h.log.Warn("Failed to record submission", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// LikeComment toggles the visitor's like. The browser may post the rating
// as it rendered it; the API response is merged onto it so fields the API
// leaves out of vote responses survive.
func (h *CommentHandler) LikeComment(c *gin.Context) {
	visitorID := middleware.VisitorID(c)
	if visitorID == "" {
		apperrors.Respond(c, apperrors.ErrIdentityUnresolved)
		return
	}

	var current models.Rating
	if c.Request.ContentLength > 0 {
		if !bind(c, &current) {
			return
		}
	}

	updated, err := h.api.Vote(c.Request.Context(), c.Param("facultyId"), c.Param("professorId"), c.Param("ratingId"), visitorID)
	if err != nil {
		fail(c, h.log, "Failed to like comment", err)
		return
	}
	h.record(c, models.SubmissionVote)

	c.JSON(http.StatusOK, models.NewRatingView(current.Merge(updated), visitorID))
}

// GetReportReasons lists the reasons offered by the report dialog.
func (h *CommentHandler) GetReportReasons(c *gin.Context) {
	c.JSON(http.StatusOK, models.ReportReasons)
}

// ReportComment reports a rating comment on behalf of the visitor.
func (h *CommentHandler) ReportComment(c *gin.Context) {
	var input models.ReportRequest
	if !bind(c, &input) {
		return
	}
	input.UserID = middleware.VisitorID(c)

	if err := h.api.Report(c.Request.Context(), c.Param("facultyId"), c.Param("professorId"), c.Param("ratingId"), input); err != nil {
		fail(c, h.log, "Failed to report comment", err)
		return
	}
	h.record(c, models.SubmissionReport)

	c.JSON(http.StatusCreated, gin.H{"message": "Reporte enviado correctamente"})
}
