package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/profescore/web/internal/apperrors"
	"github.com/profescore/web/internal/middleware"
	"github.com/profescore/web/internal/models"
	"github.com/profescore/web/internal/search"
)

// AdminHandler proxies the admin panel. Every route runs behind
// middleware.AuthMiddleware.
type AdminHandler struct {
	api API
	log *zap.Logger
}

func NewAdminHandler(api API, log *zap.Logger) *AdminHandler {
	return &AdminHandler{api: api, log: log}
}

// fail also drops the admin cookie when the API no longer accepts the
// token.
func (h *AdminHandler) fail(c *gin.Context, msg string, err error) {
	if apiError(err).Code == apperrors.CodeUnauthorized {
		middleware.ClearAdminCookie(c)
	}
	fail(c, h.log, msg, err)
}

func token(c *gin.Context) string {
	return middleware.AdminTokenFrom(c)
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	tok := token(c)
	var dashboard models.Dashboard
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		dashboard.Stats, err = h.api.DashboardStats(gctx, tok)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Activities, err = h.api.RecentActivities(gctx, tok)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, "Failed to fetch dashboard", err)
		return
	}

	if dashboard.Activities == nil {
		dashboard.Activities = []models.Activity{}
	}
	c.JSON(http.StatusOK, dashboard)
}

// Faculties

func (h *AdminHandler) GetFaculties(c *gin.Context) {
	faculties, err := h.api.AdminFaculties(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, "Failed to fetch faculties", err)
		return
	}
	c.JSON(http.StatusOK, search.Filter(faculties, c.Query("q"), func(f models.Faculty) []string {
		return []string{f.Name, f.Abbreviation}
	}))
}

func (h *AdminHandler) GetFaculty(c *gin.Context) {
	faculty, err := h.api.AdminFaculty(c.Request.Context(), token(c), c.Param("facultyId"))
	if err != nil {
		h.fail(c, "Failed to fetch faculty", err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

func (h *AdminHandler) CreateFaculty(c *gin.Context) {
	var input models.FacultyInput
	if !bind(c, &input) {
		return
	}

	faculty, err := h.api.CreateFaculty(c.Request.Context(), token(c), input)
	if err != nil {
		h.fail(c, "Failed to create faculty", err)
		return
	}
	c.JSON(http.StatusCreated, faculty)
}

func (h *AdminHandler) UpdateFaculty(c *gin.Context) {
	var input models.FacultyInput
	if !bind(c, &input) {
		return
	}

	faculty, err := h.api.UpdateFaculty(c.Request.Context(), token(c), c.Param("facultyId"), input)
	if err != nil {
		h.fail(c, "Failed to update faculty", err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// DeleteFaculty requires the admin to type the faculty name. Case and
// accents are ignored.
func (h *AdminHandler) DeleteFaculty(c *gin.Context) {
	facultyID := c.Param("facultyId")
	ctx := c.Request.Context()

	var input models.DeleteConfirmation
	if !bind(c, &input) {
		return
	}

	faculty, err := h.api.AdminFaculty(ctx, token(c), facultyID)
	if err != nil {
		h.fail(c, "Failed to fetch faculty", err)
		return
	}
	if !confirmed(input.ConfirmName, faculty.Name) {
		apperrors.Respond(c, apperrors.Field("confirmName", "El nombre ingresado no coincide"))
		return
	}

	if err := h.api.DeleteFaculty(ctx, token(c), facultyID); err != nil {
		h.fail(c, "Failed to delete faculty", err)
		return
	}
	h.log.Info("Faculty deleted", zap.String("faculty_id", facultyID), zap.String("name", faculty.Name))
	c.JSON(http.StatusOK, gin.H{"message": "Facultad eliminada correctamente"})
}

func confirmed(typed, name string) bool {
	return typed != "" && search.Normalize(typed) == search.Normalize(name)
}

func (h *AdminHandler) GetFacultyDepartments(c *gin.Context) {
	departments, err := h.api.AdminDepartments(c.Request.Context(), token(c), c.Param("facultyId"))
	if err != nil {
		h.fail(c, "Failed to fetch departments", err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}
	c.JSON(http.StatusOK, departments)
}

func (h *AdminHandler) GetFacultySubjects(c *gin.Context) {
	subjects, err := h.api.AdminFacultySubjects(c.Request.Context(), token(c), c.Param("facultyId"))
	if err != nil {
		h.fail(c, "Failed to fetch subjects", err)
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}
	c.JSON(http.StatusOK, subjects)
}

// Subjects

// GetSubjects lists all subjects, filtered by q and the faculty id.
func (h *AdminHandler) GetSubjects(c *gin.Context) {
	subjects, err := h.api.AdminSubjects(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, "Failed to fetch subjects", err)
		return
	}

	facultyID := c.Query("faculty")
	out := search.Filter(subjects, c.Query("q"), func(s models.AdminSubject) []string {
		return []string{s.Name, s.Code, s.Faculty.Name}
	})
	if facultyID != "" {
		filtered := out[:0]
		for _, s := range out {
			if s.Faculty.ID == facultyID {
				filtered = append(filtered, s)
			}
		}
		out = filtered
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) CreateSubject(c *gin.Context) {
	var input models.SubjectInput
	if !bind(c, &input) {
		return
	}

	subject, err := h.api.CreateSubject(c.Request.Context(), token(c), c.Param("facultyId"), input)
	if err != nil {
		h.fail(c, "Failed to create subject", err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (h *AdminHandler) UpdateSubject(c *gin.Context) {
	var input models.SubjectInput
	if !bind(c, &input) {
		return
	}

	subject, err := h.api.UpdateSubject(c.Request.Context(), token(c), c.Param("facultyId"), c.Param("subjectId"), input)
	if err != nil {
		h.fail(c, "Failed to update subject", err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (h *AdminHandler) DeleteSubject(c *gin.Context) {
	if err := h.api.DeleteSubject(c.Request.Context(), token(c), c.Param("facultyId"), c.Param("subjectId")); err != nil {
		h.fail(c, "Failed to delete subject", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Materia eliminada correctamente"})
}

// Professors

func (h *AdminHandler) GetProfessors(c *gin.Context) {
	professors, err := h.api.AdminProfessors(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, "Failed to fetch professors", err)
		return
	}
	c.JSON(http.StatusOK, search.Filter(professors, c.Query("q"), func(p models.AdminProfessor) []string {
		return append([]string{p.Name, p.Faculty}, p.Subjects...)
	}))
}

func (h *AdminHandler) CreateProfessor(c *gin.Context) {
	var input models.ProfessorInput
	if !bind(c, &input) {
		return
	}

	professor, err := h.api.CreateProfessor(c.Request.Context(), token(c), c.Param("facultyId"), input)
	if err != nil {
		h.fail(c, "Failed to create professor", err)
		return
	}
	c.JSON(http.StatusCreated, professor)
}

func (h *AdminHandler) DeleteProfessor(c *gin.Context) {
	if err := h.api.DeleteProfessor(c.Request.Context(), token(c), c.Param("facultyId"), c.Param("professorId")); err != nil {
		h.fail(c, "Failed to delete professor", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profesor eliminado correctamente"})
}

// Reports

// GetReports lists reports filtered by status and q, with the count of
// each status over the unfiltered list.
func (h *AdminHandler) GetReports(c *gin.Context) {
	reports, err := h.api.ListReports(c.Request.Context(), token(c))
	if err != nil {
		h.fail(c, "Failed to fetch reports", err)
		return
	}

	counts := map[models.ReportStatus]int{
		models.ReportPending:  0,
		models.ReportRejected: 0,
		models.ReportDeleted:  0,
	}
	for _, r := range reports {
		counts[r.Status]++
	}

	c.JSON(http.StatusOK, gin.H{
		"reports": models.FilterReports(reports, c.Query("status"), c.Query("q")),
		"counts":  counts,
		"total":   len(reports),
	})
}

func (h *AdminHandler) GetReport(c *gin.Context) {
	report, err := h.api.GetReport(c.Request.Context(), token(c), c.Param("reportId"))
	if err != nil {
		h.fail(c, "Failed to fetch report", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DeleteReport accepts the report, removing the reported comment.
func (h *AdminHandler) DeleteReport(c *gin.Context) {
	reportID := c.Param("reportId")
	if err := h.api.DeleteReport(c.Request.Context(), token(c), reportID); err != nil {
		h.fail(c, "Failed to delete reported comment", err)
		return
	}
	h.log.Info("Reported comment deleted", zap.String("report_id", reportID))
	c.JSON(http.StatusOK, gin.H{"message": "Comentario eliminado correctamente"})
}

func (h *AdminHandler) RejectReport(c *gin.Context) {
	reportID := c.Param("reportId")
	if err := h.api.RejectReport(c.Request.Context(), token(c), reportID); err != nil {
		h.fail(c, "Failed to reject report", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reporte rechazado"})
}
