package handlers

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/middleware"
	"github.com/profescore/web/internal/models"
	"github.com/profescore/web/internal/search"
)

// topRatedLimit is the length of the top rated list.
const topRatedLimit = 10

type CatalogHandler struct {
	api API
	log *zap.Logger
}

func NewCatalogHandler(api API, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{api: api, log: log}
}

func subjectFields(s models.Subject) []string { return []string{s.Name, s.Code} }

func professorFields(p models.Professor) []string {
	fields := []string{p.Name}
	for _, s := range p.Subjects {
		fields = append(fields, s.Name)
	}
	return fields
}

// GetFaculties returns the landing page: faculties plus top professors.
func (h *CatalogHandler) GetFaculties(c *gin.Context) {
	overview, err := h.api.ListFaculties(c.Request.Context())
	if err != nil {
		fail(c, h.log, "Failed to fetch faculties", err)
		return
	}
	if overview.Faculties == nil {
		overview.Faculties = []models.Faculty{}
	}
	if overview.TopProfessors == nil {
		overview.TopProfessors = []models.TopProfessor{}
	}
	c.JSON(http.StatusOK, overview)
}

// GetTopRated returns the best rated professors across faculties, highest
// general average first.
func (h *CatalogHandler) GetTopRated(c *gin.Context) {
	overview, err := h.api.ListFaculties(c.Request.Context())
	if err != nil {
		fail(c, h.log, "Failed to fetch top professors", err)
		return
	}
	top := slices.Clone(overview.TopProfessors)
	slices.SortStableFunc(top, func(a, b models.TopProfessor) int {
		return cmp.Compare(b.RatingStats.AverageGeneral, a.RatingStats.AverageGeneral)
	})
	if len(top) > topRatedLimit {
		top = top[:topRatedLimit]
	}
	if top == nil {
		top = []models.TopProfessor{}
	}
	c.JSON(http.StatusOK, top)
}

// GetFaculty returns a faculty with its subjects and professors. The
// optional q parameter filters both lists, ignoring case and accents.
func (h *CatalogHandler) GetFaculty(c *gin.Context) {
	facultyID := c.Param("facultyId")
	ctx := c.Request.Context()

	var (
		faculty    models.Faculty
		subjects   []models.Subject
		professors []models.Professor
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		faculty, err = h.api.GetFaculty(gctx, facultyID)
		return err
	})
	g.Go(func() (err error) {
		subjects, err = h.api.ListSubjects(gctx, facultyID)
		return err
	})
	g.Go(func() (err error) {
		professors, err = h.api.ListProfessors(gctx, facultyID)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, h.log, "Failed to fetch faculty", err)
		return
	}

	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"faculty":    faculty,
		"subjects":   search.Filter(subjects, q, subjectFields),
		"professors": search.Filter(professors, q, professorFields),
	})
}

// GetSubjects lists the subjects of a faculty, optionally filtered by q
// and semester.
func (h *CatalogHandler) GetSubjects(c *gin.Context) {
	subjects, err := h.api.ListSubjects(c.Request.Context(), c.Param("facultyId"))
	if err != nil {
		fail(c, h.log, "Failed to fetch subjects", err)
		return
	}

	subjects = search.Filter(subjects, c.Query("q"), subjectFields)
	if semester, err := strconv.Atoi(c.Query("semester")); err == nil {
		subjects = slices.DeleteFunc(subjects, func(s models.Subject) bool {
			return s.Semester != semester
		})
	}
	c.JSON(http.StatusOK, subjects)
}

// GetSubject returns a subject with the professors teaching it.
func (h *CatalogHandler) GetSubject(c *gin.Context) {
	facultyID, subjectID := c.Param("facultyId"), c.Param("subjectId")

	var (
		subject    models.Subject
		professors []models.Professor
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		subject, err = h.api.GetSubject(gctx, facultyID, subjectID)
		return err
	})
	g.Go(func() (err error) {
		professors, err = h.api.ListSubjectProfessors(gctx, facultyID, subjectID)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, h.log, "Failed to fetch subject", err)
		return
	}

	if professors == nil {
		professors = []models.Professor{}
	}
	c.JSON(http.StatusOK, gin.H{"subject": subject, "professors": professors})
}

// GetProfessors returns the professors page of a faculty with the lookups
// used by its filters. Supports q, department and subject parameters.
func (h *CatalogHandler) GetProfessors(c *gin.Context) {
	facultyID := c.Param("facultyId")

	var (
		professors  []models.Professor
		subjects    []models.Subject
		departments []models.Department
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		professors, err = h.api.ListProfessors(gctx, facultyID)
		return err
	})
	g.Go(func() (err error) {
		subjects, err = h.api.ListSubjects(gctx, facultyID)
		return err
	})
	g.Go(func() (err error) {
		departments, err = h.api.ListDepartments(gctx, facultyID)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, h.log, "Failed to fetch professors", err)
		return
	}

	professors = search.Filter(professors, c.Query("q"), professorFields)
	if dep := c.Query("department"); dep != "" {
		professors = slices.DeleteFunc(professors, func(p models.Professor) bool {
			return p.Department == nil || p.Department.ID != dep
		})
	}
	if subjectID := c.Query("subject"); subjectID != "" {
		professors = slices.DeleteFunc(professors, func(p models.Professor) bool {
			return !slices.ContainsFunc(p.Subjects, func(s models.Subject) bool { return s.ID == subjectID })
		})
	}

	if subjects == nil {
		subjects = []models.Subject{}
	}
	if departments == nil {
		departments = []models.Department{}
	}
	c.JSON(http.StatusOK, gin.H{
		"professors":  professors,
		"subjects":    subjects,
		"departments": departments,
	})
}

// GetProfessor returns a professor, its ratings decorated with the
// visitor's like state, and whether this browser already rated them.
func (h *CatalogHandler) GetProfessor(c *gin.Context) {
	facultyID, professorID := c.Param("facultyId"), c.Param("professorId")
	visitorID := middleware.VisitorID(c)

	var (
		professor models.Professor
		ratings   []models.Rating
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		professor, err = h.api.GetProfessor(gctx, facultyID, professorID)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = h.api.ListRatings(gctx, facultyID, professorID)
		return err
	})
	if err := g.Wait(); err != nil {
		fail(c, h.log, "Failed to fetch professor", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"professor":    professor,
		"ratings":      models.NewRatingViews(ratings, visitorID),
		"alreadyRated": alreadyRated(c, professorID),
	})
}

// ProposeProfessor forwards a professor suggested by a visitor.
func (h *CatalogHandler) ProposeProfessor(c *gin.Context) {
	var input models.ProfessorInput
	if !bind(c, &input) {
		return
	}

	professor, err := h.api.ProposeProfessor(c.Request.Context(), c.Param("facultyId"), input)
	if err != nil {
		fail(c, h.log, "Failed to propose professor", err)
		return
	}
	c.JSON(http.StatusCreated, professor)
}

func alreadyRated(c *gin.Context, professorID string) bool {
	store := middleware.IdentityStore(c)
	return store != nil && identity.HasRated(store, professorID)
}
