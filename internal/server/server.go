package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/profescore/web/internal/config"
	"github.com/profescore/web/internal/database"
	"github.com/profescore/web/internal/handlers"
	"github.com/profescore/web/internal/identity"
	"github.com/profescore/web/internal/ledger"
	"github.com/profescore/web/internal/limiter"
	"github.com/profescore/web/internal/middleware"
)

// Deps are the collaborators built by main. DB and Fingerprint may be nil.
type Deps struct {
	API         handlers.API
	DB          database.Service
	Ledger      ledger.Ledger
	Limiter     *limiter.Limiter
	Fingerprint handlers.FingerprintResolver
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	db       database.Service
	ledger   ledger.Ledger
	limiter  *limiter.Limiter
	resolver *identity.Resolver
	handler  *handlers.Handler
}

// New wires the handlers and identity resolver from cfg and deps.
func New(cfg config.Config, log *zap.Logger, deps Deps) *Server {
	if deps.Ledger == nil {
		deps.Ledger = ledger.Nop{}
	}
	if deps.Limiter == nil {
		deps.Limiter = limiter.New(log, cfg.RateLimit.Limit, cfg.RateLimit.Burst)
	}

	return &Server{
		cfg:      cfg,
		log:      log,
		db:       deps.DB,
		ledger:   deps.Ledger,
		limiter:  deps.Limiter,
		resolver: identity.NewResolver(cfg.Identity.CookieName, identity.WithTokenLength(cfg.Identity.TokenLength)),
		handler: handlers.NewHandler(deps.API, log, handlers.Options{
			Fingerprint:   deps.Fingerprint,
			Ledger:        deps.Ledger,
			SecureCookies: cfg.Identity.Secure,
		}),
	}
}

// NewServer creates and configures a new server
func NewServer(cfg config.Config, log *zap.Logger, deps Deps) *http.Server {
	s := New(cfg, log, deps)

	return &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(s.log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.health)

	cookieOpts := identity.CookieOptions{Domain: s.cfg.Identity.CookieDomain, Secure: s.cfg.Identity.Secure}

	api := r.Group("/api")
	api.Use(middleware.Visitor(s.resolver, cookieOpts, s.ledger, s.log))
	{
		h := s.handler

		// Catalog (public reads)
		api.GET("/faculties", h.Catalog.GetFaculties)
		api.GET("/top-professors", h.Catalog.GetTopRated)
		api.GET("/faculties/:facultyId", h.Catalog.GetFaculty)
		api.GET("/faculties/:facultyId/subjects", h.Catalog.GetSubjects)
		api.GET("/faculties/:facultyId/subjects/:subjectId", h.Catalog.GetSubject)
		api.GET("/faculties/:facultyId/professors", h.Catalog.GetProfessors)
		api.GET("/faculties/:facultyId/professors/:professorId", h.Catalog.GetProfessor)
		api.GET("/faculties/:facultyId/professors/:professorId/rate", h.Rating.GetRatingForm)
		api.GET("/report-reasons", h.Comment.GetReportReasons)

		// Visitor writes (rate limited per visitor)
		writes := api.Group("")
		writes.Use(middleware.RateLimit(s.limiter))
		{
			writes.POST("/faculties/:facultyId/professors", h.Catalog.ProposeProfessor)
			writes.POST("/faculties/:facultyId/professors/:professorId/ratings", h.Rating.SubmitRating)
			writes.POST("/faculties/:facultyId/professors/:professorId/ratings/:ratingId/vote", h.Comment.LikeComment)
			writes.POST("/faculties/:facultyId/professors/:professorId/ratings/:ratingId/report", h.Comment.ReportComment)
			writes.POST("/admin/login", h.Auth.Login)
		}
		api.POST("/admin/logout", h.Auth.Logout)

		// Admin routes (token required)
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		{
			admin.GET("/session", h.Auth.GetSession)
			admin.GET("/dashboard", h.Admin.GetDashboard)

			admin.GET("/faculties", h.Admin.GetFaculties)
			admin.POST("/faculties", h.Admin.CreateFaculty)
			admin.GET("/faculties/:facultyId", h.Admin.GetFaculty)
			admin.PUT("/faculties/:facultyId", h.Admin.UpdateFaculty)
			admin.DELETE("/faculties/:facultyId", h.Admin.DeleteFaculty)
			admin.GET("/faculties/:facultyId/departments", h.Admin.GetFacultyDepartments)
			admin.GET("/faculties/:facultyId/subjects", h.Admin.GetFacultySubjects)
			admin.POST("/faculties/:facultyId/subjects", h.Admin.CreateSubject)
			admin.PUT("/faculties/:facultyId/subjects/:subjectId", h.Admin.UpdateSubject)
			admin.DELETE("/faculties/:facultyId/subjects/:subjectId", h.Admin.DeleteSubject)
			admin.POST("/faculties/:facultyId/professors", h.Admin.CreateProfessor)
			admin.DELETE("/faculties/:facultyId/professors/:professorId", h.Admin.DeleteProfessor)

			admin.GET("/subjects", h.Admin.GetSubjects)
			admin.GET("/professors", h.Admin.GetProfessors)

			admin.GET("/reports", h.Admin.GetReports)
			admin.GET("/reports/:reportId", h.Admin.GetReport)
			admin.DELETE("/reports/:reportId", h.Admin.DeleteReport)
			admin.PUT("/reports/:reportId/reject", h.Admin.RejectReport)
		}
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if s.db != nil {
		stats := s.db.Health()
		resp["database"] = stats
		if stats["status"] != "up" {
			resp["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
	}
	c.JSON(http.StatusOK, resp)
}
