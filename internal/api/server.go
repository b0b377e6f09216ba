// Package api exposes the portfolio collections over HTTP.
package api

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/portfolio-server/internal/admin"
	"github.com/Zachkp/portfolio-server/internal/apperrors"
	"github.com/Zachkp/portfolio-server/internal/config"
	"github.com/Zachkp/portfolio-server/internal/logger"
	"github.com/Zachkp/portfolio-server/internal/model"
	"github.com/Zachkp/portfolio-server/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Notifier is told about every stored contact.
type Notifier interface {
	Enabled() bool
	NotifyContact(c *model.Contact) error
}

// Server holds the handler dependencies. It keeps no request state of
// its own.
type Server struct {
	store    *store.Store
	cfg      *config.Config
	log      logrus.FieldLogger
	notifier Notifier
	hashIP   func(string) string
}

// New creates a Server. notifier may be nil.
func New(s *store.Store, cfg *config.Config, log logrus.FieldLogger, notifier Notifier) (*Server, error) {
	hashIP, err := admin.NewIPHasher()
	if err != nil {
		return nil, err
	}
	return &Server{store: s, cfg: cfg, log: log, notifier: notifier, hashIP: hashIP}, nil
}

// Router builds the gin engine with every route mounted.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(s.log, s.hashIP), corsMiddleware(s.cfg.CORSAllowedOrigins))
	r.MaxMultipartMemory = s.cfg.MaxUploadBytes

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/services", s.listServices)
	r.POST("/services", s.addService)

	r.GET("/portfolio", s.listPortfolio)
	r.POST("/portfolio", s.addPortfolioItem)

	r.GET("/contact", s.listContacts)
	r.POST("/contact", s.submitContact)
	r.POST("/contact-form", s.submitContactForm)
	r.POST("/contact-with-file", s.submitContactWithFile)
	r.DELETE("/contact/:id", s.deleteContact)
	r.GET("/contact-success/:id", s.contactSuccess)
	r.GET("/showContact", func(c *gin.Context) {
		c.Redirect(http.StatusFound, s.cfg.ShowContactPage)
	})

	if s.cfg.AdminEnabled() {
		a, err := admin.New(s.store, s.cfg.Admin, s.cfg.ShowContactPage, s.log, s.hashIP)
		if err != nil {
			return nil, err
		}
		a.Register(r)
		s.log.Info("Admin access available at: /admin/login")
	} else {
		s.log.Warn("ADMIN_PASSWORD not set, admin routes disabled")
	}

	r.NoRoute(s.fallback)

	return r, nil
}

// fail logs err and writes it as {success:false, message}.
func (s *Server) fail(c *gin.Context, err error) {
	status := s.logFailure(c, err)

	body := gin.H{"success": false, "message": apperrors.PublicMessage(err)}
	if appErr, ok := apperrors.As(err); ok {
		if missing, ok := appErr.Details["missing"]; ok {
			body["missing"] = missing
		}
	}
	c.JSON(status, body)
}

// failText is fail for the legacy form endpoints, which answer in plain text.
func (s *Server) failText(c *gin.Context, err error) {
	status := s.logFailure(c, err)
	c.String(status, apperrors.PublicMessage(err))
}

func (s *Server) logFailure(c *gin.Context, err error) int {
	status := apperrors.HTTPStatus(err)
	entry := s.log.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}
	return status
}

// corsMiddleware answers preflight requests and sets CORS headers for the
// configured origins; "*" allows everything.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 1 && allowedOrigins[0] == "*"

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			for _, o := range allowedOrigins {
				if strings.TrimSpace(o) == origin {
					c.Header("Access-Control-Allow-Origin", origin)
					c.Header("Vary", "Origin")
					break
				}
			}
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
