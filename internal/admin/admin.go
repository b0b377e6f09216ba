// Package admin is the cookie-protected admin area: contact statistics
// and export. Client IPs only ever reach the logs as salted hashes.
package admin

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Zachkp/portfolio-server/internal/config"
	"github.com/Zachkp/portfolio-server/internal/model"
	"github.com/Zachkp/portfolio-server/internal/store"
)

const (
	cookieName     = "admin_token"
	cookieMaxAge   = 3600 * 24
	recentContacts = 10
)

// Stats is the admin dashboard summary.
type Stats struct {
	Services         int64            `json:"services"`
	Portfolio        int64            `json:"portfolio"`
	Contacts         int64            `json:"contacts"`
	ContactsToday    int64            `json:"contactsToday"`
	ContactsThisWeek int64            `json:"contactsThisWeek"`
	RecentContacts   []*model.Contact `json:"recentContacts"`
}

// Admin serves the /admin routes.
type Admin struct {
	store     *store.Store
	cfg       config.AdminConfig
	dashboard string
	log       logrus.FieldLogger
	hashIP    func(string) string
	token     string
	now       func() time.Time
}

// New creates the admin area. A fresh session token is generated on every
// start, so restarting the server logs everyone out.
func New(s *store.Store, cfg config.AdminConfig, dashboard string, log logrus.FieldLogger, hashIP func(string) string) (*Admin, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	if gin.Mode() == gin.DebugMode {
		log.Debugf("Admin token (dev only): %s", token)
	}
	return &Admin{
		store:     s,
		cfg:       cfg,
		dashboard: dashboard,
		log:       log,
		hashIP:    hashIP,
		token:     token,
		now:       time.Now,
	}, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NewIPHasher returns a function mapping an IP to a short salted hash,
// stable for the life of the process.
func NewIPHasher() (func(string) string, error) {
	salt, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}
	return func(ip string) string {
		sum := sha256.Sum256([]byte(ip + salt))
		return hex.EncodeToString(sum[:])[:16]
	}, nil
}

func (a *Admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *Admin) credentialsMatch(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.Password)) == 1
	return userOK && passOK
}

// Register mounts the login routes and the protected /admin group. The
// engine must have an "admin-login.html" template.
func (a *Admin) Register(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !a.credentialsMatch(c.PostForm("username"), c.PostForm("password")) {
			a.log.WithField("client", a.hashIP(c.ClientIP())).Warn("failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetCookie(cookieName, a.token, cookieMaxAge, "/admin", "", false, true)
		a.log.WithField("client", a.hashIP(c.ClientIP())).Info("admin login")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(cookieName, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	group := r.Group("/admin")
	group.Use(a.authMiddleware())

	group.GET("/dashboard", func(c *gin.Context) {
		c.Redirect(http.StatusFound, a.dashboard)
	})

	group.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.Stats(c.Request.Context())
		if err != nil {
			a.log.WithError(err).Error("loading admin stats")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	group.GET("/export/contacts", func(c *gin.Context) {
		contacts, err := a.store.Contacts.FindAll(c.Request.Context(), nil)
		if err != nil {
			a.log.WithError(err).Error("exporting contacts")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to export contacts"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=contacts.json")
		a.log.WithField("client", a.hashIP(c.ClientIP())).Info("contacts exported")
		c.JSON(http.StatusOK, contacts)
	})
}

// Stats summarizes the collections. Today and this week are measured in
// UTC from the current time.
func (a *Admin) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.Services, err = a.store.Services.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Portfolio, err = a.store.Portfolio.Count(ctx); err != nil {
		return nil, err
	}

	contacts, err := a.store.Contacts.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	stats.Contacts = int64(len(contacts))

	now := a.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)
	for _, c := range contacts {
		if !c.CreatedAt.Before(today) {
			stats.ContactsToday++
		}
		if !c.CreatedAt.Before(weekAgo) {
			stats.ContactsThisWeek++
		}
	}

	// newest first
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].CreatedAt.After(contacts[j].CreatedAt)
	})
	if len(contacts) > recentContacts {
		contacts = contacts[:recentContacts]
	}
	stats.RecentContacts = contacts

	return stats, nil
}
