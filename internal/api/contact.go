package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Zachkp/portfolio-server/internal/apperrors"
	"github.com/Zachkp/portfolio-server/internal/model"
	"github.com/Zachkp/portfolio-server/internal/validation"
)

func (s *Server) listContacts(c *gin.Context) {
	contacts, err := s.store.Contacts.FindAll(c.Request.Context(), nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// submitContact is the JSON API. A missing service is stored as null.
func (s *Server) submitContact(c *gin.Context) {
	var in validation.ContactInput
	switch c.ContentType() {
	case binding.MIMEJSON, "":
		s.limitBody(c)
		if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
			if isBodyTooLarge(err) {
				s.fail(c, apperrors.NewPayloadTooLargeError(s.cfg.MaxUploadBytes))
				return
			}
			s.fail(c, apperrors.NewBadRequestError("invalid JSON body", err))
			return
		}
	default:
		var err error
		if in, err = s.readContactForm(c); err != nil {
			s.fail(c, err)
			return
		}
	}

	if err := validation.Contact(&in); err != nil {
		s.fail(c, err)
		return
	}

	stored, err := s.store.Contacts.Insert(c.Request.Context(), in.ToContact())
	if err != nil {
		s.fail(c, err)
		return
	}
	s.notify(stored)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Contact info saved!",
		"data":    stored,
	})
}

// submitContactForm is the legacy HTML form. A missing service falls back
// to the configured default and the reply is the rendered success view.
func (s *Server) submitContactForm(c *gin.Context) {
	in, err := s.readContactForm(c)
	if err != nil {
		s.failText(c, err)
		return
	}
	if in.Service == nil {
		def := s.cfg.ContactFormDefaultService
		in.Service = &def
	}

	if err := validation.Contact(&in); err != nil {
		s.failText(c, err)
		return
	}

	stored, err := s.store.Contacts.Insert(c.Request.Context(), in.ToContact())
	if err != nil {
		s.failText(c, err)
		return
	}
	s.notify(stored)

	c.HTML(http.StatusOK, "contact-success.html", gin.H{"contact": stored})
}

func (s *Server) contactSuccess(c *gin.Context) {
	contact, err := s.store.Contacts.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failText(c, err)
		return
	}
	c.HTML(http.StatusOK, "contact-success.html", gin.H{"contact": contact})
}

func (s *Server) deleteContact(c *gin.Context) {
	removed, err := s.store.Contacts.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	if removed == 0 {
		s.fail(c, apperrors.NewNotFoundError("contact"))
		return
	}

	s.log.WithField("contact", c.Param("id")).Info("contact deleted")
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// contactFromForm reads a contact from url-encoded or multipart fields.
// An empty service field counts as absent.
func contactFromForm(c *gin.Context) validation.ContactInput {
	in := validation.ContactInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}
	if service := strings.TrimSpace(c.PostForm("service")); service != "" {
		in.Service = &service
	}
	if price, ok := c.GetPostForm("servicePrice"); ok {
		in.ServicePrice = price
	}
	return in
}

// notify hands c to the notifier in the background; failures are only logged.
func (s *Server) notify(c *model.Contact) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	go func() {
		if err := s.notifier.NotifyContact(c); err != nil {
			s.log.WithError(err).WithField("contact", c.ID).Warn("contact notification failed")
		}
	}()
}
