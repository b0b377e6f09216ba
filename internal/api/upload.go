package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-server/internal/apperrors"
	"github.com/Zachkp/portfolio-server/internal/validation"
)

const (
	uploadField = "myFile1"
	// room for the text fields and multipart framing around the file
	multipartSlack = 64 << 10
)

// submitContactWithFile stores a contact with an optional attachment. The
// file is written before the contact so a failed move leaves no record.
func (s *Server) submitContactWithFile(c *gin.Context) {
	limit := s.cfg.MaxUploadBytes
	in, err := s.readContactForm(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := validation.Contact(&in); err != nil {
		s.fail(c, err)
		return
	}
	contact := in.ToContact()

	if file := uploadedFile(c); file != nil {
		if file.Size > limit {
			s.fail(c, apperrors.NewPayloadTooLargeError(limit))
			return
		}
		name, err := s.saveUpload(c, file)
		if err != nil {
			s.fail(c, err)
			return
		}
		contact.Attachment = name
	}

	stored, err := s.store.Contacts.Insert(c.Request.Context(), contact)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.notify(stored)

	message := "Contact info saved!"
	if stored.Attachment != "" {
		message = "I got a file " + stored.Attachment
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func uploadedFile(c *gin.Context) *multipart.FileHeader {
	form := c.Request.MultipartForm
	if form == nil {
		return nil
	}
	if files := form.File[uploadField]; len(files) > 0 {
		return files[0]
	}
	return nil
}

// saveUpload moves file into the upload area under its original base
// name, replacing any file already there.
func (s *Server) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := filepath.Base(filepath.Clean("/" + filepath.ToSlash(file.Filename)))
	if name == "/" || name == "." || name == string(filepath.Separator) {
		return "", apperrors.NewBadRequestError("attachment has no file name", nil)
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", apperrors.NewUploadError("could not store "+name, err)
	}
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, name)); err != nil {
		return "", apperrors.NewUploadError("could not store "+name, err)
	}

	s.log.WithField("file", name).WithField("size", file.Size).Info("attachment stored")
	return name, nil
}

// limitBody caps the request body at the upload limit plus room for the
// surrounding fields. Every contact endpoint reads through it.
func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes+multipartSlack)
}

// readContactForm parses a url-encoded or multipart body under the body cap
// and reads the contact fields from it.
func (s *Server) readContactForm(c *gin.Context) (validation.ContactInput, error) {
	s.limitBody(c)
	if err := c.Request.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		if isBodyTooLarge(err) {
			return validation.ContactInput{}, apperrors.NewPayloadTooLargeError(s.cfg.MaxUploadBytes)
		}
		return validation.ContactInput{}, apperrors.NewBadRequestError("invalid form body", err)
	}
	return contactFromForm(c), nil
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}
