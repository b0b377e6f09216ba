package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-server/internal/apperrors"
	"github.com/Zachkp/portfolio-server/internal/model"
)

func (s *Server) listServices(c *gin.Context) {
	services, err := s.store.Services.FindAll(c.Request.Context(), nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (s *Server) addService(c *gin.Context) {
	var svc model.Service
	if err := bindOptionalJSON(c, &svc); err != nil {
		s.fail(c, err)
		return
	}

	stored, err := s.store.Services.Insert(c.Request.Context(), &svc)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stored})
}

func (s *Server) listPortfolio(c *gin.Context) {
	items, err := s.store.Portfolio.FindAll(c.Request.Context(), nil)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) addPortfolioItem(c *gin.Context) {
	var item model.PortfolioItem
	if err := bindOptionalJSON(c, &item); err != nil {
		s.fail(c, err)
		return
	}

	stored, err := s.store.Portfolio.Insert(c.Request.Context(), &item)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stored})
}

// bindOptionalJSON decodes the request body into v. An empty body leaves v
// untouched; a malformed one is a bad request.
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewBadRequestError("invalid JSON body", err)
	}
	return nil
}
