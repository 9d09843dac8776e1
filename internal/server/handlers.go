// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/content-engine/internal/archive"
	"github.com/pdiddy/content-engine/pkg/types"
)

// HumanizeRequest is the body of POST /api/v1/humanize.
type HumanizeRequest struct {
	Text  string  `json:"text" binding:"required"`
	Style string  `json:"style,omitempty"`
	Seed  *uint64 `json:"seed,omitempty"`
}

// HumanizeResponse is the reply to POST /api/v1/humanize.
type HumanizeResponse struct {
	Text string `json:"text"`
}

// errorBody matches the error object printed by the generate command.
func errorBody(err error) gin.H {
	return gin.H{"error": err.Error()}
}

func (s *Server) handleWrite(c *gin.Context) {
	var req types.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	art, err := s.writer.Write(c.Request.Context(), req)
	if err != nil {
		s.logger.Error("writing article failed", "topic", req.Topic, "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}

	if s.archive != nil {
		e, err := s.archive.Save(c.Request.Context(), art)
		if err != nil {
			s.logger.Warn("archiving article failed", "slug", art.SEO.Slug, "error", err)
		} else {
			c.Header("Location", "/api/v1/articles/"+e.ID)
		}
	}
	c.JSON(http.StatusOK, art)
}

func (s *Server) handleGet(c *gin.Context) {
	if s.archive == nil {
		c.JSON(http.StatusNotFound, errorBody(archive.ErrNotFound))
		return
	}
	e, err := s.archive.Get(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, archive.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody(err))
	case err != nil:
		s.logger.Error("reading archive failed", "id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(err))
	default:
		c.JSON(http.StatusOK, e)
	}
}

func (s *Server) handleHumanize(c *gin.Context) {
	var req HumanizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err))
		return
	}

	text, err := s.writer.Humanize(req.Text, req.Style, req.Seed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody(err))
		return
	}
	c.JSON(http.StatusOK, HumanizeResponse{Text: text})
}
