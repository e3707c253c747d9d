package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	visitdomain "github.com/chatgptnotes/esic-billing/internal/visit/domain"
)

type upsertCollectionRequest struct {
	Rows []visitdomain.Row `json:"rows" binding:"required"`
}

func (s *Server) ListCollection(c *gin.Context) {
	kind, err := visitdomain.ParseKind(c.Param("kind"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := s.visitSvc.List(c.Request.Context(), c.Param("visitId"), kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) UpsertCollection(c *gin.Context) {
	kind, err := visitdomain.ParseKind(c.Param("kind"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req upsertCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.visitSvc.Upsert(c.Request.Context(), c.Param("visitId"), kind, req.Rows); err != nil {
		AbortWithError(c, err)
		return
	}

	rows, err := s.visitSvc.List(c.Request.Context(), c.Param("visitId"), kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
