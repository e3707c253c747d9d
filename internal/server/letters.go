package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	lettersdomain "github.com/chatgptnotes/esic-billing/internal/letters/domain"
)

type generateLetterRequest struct {
	Kind      string                `json:"kind" binding:"required"`
	Patient   lettersdomain.Patient `json:"patient"`
	Diagnoses []string              `json:"diagnoses"`
	Surgeries []string              `json:"surgeries"`
	Extra     string                `json:"extra"`
}

func (s *Server) GenerateLetter(c *gin.Context) {
	var req generateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	kind, err := lettersdomain.ParseKind(req.Kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.lettersSvc.Generate(c.Request.Context(), lettersdomain.GenerateRequest{
		VisitID:   c.Param("visitId"),
		Kind:      kind,
		Patient:   req.Patient,
		Diagnoses: req.Diagnoses,
		Surgeries: req.Surgeries,
		Extra:     req.Extra,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
