package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type saveDraftRequest struct {
	Tree json.RawMessage `json:"tree" binding:"required"`
}

type draftResponse struct {
	VisitID string          `json:"visit_id"`
	Tree    json.RawMessage `json:"tree"`
	SavedAt string          `json:"saved_at"`
}

func (s *Server) GetDraft(c *gin.Context) {
	draft, err := s.draftSvc.Load(c.Request.Context(), c.Param("visitId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse{
		VisitID: draft.VisitID,
		Tree:    json.RawMessage(draft.Tree),
		SavedAt: draft.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (s *Server) SaveDraft(c *gin.Context) {
	var req saveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	draft, err := s.draftSvc.Save(c.Request.Context(), c.Param("visitId"), datatypes.JSON(req.Tree))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, draftResponse{
		VisitID: draft.VisitID,
		Tree:    json.RawMessage(draft.Tree),
		SavedAt: draft.SavedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}
