package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/chatgptnotes/esic-billing/internal/catalog/domain"
	"github.com/chatgptnotes/esic-billing/pkg/db/pagination"
)

func (s *Server) SearchCatalog(c *gin.Context) {
	kind, err := catalogdomain.ParseKind(c.Param("kind"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.catalogSvc.Search(c.Request.Context(), catalogdomain.SearchRequest{
		Kind:       kind,
		Query:      c.Query("q"),
		Pagination: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
