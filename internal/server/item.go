package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
)

func (s *Server) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": s.catalogSvc.ListItems(c.Request.Context()),
	})
}

func (s *Server) CreateItem(c *gin.Context) {
	var req catalogdomain.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, catalogdomain.ErrNameRequired)
		return
	}

	item, err := s.catalogSvc.CreateItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	n := successNotice("Item added successfully!")
	if s.app.Offline() {
		n = offlineNotice("Item added successfully!")
	}
	c.JSON(http.StatusCreated, gin.H{"data": item, "notice": n})
}
