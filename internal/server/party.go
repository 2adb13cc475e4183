package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/smallbiznis/ivoice/internal/catalog/domain"
)

func (s *Server) ListParties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": s.catalogSvc.ListParties(c.Request.Context()),
	})
}

func (s *Server) CreateParty(c *gin.Context) {
	var req catalogdomain.CreatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, catalogdomain.ErrNameRequired)
		return
	}

	party, err := s.catalogSvc.CreateParty(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	n := successNotice("Party added successfully!")
	if s.app.Offline() {
		n = offlineNotice("Party added successfully!")
	}
	c.JSON(http.StatusCreated, gin.H{"data": party, "notice": n})
}
