package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) SalesReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.reportSvc.Sales()})
}

func (s *Server) OutstandingReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.reportSvc.Outstanding()})
}

func (s *Server) InventoryReport(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.reportSvc.Inventory()})
}
