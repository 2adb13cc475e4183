package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	invoicedomain "github.com/smallbiznis/ivoice/internal/invoice/domain"
)

func (s *Server) ListInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": s.invoiceSvc.List(c.Request.Context()),
	})
}

func (s *Server) NewInvoiceDraft(c *gin.Context) {
	draft, err := s.invoiceSvc.CreateDraft(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": draft})
}

func (s *Server) CreateInvoice(c *gin.Context) {
	var draft invoicedomain.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		AbortWithError(c, invoicedomain.ErrNoLineItems)
		return
	}

	res, err := s.invoiceSvc.Save(c.Request.Context(), draft)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	msg := fmt.Sprintf("Invoice #%s created successfully!", res.Invoice.InvoiceNumber)
	n := successNotice(msg)
	if res.Degraded {
		n = offlineNotice(msg)
	}
	c.JSON(http.StatusCreated, gin.H{"data": res.Invoice, "notice": n})
}

// DeleteInvoice implements the confirmation contract: without
// ?confirm=true the request is a declined confirmation and a no-op, not an
// error.
func (s *Server) DeleteInvoice(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrNotFound)
		return
	}

	confirmed := c.Query("confirm") == "true"
	res, err := s.invoiceSvc.Delete(c.Request.Context(), id, confirmed)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if !res.Deleted {
		c.JSON(http.StatusOK, gin.H{
			"data":   gin.H{"deleted": false},
			"notice": infoNotice("Deletion cancelled"),
		})
		return
	}

	msg := fmt.Sprintf("Invoice #%s deleted successfully!", res.Invoice.InvoiceNumber)
	n := successNotice(msg)
	if res.Degraded {
		n = offlineNotice(msg)
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}, "notice": n})
}

func (s *Server) DownloadInvoicePDF(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrNotFound)
		return
	}

	doc, err := s.invoiceSvc.Render(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}
