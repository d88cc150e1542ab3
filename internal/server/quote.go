package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	fxquotedomain "github.com/movelar/proforma/internal/fxquote/domain"
)

func (s *Server) SubmitQuote(c *gin.Context) {
	var req fxquotedomain.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.quoteSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLatestQuote(c *gin.Context) {
	resp, err := s.quoteSvc.Latest(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
