package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	pricingconfigdomain "github.com/movelar/proforma/internal/pricingconfig/domain"
)

func (s *Server) CreatePricingConfig(c *gin.Context) {
	var req pricingconfigdomain.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingConfigSvc.CreateConfig(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPricingConfigs(c *gin.Context) {
	supplierID, err := parseOptionalID(c.Query("supplier_id"))
	if err != nil {
		AbortWithError(c, newValidationError("supplier_id", "invalid_id", "invalid identifier"))
		return
	}

	resp, err := s.pricingConfigSvc.ListConfigs(c.Request.Context(), supplierID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateFreightItem(c *gin.Context) {
	var req pricingconfigdomain.CreateFreightItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingConfigSvc.CreateFreightItem(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListFreightItems(c *gin.Context) {
	incoterm := strings.TrimSpace(c.Query("incoterm"))

	resp, err := s.pricingConfigSvc.ListFreightItems(c.Request.Context(), incoterm)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteFreightItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.pricingConfigSvc.DeleteFreightItem(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}
