package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/service"
)

type serviceRequest struct {
	Name       string          `json:"name" binding:"required"`
	Address    string          `json:"address" binding:"required"`
	Region     model.Reference `json:"region"`
	TotalRooms int             `json:"total_rooms" binding:"required"`
	RoomNaming string          `json:"room_naming"`
}

func (r serviceRequest) input() service.ServiceInput {
	return service.ServiceInput{
		Name:       r.Name,
		Address:    r.Address,
		Region:     r.Region,
		TotalRooms: r.TotalRooms,
		RoomNaming: model.RoomNaming(r.RoomNaming),
	}
}

func (h *Handler) listServices(c *gin.Context) {
	services, err := h.svc.Directory.ListServices(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": services})
}

func (h *Handler) getService(c *gin.Context) {
	svc, err := h.svc.Directory.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) createService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc, err := h.svc.Directory.CreateService(c.Request.Context(), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *Handler) updateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc, err := h.svc.Directory.UpdateService(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) serviceUtilization(c *gin.Context) {
	util, err := h.svc.Placement.ComputeUtilization(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util)
}

func (h *Handler) listUtilization(c *gin.Context) {
	utils, err := h.svc.Placement.ComputeAllUtilizations(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": utils})
}

func (h *Handler) serviceStacking(c *gin.Context) {
	analysis, err := h.svc.Placement.ComputeStacking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *Handler) recommendPlacements(c *gin.Context) {
	var req model.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recs, err := h.svc.Placement.RecommendPlacements(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": recs})
}
