package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/careops-billing/internal/model"
	"github.com/nurpe/careops-billing/internal/service"
)

type createContractRequest struct {
	Authority            model.Reference `json:"authority"`
	Region               model.Reference `json:"region"`
	LotName              string          `json:"lot_name"`
	ServiceUserName      string          `json:"service_user_name" binding:"required"`
	CycleStartDate       string          `json:"cycle_start_date" binding:"required"`
	SharedHoursPerWeek   float64         `json:"shared_hours_per_week"`
	SharedRate           float64         `json:"shared_rate"`
	OneToOneHoursPerWeek float64         `json:"one_to_one_hours_per_week"`
	OneToOneRate         float64         `json:"one_to_one_rate"`
	TwoToOneHoursPerWeek float64         `json:"two_to_one_hours_per_week"`
	TwoToOneRate         float64         `json:"two_to_one_rate"`
	NightHoursPerWeek    *float64        `json:"night_hours_per_week"`
	NightRate            *float64        `json:"night_rate"`
}

type terminateContractRequest struct {
	TerminatedDate string `json:"terminated_date"`
}

type assignRoomRequest struct {
	ServiceID  string `json:"service_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
}

type rateChangeRequest struct {
	Workflow           string   `json:"workflow" binding:"required"`
	AuthorityID        string   `json:"authority_id"`
	LotName            string   `json:"lot_name"`
	ContractIDs        []string `json:"contract_ids"`
	Method             string   `json:"method" binding:"required"`
	PercentageIncrease float64  `json:"percentage_increase"`
	ApplyToShared      bool     `json:"apply_to_shared"`
	ApplyToOneToOne    bool     `json:"apply_to_one_to_one"`
	ApplyToTwoToOne    bool     `json:"apply_to_two_to_one"`
	ApplyToNight       bool     `json:"apply_to_night"`
	NewSharedRate      float64  `json:"new_shared_rate"`
	NewOneToOneRate    float64  `json:"new_one_to_one_rate"`
	NewTwoToOneRate    float64  `json:"new_two_to_one_rate"`
	NewNightRate       float64  `json:"new_night_rate"`
	EffectiveFrom      string   `json:"effective_from"`
	Reason             string   `json:"reason"`
}

func (r rateChangeRequest) toModel() (model.RateChangeRequest, error) {
	req := model.RateChangeRequest{
		Workflow:           model.RateChangeWorkflow(strings.ToLower(strings.TrimSpace(r.Workflow))),
		AuthorityID:        r.AuthorityID,
		LotName:            r.LotName,
		ContractIDs:        r.ContractIDs,
		Method:             model.RateChangeMethod(strings.ToLower(strings.TrimSpace(r.Method))),
		PercentageIncrease: r.PercentageIncrease,
		ApplyToShared:      r.ApplyToShared,
		ApplyToOneToOne:    r.ApplyToOneToOne,
		ApplyToTwoToOne:    r.ApplyToTwoToOne,
		ApplyToNight:       r.ApplyToNight,
		NewSharedRate:      r.NewSharedRate,
		NewOneToOneRate:    r.NewOneToOneRate,
		NewTwoToOneRate:    r.NewTwoToOneRate,
		NewNightRate:       r.NewNightRate,
		Reason:             r.Reason,
	}
	effective, err := parseOptionalDate(r.EffectiveFrom, time.Time{})
	if err != nil {
		return req, err
	}
	req.EffectiveFrom = effective
	return req, nil
}

func (h *Handler) listContracts(c *gin.Context) {
	contracts, err := h.svc.Contracts.ListContracts(c.Request.Context(), c.Query("authority_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contracts})
}

func (h *Handler) getContract(c *gin.Context) {
	contract, err := h.svc.Contracts.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) createContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := parseDate(req.CycleStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cycle_start_date"})
		return
	}

	contract, err := h.svc.Contracts.CreateContract(c.Request.Context(), service.CreateContractInput{
		Authority:            req.Authority,
		Region:               req.Region,
		LotName:              req.LotName,
		ServiceUserName:      req.ServiceUserName,
		CycleStartDate:       start,
		SharedHoursPerWeek:   req.SharedHoursPerWeek,
		SharedRate:           req.SharedRate,
		OneToOneHoursPerWeek: req.OneToOneHoursPerWeek,
		OneToOneRate:         req.OneToOneRate,
		TwoToOneHoursPerWeek: req.TwoToOneHoursPerWeek,
		TwoToOneRate:         req.TwoToOneRate,
		NightHoursPerWeek:    req.NightHoursPerWeek,
		NightRate:            req.NightRate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) terminateContract(c *gin.Context) {
	var req terminateContractRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	date, err := parseOptionalDate(req.TerminatedDate, time.Now().UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid terminated_date"})
		return
	}

	contract, err := h.svc.Contracts.TerminateContract(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) assignRoom(c *gin.Context) {
	var req assignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assignment, err := h.svc.Contracts.AssignRoom(c.Request.Context(), c.Param("id"), req.ServiceID, req.RoomNumber)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *Handler) vacateRoom(c *gin.Context) {
	if err := h.svc.Contracts.VacateRoom(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) bindRateChange(c *gin.Context) (model.RateChangeRequest, bool) {
	var req rateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return model.RateChangeRequest{}, false
	}
	parsed, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid effective_from"})
		return model.RateChangeRequest{}, false
	}
	return parsed, true
}

func (h *Handler) previewRateChange(c *gin.Context) {
	req, ok := h.bindRateChange(c)
	if !ok {
		return
	}
	previews, err := h.svc.Contracts.PreviewRateChange(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": previews})
}

func (h *Handler) applyRateChange(c *gin.Context) {
	req, ok := h.bindRateChange(c)
	if !ok {
		return
	}
	applied, err := h.svc.Contracts.ApplyRateChange(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": applied})
}
