package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/http/response"
	"github.com/smartmeal/smartmeal-backend/internal/services"
)

type WasteHandler struct {
	waste    services.WasteService
	insights services.InsightsService
}

func NewWasteHandler(waste services.WasteService, insights services.InsightsService) *WasteHandler {
	return &WasteHandler{waste: waste, insights: insights}
}

// POST /users/:user_id/waste
// body: { "ingredient_id": "...", "quantity": 2, "unit": "pcs", "reason": "expired", "decrement_pantry": true }
func (wh *WasteHandler) LogWaste(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}

	var req struct {
		IngredientID    uuid.UUID `json:"ingredient_id"`
		Quantity        float64   `json:"quantity"`
		Unit            string    `json:"unit"`
		Reason          string    `json:"reason"`
		DecrementPantry bool      `json:"decrement_pantry"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}

	entry, err := wh.waste.LogWaste(c.Request.Context(), services.WasteEvent{
		UserID:          userID,
		IngredientID:    req.IngredientID,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Reason:          req.Reason,
		DecrementPantry: req.DecrementPantry,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"entry": entry})
}

// GET /users/:user_id/waste?horizon_days=30
func (wh *WasteHandler) ListWaste(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}
	horizonDays, _ := strconv.Atoi(c.DefaultQuery("horizon_days", "30"))

	entries, err := wh.waste.ListSince(c.Request.Context(), userID, horizonDays)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}

// GET /users/:user_id/waste/insights?horizon_days=30
func (wh *WasteHandler) GetInsights(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}
	horizonDays, _ := strconv.Atoi(c.DefaultQuery("horizon_days", "30"))

	report, err := wh.insights.ComputeInsights(c.Request.Context(), userID, horizonDays)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, report)
}
