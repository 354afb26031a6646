package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/http/response"
	"github.com/smartmeal/smartmeal-backend/internal/services"
)

type PantryHandler struct {
	pantry services.PantryService
}

func NewPantryHandler(pantry services.PantryService) *PantryHandler {
	return &PantryHandler{pantry: pantry}
}

// POST /users/:user_id/pantry
// body: { "ingredient_id": "...", "unit": "g", "quantity_delta": 500, "best_before": "2026-09-01", "source": "manual" }
func (ph *PantryHandler) UpsertEntry(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}

	var req struct {
		IngredientID  uuid.UUID `json:"ingredient_id"`
		Unit          string    `json:"unit"`
		QuantityDelta float64   `json:"quantity_delta"`
		BestBefore    string    `json:"best_before"`
		Source        string    `json:"source"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, 400, "invalid_request", err)
		return
	}

	var bestBefore *time.Time
	if raw := strings.TrimSpace(req.BestBefore); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(c, 400, "invalid_best_before", err)
			return
		}
		bestBefore = &parsed
	}

	entry, err := ph.pantry.ApplyDelta(c.Request.Context(), services.PantryDelta{
		UserID:        userID,
		IngredientID:  req.IngredientID,
		Unit:          req.Unit,
		QuantityDelta: req.QuantityDelta,
		BestBefore:    bestBefore,
		Source:        req.Source,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entry": entry})
}

// GET /users/:user_id/pantry
func (ph *PantryHandler) GetPantry(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}

	entries, err := ph.pantry.GetPantry(c.Request.Context(), userID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}

// GET /users/:user_id/pantry/expiring?within_days=3
func (ph *PantryHandler) GetExpiring(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}
	withinDays, _ := strconv.Atoi(c.DefaultQuery("within_days", "3"))

	entries, err := ph.pantry.GetExpiringSoon(c.Request.Context(), userID, withinDays)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"entries": entries})
}
