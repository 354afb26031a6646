package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartmeal/smartmeal-backend/internal/http/response"
	"github.com/smartmeal/smartmeal-backend/internal/realtime"
)

type EventsHandler struct {
	hub *realtime.Hub
}

func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// GET /users/:user_id/events
// Streams pantry.updated and waste.logged events for the user as SSE.
func (eh *EventsHandler) Stream(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.RespondError(c, 400, "invalid_user_id", err)
		return
	}

	client := eh.hub.NewClient(userID)
	eh.hub.AddChannel(client, realtime.UserChannel(userID))
	defer eh.hub.CloseClient(client)

	eh.hub.ServeHTTP(c.Writer, c.Request, client)
}
