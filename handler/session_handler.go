package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/developer4fun/Knowledge-Explorer/service"
	"github.com/developer4fun/Knowledge-Explorer/types"
)

type SessionHandler struct {
	session *service.SessionService
}

func NewSessionHandler(session *service.SessionService) *SessionHandler {
	return &SessionHandler{
		session: session,
	}
}

// HandleGetSession returns the current session snapshot for pull-based
// UIs.
func (h *SessionHandler) HandleGetSession(c *gin.Context) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   h.session.Snapshot(),
	})
}

// HandleChangeFocus is called by the reading surface whenever the
// reader's position changes. The returned snapshot has the loading flag
// set; recommendations resolve asynchronously and are delivered over the
// session feed or the next snapshot poll.
func (h *SessionHandler) HandleChangeFocus(c *gin.Context) {
	var req types.ChangeFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Invalid request body",
		})
		return
	}
	if err := h.session.ChangeFocus(req.SectionIndex); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data:   h.session.Snapshot(),
	})
}
