package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/developer4fun/Knowledge-Explorer/service"
	"github.com/developer4fun/Knowledge-Explorer/types"
)

type RecommendationHandler struct {
	recommender *service.RecommendationService
}

func NewRecommendationHandler(recommender *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
	}
}

// HandleRecommendations serves related sections for an arbitrary
// document and focus index, independent of the reading session. An empty
// recommendation list is a normal response, never an error.
func (h *RecommendationHandler) HandleRecommendations(c *gin.Context) {
	id := c.Param("id")
	focus, err := strconv.Atoi(c.Query("focus"))
	if err != nil || focus < 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{
			Status:  "error",
			Message: "Query parameter 'focus' must be a non-negative integer",
		})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, types.DataResponse{
				Status:  "error",
				Message: "Query parameter 'limit' must be a positive integer",
			})
			return
		}
	}

	recommendations := h.recommender.GetRecommendationsLimit(c.Request.Context(), id, focus, limit)

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "success",
		Data: types.RecommendationsResponse{
			DocumentID:      id,
			FocusIndex:      focus,
			Recommendations: recommendations,
		},
	})
}
