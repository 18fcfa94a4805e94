package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradelog/internal/repository"
	"tradelog/internal/service"
)

type AnalyticsHandler struct {
	Repo      repository.Repository
	Reconcile *service.ReconcileService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/analytics")
	g.GET("/overview", h.overview)
	g.GET("/history", h.history)
}

// @Summary Live portfolio overview recomputed from executions
// @Tags analytics
// @Success 200 {object} apiResponse
// @Router /api/v1/analytics/overview [get]
func (h *AnalyticsHandler) overview(c *gin.Context) {
	if h.Reconcile == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	overview, err := h.Reconcile.ReconcileAll(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, overview, nil)
}

func (h *AnalyticsHandler) history(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListPortfolioSnapshotsParams{
		Limit:  intQuery(c, "limit", 168),
		Offset: intQuery(c, "offset", 0),
		Since:  timeQueryPtr(c, "since"),
		Until:  timeQueryPtr(c, "until"),
	}
	items, err := h.Repo.ListPortfolioSnapshots(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
