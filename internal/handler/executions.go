package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradelog/internal/repository"
	"tradelog/internal/service"
)

type ExecutionHandler struct {
	Repo   repository.Repository
	Import *service.ImportService
}

func (h *ExecutionHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/executions")
	g.GET("", h.list)
	g.POST("/import", h.importBatch)
	g.PUT("/assign", h.assign)
}

func (h *ExecutionHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := limitQuery(c, 100)
	offset := intQuery(c, "offset", 0)
	var tradeID *uint64
	if v := intQuery(c, "trade_id", 0); v > 0 {
		id := uint64(v)
		tradeID = &id
	}
	params := repository.ListExecutionsParams{
		Limit:        limit,
		Offset:       offset,
		TradeID:      tradeID,
		Underlying:   strQueryPtr(c, "underlying"),
		SecurityType: strQueryPtr(c, "security_type"),
		Side:         strQueryPtr(c, "side"),
		Since:        timeQueryPtr(c, "since"),
		Until:        timeQueryPtr(c, "until"),
		OrderBy:      "executed_at",
		Asc:          boolPtr(false),
	}
	items, err := h.Repo.ListExecutions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountExecutions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

type importExecutionsRequest struct {
	Rows []service.ExecutionImportRow `json:"rows" binding:"required"`
}

// @Summary Import a batch of broker fills
// @Tags executions
// @Param body body importExecutionsRequest true "fills"
// @Success 200 {object} apiResponse
// @Router /api/v1/executions/import [post]
func (h *ExecutionHandler) importBatch(c *gin.Context) {
	if h.Import == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req importExecutionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	result, err := h.Import.ImportExecutions(c.Request.Context(), req.Rows)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, result, nil)
}

type assignExecutionsRequest struct {
	TradeID      uint64   `json:"trade_id" binding:"required"`
	ExecutionIDs []uint64 `json:"execution_ids" binding:"required"`
}

func (h *ExecutionHandler) assign(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req assignExecutionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	n, err := h.Repo.AssignExecutionsToTrade(c.Request.Context(), req.ExecutionIDs, req.TradeID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"assigned": n}, nil)
}
