package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradelog/internal/models"
	"tradelog/internal/recon"
	"tradelog/internal/repository"
	"tradelog/internal/service"
)

type TradeHandler struct {
	Repo      repository.Repository
	Reconcile *service.ReconcileService
}

func (h *TradeHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/trades")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.GET("/:id/summary", h.summary)
	g.GET("/:id/pairs", h.pairs)
	g.GET("/:id/legs", h.legs)
	g.PUT("/:id/notes", h.putNotes)
}

// @Summary List trades
// @Tags trades
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param underlying query string false "underlying symbol"
// @Param status query string false "open|closed"
// @Param strategy_name query string false "strategy label"
// @Success 200 {object} apiResponse
// @Router /api/v1/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := limitQuery(c, 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListTradesParams{
		Limit:        limit,
		Offset:       offset,
		Underlying:   strQueryPtr(c, "underlying"),
		Status:       strQueryPtr(c, "status"),
		StrategyName: strQueryPtr(c, "strategy_name"),
		Since:        timeQueryPtr(c, "since"),
		Until:        timeQueryPtr(c, "until"),
		OrderBy:      "created_at",
		Asc:          boolPtr(false),
	}
	items, err := h.Repo.ListTrades(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountTrades(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

type createTradeRequest struct {
	Underlying   string   `json:"underlying" binding:"required"`
	StrategyName string   `json:"strategy_name"`
	Notes        *string  `json:"notes"`
	ExecutionIDs []uint64 `json:"execution_ids"`
}

// @Summary Create a trade and optionally claim executions
// @Tags trades
// @Param body body createTradeRequest true "trade"
// @Success 200 {object} apiResponse
// @Router /api/v1/trades [post]
func (h *TradeHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req createTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item := &models.Trade{
		Underlying:   strings.ToUpper(strings.TrimSpace(req.Underlying)),
		StrategyName: strings.TrimSpace(req.StrategyName),
		Status:       models.TradeStatusOpen,
		Notes:        req.Notes,
	}
	if item.Underlying == "" {
		Error(c, http.StatusBadRequest, "underlying required", nil)
		return
	}
	if err := h.Repo.InsertTrade(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	assigned := int64(0)
	if len(req.ExecutionIDs) > 0 {
		n, err := h.Repo.AssignExecutionsToTrade(c.Request.Context(), req.ExecutionIDs, item.ID)
		if err != nil {
			Error(c, http.StatusBadGateway, err.Error(), nil)
			return
		}
		assigned = n
	}
	Ok(c, item, map[string]any{"assigned_executions": assigned})
}

func (h *TradeHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetTradeByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "trade not found", nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary Reconciled summary for one trade
// @Tags trades
// @Param id path int true "trade id"
// @Success 200 {object} apiResponse
// @Router /api/v1/trades/{id}/summary [get]
func (h *TradeHandler) summary(c *gin.Context) {
	result, ok := h.reconcileParam(c)
	if !ok {
		return
	}
	Ok(c, result.Summary, warningsMeta(len(result.Warnings)))
}

func (h *TradeHandler) pairs(c *gin.Context) {
	result, ok := h.reconcileParam(c)
	if !ok {
		return
	}
	Ok(c, result.Pairs, warningsMeta(len(result.Warnings)))
}

func (h *TradeHandler) legs(c *gin.Context) {
	result, ok := h.reconcileParam(c)
	if !ok {
		return
	}
	Ok(c, result.Rows, warningsMeta(len(result.Warnings)))
}

type putTradeNotesRequest struct {
	Notes string `json:"notes"`
}

func (h *TradeHandler) putNotes(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var req putTradeNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Repo.UpdateTradeNotes(c.Request.Context(), id, req.Notes); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}

// reconcileParam resolves :id and runs (or serves cached) reconciliation.
// It writes the error response itself when it returns ok=false.
func (h *TradeHandler) reconcileParam(c *gin.Context) (*recon.Result, bool) {
	if h.Reconcile == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return nil, false
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return nil, false
	}
	result, err := h.Reconcile.ReconcileTrade(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return nil, false
	}
	if result == nil {
		Error(c, http.StatusNotFound, "trade not found", nil)
		return nil, false
	}
	return result, true
}

func warningsMeta(count int) map[string]any {
	if count == 0 {
		return nil
	}
	return map[string]any{"warnings": count}
}
