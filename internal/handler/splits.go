package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradelog/internal/repository"
	"tradelog/internal/service"
)

type SplitHandler struct {
	Repo   repository.Repository
	Import *service.ImportService
}

func (h *SplitHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/splits")
	g.GET("", h.list)
	g.PUT("", h.upsert)
	g.DELETE("/:id", h.remove)
}

func (h *SplitHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := limitQuery(c, 100)
	offset := intQuery(c, "offset", 0)
	params := repository.ListStockSplitsParams{
		Limit:   limit,
		Offset:  offset,
		Symbol:  strQueryPtr(c, "symbol"),
		Since:   timeQueryPtr(c, "since"),
		OrderBy: "split_date",
		Asc:     boolPtr(false),
	}
	items, err := h.Repo.ListStockSplits(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountStockSplits(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Record or update a stock split
// @Tags splits
// @Param body body service.SplitInput true "split"
// @Success 200 {object} apiResponse
// @Router /api/v1/splits [put]
func (h *SplitHandler) upsert(c *gin.Context) {
	if h.Import == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req service.SplitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := h.Import.UpsertSplit(c.Request.Context(), req)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *SplitHandler) remove(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Repo.DeleteStockSplit(c.Request.Context(), id); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}
