package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterDocs serves a plain-markdown API overview for humans; the machine
// spec lives at /swagger.
func RegisterDocs(r *gin.Engine) {
	r.GET("/docs", func(c *gin.Context) {
		c.Header("Content-Type", "text/markdown; charset=utf-8")
		c.String(http.StatusOK, `# Tradelog Service

Execution import, trade reconciliation, and P&L analytics for a stock and
options journal.

## Routes

- GET /healthz
- GET /readyz
- GET /swagger/index.html
- GET /api/v1/trades
- POST /api/v1/trades
- GET /api/v1/trades/{id}
- GET /api/v1/trades/{id}/summary
- GET /api/v1/trades/{id}/pairs
- GET /api/v1/trades/{id}/legs
- PUT /api/v1/trades/{id}/notes
- GET /api/v1/executions
- POST /api/v1/executions/import
- PUT /api/v1/executions/assign
- GET /api/v1/splits
- PUT /api/v1/splits
- DELETE /api/v1/splits/{id}
- GET /api/v1/analytics/overview
- GET /api/v1/analytics/history

## Notes

Reconciliation is recomputed from raw executions on every read (memoized by
input fingerprint). Snapshots under /analytics/history are an hourly cron
series, never a source of truth.
`)
	})
}
