package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

// limitQuery clamps ?limit the same way the repository does, so pagination
// meta always echoes the limit that was actually applied.
func limitQuery(c *gin.Context, def int) int {
	return clampLimit(intQuery(c, "limit", def), def)
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func strQueryPtr(c *gin.Context, key string) *string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return &val
	}
	return nil
}

func timeQueryPtr(c *gin.Context, key string) *time.Time {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if ts, err := time.Parse(time.RFC3339, val); err == nil {
			t := ts.UTC()
			return &t
		}
	}
	return nil
}

func uint64Param(c *gin.Context, key string) uint64 {
	val := strings.TrimSpace(c.Param(key))
	if val == "" {
		return 0
	}
	out, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0
	}
	return out
}

func boolPtr(v bool) *bool { return &v }

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}
