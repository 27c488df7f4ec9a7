package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads page/limit query parameters, falling back to page 1 and
// the configured default page size on missing or malformed values.
func pageParams(c *gin.Context, defaultLimit int) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
