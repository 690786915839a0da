package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseLimit reads the optional "limit" query parameter. Missing means def;
// values must lie in 1..maxLimit.
func ParseLimit(c *gin.Context, def, maxLimit int) (int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok || raw == "" {
		return def, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxLimit)
	}
	return limit, nil
}

// ParseOptionalInt reads an optional positive integer query parameter.
func ParseOptionalInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return nil, fmt.Errorf("invalid %s parameter: must be a positive integer", name)
	}
	return &value, nil
}
