package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/smartkart/smartkart/internal/domain/model"
	"github.com/smartkart/smartkart/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated principal from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	val, ok := c.Get(middleware.PrincipalContextKey)
	if !ok {
		return model.Principal{}
	}
	p, _ := val.(model.Principal)
	return p
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func queryFloat(c *gin.Context, key string, def float64) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
