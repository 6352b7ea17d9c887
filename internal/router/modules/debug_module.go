package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/clubevents/internal/interface/middleware"
	"github.com/oksasatya/clubevents/internal/metrics"
)

// DebugModule exposes expvar under the API group and Prometheus at /metrics.
// Both are rate limited per IP; private networks bypass the limit.
type DebugModule struct {
	Engine *gin.Engine
	Redis  *redis.Client
}

func NewDebugModule(engine *gin.Engine, rdb *redis.Client) *DebugModule {
	return &DebugModule{Engine: engine, Redis: rdb}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	if m.Engine != nil {
		m.Engine.GET("/metrics", rl, gin.WrapH(metrics.Handler()))
	}
}
