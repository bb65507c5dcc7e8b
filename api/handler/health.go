package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/api/transport"
	"github.com/rbsgo/taskhub/internal/infrastructure/monitor"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
)

type HealthHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		adapter: adapter,
		logger:  logger,
		monitor: mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services": map[string]interface{}{
			"postgresql": status.PostgreSQL,
			"redis":      status.Redis,
		},
	}

	ctx.Response.Header.SetContentType("application/json")
	if status.PostgreSQL && status.Redis {
		ctx.SetStatusCode(http.StatusOK)
		ctx.SetBodyString(transport.NewSuccess(payload, nil).String())
		return
	}
	ctx.SetStatusCode(http.StatusServiceUnavailable)
	ctx.SetBodyString(transport.NewError("DEGRADED", "dependencies unhealthy", payload).String())
}
