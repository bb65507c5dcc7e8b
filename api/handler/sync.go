package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/api/transport"
	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/internal/infrastructure/audit"
	"github.com/rbsgo/taskhub/internal/services/sheetsync"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
)

type SyncHandler struct {
	baseHandler
	syncer  *sheetsync.Syncer
	reports *audit.Store
}

func NewSyncHandler(syncer *sheetsync.Syncer, reports *audit.Store, directory *directoryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		baseHandler: newBaseHandler(adapter, directory, logger),
		syncer:      syncer,
		reports:     reports,
	}
}

// @Summary Trigger a project sheet sync (manager only)
// @Tags sync
// @Router /api/v1/sync/projects [post]
func (h *SyncHandler) RunSync(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}
	if !user.IsManager() {
		h.respondError(ctx, domain.ErrForbidden)
		return
	}
	if h.syncer == nil {
		h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError(string(domain.ErrCodeConfig), "sheet sync is not configured", nil))
		return
	}

	report, err := h.syncer.Run(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Recent sync run reports (manager only)
// @Tags sync
// @Router /api/v1/sync/reports [get]
func (h *SyncHandler) ListReports(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}
	if !user.IsManager() {
		h.respondError(ctx, domain.ErrForbidden)
		return
	}

	limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))
	reports, err := h.reports.Recent(limit)
	if err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeRead, "loading sync reports failed", err))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, reports)
}
