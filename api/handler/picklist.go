package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/pkg/httpcontext"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
	picklistUC "github.com/rbsgo/taskhub/usecase/picklist"
)

type PicklistHandler struct {
	baseHandler
	picklists *picklistUC.UseCase
}

func NewPicklistHandler(picklists *picklistUC.UseCase, directory *directoryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *PicklistHandler {
	return &PicklistHandler{
		baseHandler: newBaseHandler(adapter, directory, logger),
		picklists:   picklists,
	}
}

// @Summary Reconciled picklist for a free-text field
// @Tags picklists
// @Router /api/v1/picklists/{kind} [get]
func (h *PicklistHandler) Get(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	kind, _ := ctx.UserValue("kind").(string)
	values, err := h.picklists.Reconcile(stdCtx, kind)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, values)
}
