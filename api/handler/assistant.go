package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/api/transport"
	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
	assistantUC "github.com/rbsgo/taskhub/usecase/assistant"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
	viewUC "github.com/rbsgo/taskhub/usecase/view"
)

type AssistantHandler struct {
	baseHandler
	assistant *assistantUC.UseCase
	views     *viewUC.UseCase
}

func NewAssistantHandler(assistant *assistantUC.UseCase, views *viewUC.UseCase, directory *directoryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		baseHandler: newBaseHandler(adapter, directory, logger),
		assistant:   assistant,
		views:       views,
	}
}

// @Summary Role-aware summary of the visible task set
// @Tags assistant
// @Router /api/v1/assistant/summary [post]
func (h *AssistantHandler) Summary(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	var req transport.SummaryRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
			return
		}
	}

	result, err := h.views.Render(stdCtx, user, req.Scope, viewUC.ParseBucket(req.Bucket))
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	// Summarize degrades to a fallback message on collaborator failure,
	// so this endpoint never reports the assistant as a fatal error.
	summary := h.assistant.Summarize(stdCtx, user, result.Tasks)
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"summary": summary})
}
