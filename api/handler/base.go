package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/api/transport"
	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
)

type baseHandler struct {
	adapter   *httpcontext.Adapter
	directory *directoryUC.UseCase
	logger    *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, directory *directoryUC.UseCase, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, directory: directory, logger: logger}
}

// actingUser resolves the authenticated email (injected by the session
// gate) to an active directory entry. A nil return means the response
// has already been written.
func (h baseHandler) actingUser(ctx *fasthttp.RequestCtx, stdCtx context.Context) *domain.User {
	email := string(ctx.Request.Header.Peek("X-User-Email"))
	if email == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "missing user email", nil))
		return nil
	}
	user, err := h.directory.GetActive(stdCtx, email)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "unknown or inactive user", nil))
			return nil
		}
		h.respondError(ctx, err)
		return nil
	}
	return user
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, code := mapError(err)
	h.respondJSON(ctx, status, transport.NewError(code, err.Error(), nil))
}

func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized, string(domain.ErrCodeUnauthorized)
	case domain.IsDomainError(err, domain.ErrCodeForbidden):
		return http.StatusForbidden, string(domain.ErrCodeForbidden)
	case domain.IsDomainError(err, domain.ErrCodeValidation):
		return http.StatusBadRequest, string(domain.ErrCodeValidation)
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, string(domain.ErrCodeNotFound)
	case domain.IsDomainError(err, domain.ErrCodeRead):
		return http.StatusBadGateway, string(domain.ErrCodeRead)
	case domain.IsDomainError(err, domain.ErrCodeWrite):
		return http.StatusBadGateway, string(domain.ErrCodeWrite)
	default:
		return http.StatusInternalServerError, string(domain.ErrCodeInternal)
	}
}

