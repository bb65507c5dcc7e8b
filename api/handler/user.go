package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/api/transport"
	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
)

type UserHandler struct {
	baseHandler
}

func NewUserHandler(directory *directoryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, directory, logger),
	}
}

// @Summary List active users
// @Tags users
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	users, err := h.directory.ListActive(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, users)
}

// @Summary Register a user (manager only)
// @Tags users
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	var req transport.UserRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	entry := &domain.User{
		Email:     req.Email,
		Name:      req.Name,
		ShortName: req.ShortName,
		Role:      domain.Role(req.Role),
	}
	if err := h.directory.Add(stdCtx, entry, user.Role); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, entry)
}

// @Summary Toggle activation or role (manager only)
// @Tags users
// @Router /api/v1/users/{email} [put]
func (h *UserHandler) UpdateUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	email, _ := ctx.UserValue("email").(string)
	if email == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "missing user email", nil))
		return
	}

	var req transport.UserToggleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	if req.Active != nil {
		if err := h.directory.SetActive(stdCtx, email, *req.Active, user.Role); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	if req.Role != nil {
		if err := h.directory.SetRole(stdCtx, email, domain.Role(*req.Role), user.Role); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
