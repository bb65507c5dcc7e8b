package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rbsgo/taskhub/api/transport"
	"github.com/rbsgo/taskhub/domain"
	"github.com/rbsgo/taskhub/pkg/httpcontext"
	"github.com/rbsgo/taskhub/repository"
	directoryUC "github.com/rbsgo/taskhub/usecase/directory"
	lifecycleUC "github.com/rbsgo/taskhub/usecase/lifecycle"
	parserUC "github.com/rbsgo/taskhub/usecase/parser"
	viewUC "github.com/rbsgo/taskhub/usecase/view"
)

const dueDateLayout = "2006-01-02"

type TaskHandler struct {
	baseHandler
	lifecycle *lifecycleUC.UseCase
	parser    *parserUC.UseCase
	views     *viewUC.UseCase
}

func NewTaskHandler(lifecycle *lifecycleUC.UseCase, parser *parserUC.UseCase, views *viewUC.UseCase, directory *directoryUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, directory, logger),
		lifecycle:   lifecycle,
		parser:      parser,
		views:       views,
	}
}

// @Summary Bucketed task view
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	bucket := viewUC.ParseBucket(string(ctx.QueryArgs().Peek("bucket")))
	scope := string(ctx.QueryArgs().Peek("scope"))

	result, err := h.views.Render(stdCtx, user, scope, bucket)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Create task from a raw entry or structured fields
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	task := &domain.Task{
		Description:  req.Description,
		AssignedTo:   req.AssignedTo,
		ProjectRef:   req.ProjectRef,
		Coordinator:  req.Coordinator,
		EmailSubject: req.EmailSubject,
		Points:       req.Points,
	}
	if req.Entry != "" {
		parsed := h.parser.Parse(stdCtx, req.Entry, user.Email)
		task.Description = parsed.Description
		if task.AssignedTo == "" {
			task.AssignedTo = parsed.Assignee
		}
	}
	if req.Priority != "" {
		task.Priority = domain.ParsePriority(req.Priority)
	}
	if req.DueDate != "" {
		due, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "due_date must be YYYY-MM-DD", nil))
			return
		}
		task.DueDate = due
	}

	id, err := h.lifecycle.Create(stdCtx, task, user)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]string{"id": id})
}

// @Summary Change task status
// @Tags tasks
// @Router /api/v1/tasks/{id}/status [put]
func (h *TaskHandler) SetStatus(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "missing task id", nil))
		return
	}

	var req transport.StatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	if err := h.lifecycle.SetStatus(stdCtx, id, domain.Status(req.Status), req.Remarks); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Edit task fields
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) EditTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "missing task id", nil))
		return
	}

	var req transport.TaskEditRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "invalid payload", nil))
		return
	}

	update := repository.TaskUpdate{
		Description:    req.Description,
		AssignedTo:     req.AssignedTo,
		ProjectRef:     req.ProjectRef,
		Coordinator:    req.Coordinator,
		StaffRemarks:   req.StaffRemarks,
		ManagerRemarks: req.ManagerRemarks,
		EmailSubject:   req.EmailSubject,
		Points:         req.Points,
	}
	if req.Priority != nil {
		p := domain.ParsePriority(*req.Priority)
		update.Priority = &p
	}
	if req.DueDate != nil {
		due, err := time.Parse(dueDateLayout, *req.DueDate)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "due_date must be YYYY-MM-DD", nil))
			return
		}
		update.DueDate = &due
	}

	if err := h.lifecycle.Edit(stdCtx, id, update, user.Role); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Reinstate a completed task
// @Tags tasks
// @Router /api/v1/tasks/{id}/reinstate [post]
func (h *TaskHandler) Reinstate(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user := h.actingUser(ctx, stdCtx)
	if user == nil {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeValidation), "missing task id", nil))
		return
	}

	if err := h.lifecycle.Reinstate(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}
