package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/rbsgo/taskhub/api/handler"
)

type Handlers struct {
	Task      *apiHandler.TaskHandler
	Picklist  *apiHandler.PicklistHandler
	User      *apiHandler.UserHandler
	Sync      *apiHandler.SyncHandler
	Assistant *apiHandler.AssistantHandler
	Health    *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Task lifecycle and views
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PUT("/api/v1/tasks/{id}", authMiddleware(handlers.Task.EditTask))
	r.PUT("/api/v1/tasks/{id}/status", authMiddleware(handlers.Task.SetStatus))
	r.POST("/api/v1/tasks/{id}/reinstate", authMiddleware(handlers.Task.Reinstate))

	// Picklists
	r.GET("/api/v1/picklists/{kind}", authMiddleware(handlers.Picklist.Get))

	// Directory
	r.GET("/api/v1/users", authMiddleware(handlers.User.ListUsers))
	r.POST("/api/v1/users", authMiddleware(handlers.User.CreateUser))
	r.PUT("/api/v1/users/{email}", authMiddleware(handlers.User.UpdateUser))

	// Project sheet sync
	r.POST("/api/v1/sync/projects", authMiddleware(handlers.Sync.RunSync))
	r.GET("/api/v1/sync/reports", authMiddleware(handlers.Sync.ListReports))

	// Assistant
	r.POST("/api/v1/assistant/summary", authMiddleware(handlers.Assistant.Summary))

	return r
}
