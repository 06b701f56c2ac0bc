package http

import (
	"github.com/gin-gonic/gin"

	"syncpad/internal/bootstrap"
	"syncpad/internal/transport/http/handler"
	"syncpad/internal/transport/http/middleware"
)

// NewRouter builds the full HTTP surface. Read endpoints and page-scoped
// writes are public; destructive and administrative endpoints sit behind the
// moderator JWT.
func NewRouter(a *bootstrap.App) *gin.Engine {
	gin.SetMode(a.Config.App.GinMode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(a.Config.App.Name, a.StartedAt)
	authHandler := handler.NewAuthHandler(a.AuthService)
	pageHandler := handler.NewPageHandler(a.PageService)
	chatHandler := handler.NewChatHandler(a.ChatService, a.SearchService)
	todoHandler := handler.NewTodoHandler(a.TodoService)
	noteHandler := handler.NewNoteHandler(a.NoteService)
	docHandler := handler.NewDocHandler(a.DocService)
	adminHandler := handler.NewAdminHandler(a.Scheduler, a.CleanupService)

	r.GET("/healthz", healthHandler.Check)

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		api.GET("/pages", pageHandler.List)
		api.GET("/pages/slug/:slug", pageHandler.GetBySlug)

		api.GET("/pages/:id/messages", chatHandler.GetMessages)
		api.POST("/pages/:id/messages", chatHandler.Send)
		api.POST("/pages/:id/ask", chatHandler.Ask)
		api.GET("/pages/:id/messages/search", chatHandler.SearchText)
		api.GET("/search/messages", chatHandler.SearchSimilar)
		api.POST("/messages/:id/like", chatHandler.ToggleLike)

		api.GET("/pages/:id/todos", todoHandler.List)
		api.POST("/pages/:id/todos", todoHandler.Add)
		api.POST("/todos/:id/toggle", todoHandler.Toggle)
		api.POST("/todos/:id/upvote", todoHandler.Upvote)
		api.POST("/todos/:id/downvote", todoHandler.Downvote)

		api.GET("/pages/:id/notes", noteHandler.List)
		api.POST("/pages/:id/notes", noteHandler.Create)
		api.PUT("/notes/:id", noteHandler.Update)

		api.GET("/pages/:id/docs", docHandler.List)
		api.POST("/pages/:id/docs", docHandler.Create)
		api.PUT("/docs/:id", docHandler.Update)
		api.POST("/docs/import", docHandler.ImportPDF)
	}

	mod := api.Group("")
	mod.Use(middleware.RequireModerator(a.Config.Auth.JWTSecret))
	{
		mod.POST("/pages", pageHandler.Create)
		mod.POST("/pages/:id/toggle", pageHandler.ToggleActive)
		mod.DELETE("/pages/:id", pageHandler.Delete)

		mod.DELETE("/messages/:id", chatHandler.DeleteMessage)
		mod.DELETE("/pages/:id/messages", chatHandler.DeleteAllMessages)

		mod.DELETE("/todos/:id", todoHandler.Remove)
		mod.DELETE("/pages/:id/todos", todoHandler.RemoveAll)

		mod.DELETE("/notes/:id", noteHandler.Delete)
		mod.DELETE("/pages/:id/notes", noteHandler.DeleteAll)

		mod.DELETE("/docs/:id", docHandler.Delete)
		mod.DELETE("/pages/:id/docs", docHandler.DeleteAll)

		mod.GET("/admin/cron", adminHandler.ListCronJobs)
		mod.POST("/admin/cron/:name/run", adminHandler.RunCronJob)
		mod.POST("/admin/cleanup/run", adminHandler.RunCleanup)
	}

	return r
}
