package server

import (
	"feedback-server/cache"
	"feedback-server/confs"
	"feedback-server/db"
	"feedback-server/handlers"
	httpHandler "feedback-server/handlers/http"
	"feedback-server/repositories"
	"feedback-server/services"
	"feedback-server/usecases"
	"feedback-server/ws"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	s.app.Use(cors.New(config))

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	feedbackRepo := repositories.NewFeedbackPgRepository(s.db)
	sessionRepo := repositories.NewSessionPgRepository(s.db)

	// WebSocket manager and event publisher
	manager := ws.NewManager()
	events := handlers.NewFeedbackEvents(manager)

	// Initialize use cases
	sessionUseCase := usecases.NewSessionUseCase(sessionRepo, cache.NewSessionCache(), confs.SessionTTL())
	userUseCase := usecases.NewUserUseCase(userRepo, feedbackRepo)
	feedbackUseCase := usecases.NewFeedbackUseCase(feedbackRepo, events)

	// Background sweep of expired sessions
	sweeper := services.NewSessionSweeper(sessionUseCase, 0)
	sweeper.Start()

	// Initialize handlers
	authMiddleware := httpHandler.NewAuthMiddleware(sessionUseCase)
	authHandler := httpHandler.NewAuthHandler(userUseCase, sessionUseCase)
	userHandler := httpHandler.NewUserHandler(userUseCase, feedbackUseCase, sessionUseCase)
	feedbackHandler := httpHandler.NewFeedbackHandler(feedbackUseCase)
	wsHandler := handlers.NewWSHandler(manager)

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"sessions": sessionUseCase.CacheStats(),
		})
	})

	// Setup routes
	s.app.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/register")
	})

	s.app.GET("/register", authMiddleware.RedirectIfAuthenticated, authHandler.ShowRegister)
	s.app.POST("/register", authMiddleware.RedirectIfAuthenticated, authHandler.Register)
	s.app.GET("/login", authMiddleware.RedirectIfAuthenticated, authHandler.ShowLogin)
	s.app.POST("/login", authMiddleware.RedirectIfAuthenticated, authHandler.Login)
	s.app.GET("/logout", authHandler.Logout)

	// Profile routes: session identity must match the path username
	users := s.app.Group("/users/:username", authMiddleware.RequireSession, authMiddleware.RequireSelf)
	{
		users.GET("", userHandler.ShowUser)
		users.POST("/delete", userHandler.DeleteUser)
		users.GET("/feedback/add", feedbackHandler.ShowAddForm)
		users.POST("/feedback/add", feedbackHandler.AddFeedback)
	}

	// Feedback routes: ownership comes from the stored row, checked in
	// the handler after the session gate
	feedback := s.app.Group("/feedback/:id", authMiddleware.RequireSession)
	{
		feedback.GET("/update", feedbackHandler.ShowUpdateForm)
		feedback.POST("/update", feedbackHandler.UpdateFeedback)
		feedback.POST("/delete", feedbackHandler.DeleteFeedback)
	}

	s.app.GET("/ws", authMiddleware.RequireSession, wsHandler.HandleUserWS)

	if err := s.app.Run(confs.AppAddr()); err != nil {
		panic(err)
	}
}
