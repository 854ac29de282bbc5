package main

import (
	"net/http"
	"os"

	"sportsvitae/backend/internal/auth"
	"sportsvitae/backend/internal/config"
	"sportsvitae/backend/internal/cron"
	"sportsvitae/backend/internal/database"
	"sportsvitae/backend/internal/handler"
	"sportsvitae/backend/internal/mailer"
	"sportsvitae/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	// Swagger imports
	_ "sportsvitae/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Sportsvitae API
// @version         1.0
// @description     This is the API for the Sportsvitae service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	mail := mailer.NewFromConfig()
	handler.Init(mail)
	service.NewNotifier(mail, log).Register(service.Events)

	scheduler := cron.Start(database.DB, mail, log)
	defer scheduler.Stop()

	router := gin.Default()
	router.Use(auth.RequestLogger(log))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
			authRoutes.GET("/verify-email", handler.VerifyEmail)
			authRoutes.POST("/resend-verification", auth.AuthMiddleware(), handler.ResendVerificationMail)
			authRoutes.POST("/forgot-password", handler.ForgotPassword)
			authRoutes.POST("/reset-password", handler.ResetPassword)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.PUT("/me/profile", handler.CompleteProfile)
			userRoutes.POST("/me/sports-profile", handler.CreateSportsProfile)
			userRoutes.GET("/me/friend-suggestions", handler.GetFriendSuggestions)
			userRoutes.GET("/:slug", handler.GetUserBySlug)
			userRoutes.POST("/:slug/tour-completed", handler.ToggleTourCompleted)
		}

		// Friendship routes (protected)
		friendRequestRoutes := apiV1.Group("/friend-requests")
		friendRequestRoutes.Use(auth.AuthMiddleware())
		{
			friendRequestRoutes.POST("", handler.SendFriendRequest)
			friendRequestRoutes.GET("", handler.GetFriendRequests)
			friendRequestRoutes.POST("/mark-viewed", handler.MarkFriendRequestsViewed)
			friendRequestRoutes.POST("/:id/accept", handler.AcceptFriendRequest)
			friendRequestRoutes.POST("/:id/reject", handler.RejectFriendRequest)
			friendRequestRoutes.POST("/:id/cancel", handler.CancelFriendRequest)
		}

		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.POST("/unfriend", handler.UnfriendUser)
		}

		// Messaging routes (protected)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.POST("", handler.SendMessage)
			messageRoutes.GET("", handler.GetChat)
			messageRoutes.GET("/latest", handler.GetLatestReceivedMessages)
			messageRoutes.POST("/mark-read", handler.MarkMessagesRead)
			messageRoutes.DELETE("/chat/:id", handler.DeleteChatHistory)
		}

		// Wall routes (protected)
		wallRoutes := apiV1.Group("/wall")
		wallRoutes.Use(auth.AuthMiddleware())
		{
			wallRoutes.GET("", handler.GetWallFeed)
			wallRoutes.GET("/my-posts", handler.GetMyPosts)
			wallRoutes.POST("/posts", handler.CreateWallPost)
			wallRoutes.DELETE("/posts/:id", handler.DeleteWallPost)
			wallRoutes.POST("/posts/:id/like", handler.LikeWallPost)
			wallRoutes.POST("/posts/:id/unlike", handler.UnlikeWallPost)
			wallRoutes.GET("/posts/:id/comments", handler.GetWallPostComments)
			wallRoutes.POST("/posts/:id/comments", handler.CreateWallPostComment)
			wallRoutes.DELETE("/comments/:id", handler.DeleteWallPostComment)
			wallRoutes.POST("/comments/:id/like", handler.LikeComment)
			wallRoutes.POST("/comments/:id/unlike", handler.UnlikeComment)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.POST("/mark-viewed", handler.MarkNotificationsViewed)
		}
	}

	log.Info().Str("addr", config.AppConfig.ServerAddr).Msg("server starting")
	log.Info().Msg("Swagger UI is available at /swagger/index.html")
	if err := router.Run(config.AppConfig.ServerAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
