package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"mingle/backend/internal/auth"
	"mingle/backend/internal/config"
	"mingle/backend/internal/database"
	"mingle/backend/internal/handler"
	"mingle/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	// Swagger imports
	_ "mingle/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Mingle API
// @version         1.0
// @description     This is the API for the Mingle service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Services; the db handle is created once here and injected everywhere.
	blocks := service.NewBlockService(db)
	relations := service.NewRelationService(db)
	requests := service.NewRequestService(db, relations)
	groups := service.NewGroupService(db)
	posts := service.NewPostService(db, groups, blocks)
	feeds := service.NewFeedService(db, relations, blocks)

	authHandler := &handler.AuthHandler{DB: db, Groups: groups, JWTSecret: cfg.JWTSecret}
	userHandler := &handler.UserHandler{DB: db}
	relationHandler := &handler.RelationHandler{Requests: requests, Relations: relations, Blocks: blocks}
	groupHandler := &handler.GroupHandler{Groups: groups}
	postHandler := &handler.PostHandler{Posts: posts}
	feedHandler := &handler.FeedHandler{Feeds: feeds}

	router := gin.Default()

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
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		// Public square feed (anonymous; a token is honored when present)
		apiV1.GET("/square", auth.OptionalMiddleware(cfg.JWTSecret), feedHandler.PublicSquareFeed)

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.Middleware(cfg.JWTSecret))
		{
			userRoutes.GET("", userHandler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", userHandler.GetMe)
			userRoutes.GET("/me/relations", relationHandler.GetRelations)
			userRoutes.GET("/:id", userHandler.GetUserByID)

			// Block routes
			userRoutes.PUT("/:id/block", relationHandler.BlockUser)
			userRoutes.DELETE("/:id/block", relationHandler.UnblockUser)
		}

		// Connection request routes (protected)
		requestRoutes := apiV1.Group("/requests")
		requestRoutes.Use(auth.Middleware(cfg.JWTSecret))
		{
			requestRoutes.POST("", relationHandler.SubmitRequest)
			requestRoutes.GET("/incoming", relationHandler.ListIncomingRequests)
			requestRoutes.POST("/:id/accept", relationHandler.AcceptRequest)
			requestRoutes.POST("/:id/decline", relationHandler.DeclineRequest)
		}

		// Group routes (protected)
		groupRoutes := apiV1.Group("/groups")
		groupRoutes.Use(auth.Middleware(cfg.JWTSecret))
		{
			groupRoutes.POST("", groupHandler.CreateGroup)
			groupRoutes.GET("/:id", groupHandler.GetRoom)
			groupRoutes.POST("/:id/join", groupHandler.JoinGroup)
			groupRoutes.POST("/:id/members", groupHandler.AddMember)
			groupRoutes.GET("/:id/posts", groupHandler.ListGroupPosts)
		}

		// Post and feed routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.Middleware(cfg.JWTSecret))
		{
			postRoutes.POST("", postHandler.CreatePost)
			postRoutes.GET("/:id", postHandler.GetPost)
		}
		apiV1.GET("/feed", auth.Middleware(cfg.JWTSecret), feedHandler.PersonalFeed)

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.Middleware(cfg.JWTSecret), auth.AdminMiddleware(db))
		{
			adminRoutes.POST("/users/:id/ban", userHandler.BanUser)
			adminRoutes.POST("/users/:id/unban", userHandler.UnbanUser)
		}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	fmt.Printf("Server is running on %s\n", cfg.ListenAddr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, corsHandler))
}
