package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/princinho/accountsapi/auth"
	"github.com/princinho/accountsapi/controllers"
	"github.com/princinho/accountsapi/database"
	"github.com/princinho/accountsapi/middleware"
	"github.com/princinho/accountsapi/models"
	"github.com/princinho/accountsapi/store"
	"github.com/princinho/accountsapi/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	ctx := context.Background()
	users := store.NewMongoUserStore(database.OpenCollection("users"))
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	hasher := utils.NewBcryptHasher()
	if err := utils.SeedAdminUser(ctx, users, hasher); err != nil {
		log.Fatal(err)
	}

	tokens := auth.NewTokenService([]byte(os.Getenv("JWT_SECRET")), utils.SessionTTL())
	gate := auth.NewGate(tokens)
	resets := auth.NewResetManager(users, hasher, utils.ResetTTL())
	avatarValidator := utils.NewImageValidator()

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", controllers.Register(users, hasher))
		authRoutes.POST("/login", controllers.Login(users, hasher, tokens))
		authRoutes.GET("/logout", controllers.Logout())
		authRoutes.POST("/forgot-password", controllers.ForgotPassword(users, resets))
		authRoutes.POST("/reset-password", controllers.ResetPassword(resets))
	}

	userRoutes := api.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(gate, models.RoleAdmin))
	{
		userRoutes.GET("/all", controllers.GetUsers(users))
		userRoutes.POST("/add", controllers.CreateUser(users, hasher))
		userRoutes.PUT("/update/:id", controllers.UpdateUser(users))
		userRoutes.DELETE("/delete/:id", controllers.DeleteUser(users))
		userRoutes.POST("/:id/avatar", controllers.UploadAvatar(users, avatarValidator))
	}

	// Start server on port 8080 (default)
	r.Run()
}
