package router

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitEngine() *gin.Engine {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	engine := gin.Default()

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://quickcart.kadoshsoftwares.com"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	return engine
}

func InitializeRoutes(engine *gin.Engine, h *Handler, jwtSecret []byte) {
	auth := AuthMiddleware(jwtSecret)

	api := engine.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		product := api.Group("/product")
		{
			product.GET("/list", h.ListProducts)
			product.GET("/seller-list", auth, h.ListSellerProducts)
			product.POST("/add", auth, h.AddProduct)
		}

		user := api.Group("/user")
		{
			user.GET("/data", auth, h.GetUserData)
		}

		cart := api.Group("/cart")
		{
			cart.POST("/update", auth, h.UpdateCart)
		}
	}
}
