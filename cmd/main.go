package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/kadoshsoftwares/quickcart-api/internal/router"
	"github.com/kadoshsoftwares/quickcart-api/pkg/global"
	"github.com/kadoshsoftwares/quickcart-api/pkg/mongo"
	"github.com/kadoshsoftwares/quickcart-api/pkg/redis"
	"github.com/kadoshsoftwares/quickcart-api/pkg/storage"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	db := mongo.New(global.GetMongoURI(), global.GetDatabaseName())
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(context.Background())
	log.Println("Connected to MongoDB successfully")

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	uploader, err := storage.NewCloudinaryUploader(
		global.GetEnvOrDefault("CLOUDINARY_CLOUD_NAME", ""),
		global.GetEnvOrDefault("CLOUDINARY_API_KEY", ""),
		global.GetEnvOrDefault("CLOUDINARY_API_SECRET", ""),
		global.GetEnvOrDefault("CLOUDINARY_FOLDER", "quickcart/products"),
	)
	if err != nil {
		log.Fatalf("Failed to configure Cloudinary: %v", err)
	}

	cache := redis.New(
		global.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		global.GetEnvOrDefault("REDIS_PASSWORD", ""),
	)
	defer cache.Close()

	handler := router.NewHandler(
		mongo.NewProductStore(db),
		mongo.NewUserStore(db),
		uploader,
		cache,
		db,
	)

	engine := router.InitEngine()
	router.InitializeRoutes(engine, handler, global.GetJWTSecret())

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
