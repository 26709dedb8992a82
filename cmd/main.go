package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/swe645/student-survey-api/config"
	"github.com/swe645/student-survey-api/middleware"
	"github.com/swe645/student-survey-api/routes"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Connect + migrate before accepting any traffic. InitDB retries with
	// backoff while the database comes up; giving up is fatal.
	db, err := config.InitDB(settings)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(settings)))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Fatalf("failed to set trusted proxies: %v", err)
	}

	routes.SetupRoutes(r, db)

	log.Printf("Server listening on port %s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// corsConfig is either a fixed allow-list or, when no origins are configured,
// wide open. Never both.
func corsConfig(settings *config.Settings) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(settings.CORSOrigins) > 0 {
		cfg.AllowOrigins = settings.CORSOrigins
	} else {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cfg
}
