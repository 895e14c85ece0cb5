package main

import (
	"log"

	"github.com/adhub/adhub/internal/api/handlers"
	"github.com/adhub/adhub/internal/api/middleware"
	"github.com/adhub/adhub/internal/api/routes"
	"github.com/adhub/adhub/internal/ldap"
	"github.com/adhub/adhub/internal/samba"
	"github.com/adhub/adhub/internal/security"
	"github.com/adhub/adhub/internal/tools"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Port          string `envconfig:"PORT" default:":8000"`
	FrontendFQDN  string `envconfig:"FRONTEND_FQDN" default:"http://localhost:5173"`
	DatabaseOptIn bool   `envconfig:"ENABLE_DATABASE" default:"false"`
}

// init the environment
func init() {
	_ = godotenv.Load()
}

func main() {
	gin.SetMode(gin.ReleaseMode)

	// Load and parse configuration from environment variables
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Failed to process environment configuration: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(config.FrontendFQDN))
	handlers.RegisterValidators()

	// Directory management service
	sambaConfig, err := samba.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to process Samba configuration: %v", err)
	}
	runner := samba.NewExecRunner()
	sambaService := samba.NewSambaService(runner, sambaConfig)

	// LDAP authentication bridge
	ldapService, err := ldap.NewService(sambaService)
	if err != nil {
		log.Fatalf("Failed to initialize LDAP bridge: %v", err)
	}

	// Session token manager
	securityConfig, err := security.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to process security configuration: %v", err)
	}
	tokens := security.NewManager(securityConfig)

	// Provisioning history is optional; the API runs without a database.
	var dbClient *tools.DBClient
	var history *tools.HistoryStore
	if config.DatabaseOptIn {
		dbClient, err = tools.NewDBClient()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		history = tools.NewHistoryStore(dbClient)
		if err := history.EnsureSchema(); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(ldapService, tokens)
	sambaHandler := handlers.NewSambaHandler(sambaService, ldapService, tokens)
	setupHandler := handlers.NewSetupHandler(runner, sambaConfig, sambaService, history)
	healthHandler := handlers.HealthCheckHandler(setupHandler, dbClient)

	routes.RegisterRoutes(r, tokens, authHandler, sambaHandler, setupHandler, healthHandler)
	r.Run(config.Port)
}
