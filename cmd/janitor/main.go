package main

import (
	"os"

	"github.com/AulaWare/aula-backend/config"
	"github.com/AulaWare/aula-backend/internal/janitor"
	models "github.com/AulaWare/aula-backend/pkg/db"
	"github.com/AulaWare/aula-backend/pkg/logger"
	"github.com/joho/godotenv"
)

// One-shot full cleaning run, meant for cron or manual use.
func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		logger.Info(".env file not found, proceeding with environment variables")
	}
	config.ForceReload()
	cfg := config.Get()

	db, err := models.InitialiseDatabase(cfg)
	if err != nil {
		logger.Err(err)
		os.Exit(1)
	}

	jan := janitor.NewJanitor(cfg, db, true)
	jan.RunFull()
}
