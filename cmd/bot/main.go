package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/budgetmind/budget_bot/internal/bot/handlers"
	"github.com/budgetmind/budget_bot/internal/config"
	"github.com/budgetmind/budget_bot/internal/learning"
	"github.com/budgetmind/budget_bot/internal/logger"
	"github.com/budgetmind/budget_bot/internal/parser"
	"github.com/budgetmind/budget_bot/internal/repository"
	"github.com/budgetmind/budget_bot/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %s", err.Error())
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogToFile); err != nil {
		log.Fatalf("failed to init logger: %s", err.Error())
	}
	defer logger.Close()

	db, err := repository.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open db", "path", cfg.DBPath, "error", err)
	}

	if err := repository.InitDB(db); err != nil {
		logger.Fatal("failed to init db schema", "error", err)
	}

	repo := repository.NewRepository(db)

	var store learning.Store
	switch cfg.LearningStore {
	case "file":
		store = learning.NewFileStore(cfg.LearningFile)
	default:
		store = learning.NewSQLiteStore(repo)
	}
	learnSvc := learning.NewService(store, cfg.FuzzyUserThreshold, cfg.FuzzyGlobalThreshold)

	p := parser.NewParser(learnSvc)

	botInstance, err := handlers.NewBot(cfg.TelegramToken, repo, p, learnSvc)
	if err != nil {
		logger.Fatal("failed to create bot", "error", err)
	}

	sched := scheduler.New(repo, botInstance)
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	go botInstance.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down")
}
