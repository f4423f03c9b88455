package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clothing-advisor/config"
	v1 "clothing-advisor/internal/controllers/http/v1"
	"clothing-advisor/internal/repositories"
	"clothing-advisor/internal/services/advisor"
	"clothing-advisor/internal/services/conditions"
	"clothing-advisor/pkg/httpserver"
	"clothing-advisor/pkg/observe"
)

// @title Clothing Advisor API
// @version 1.0.0
// @description A weather-based clothing advisor. Extracts a US ZIP code from a chat message,
// @description fetches live conditions, and answers with a rule-based recommendation -
// @description escalating borderline weather to an LLM with a deterministic fallback.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @tag.name Advisor
// @tag.description Clothing recommendation operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logWriters []io.Writer
	logWriters = append(logWriters, os.Stdout)

	var sentryHook *observe.SentryHook
	if cnf.Log.SentryDSN != "" {
		sentryHook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, cnf.Log.SentryDSN, cnf.App.Env != "prod")
		logWriters = append(logWriters, sentryHook)
	}

	l := observe.NewZapLogger(cnf.App.Name, cnf.App.Env, logWriters...)

	app := httpserver.InitFiberServer(cnf.Server, cnf.App.Name)

	repos := repositories.InitConditionsRepositories(cnf, l)

	fetcher := conditions.NewService(repos, cnf.Advisor.FetchTimeoutDuration(), cnf.Advisor.MaxConcurrency, l)

	rules := advisor.NewRuleStrategy()

	var reasoning repositories.ReasoningClient
	if cnf.Reasoning.APIKey != "" {
		reasoning = repositories.NewOpenAIReasoningClient(cnf.Reasoning, l, nil)
	} else {
		l.Warning("no reasoning API key configured; escalation disabled, rule table answers everything")
	}

	delegated := advisor.NewDelegatedStrategy(rules, reasoning, cnf.Reasoning.TimeoutDuration(), l)

	advisorService := advisor.NewAdvisor(fetcher, rules, delegated, l)

	v1.NewRouter(
		app,
		advisorService,
		cnf.Advisor,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	l.Info("application started successfully", map[string]any{
		"port":      cnf.Server.Port,
		"providers": len(repos),
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if sentryHook != nil {
			sentryHook.Flush(5 * time.Second)
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
