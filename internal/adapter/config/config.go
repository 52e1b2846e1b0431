package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database   *Database
	HTTP       *HTTP
	Redis      *Redis
	Dispatcher *Dispatcher
	App        *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Redis struct {
	Addr string `env:"REDIS_ADDR"`
}

type Dispatcher struct {
	Interval    time.Duration `env:"OUTBOX_POLL_INTERVAL"`
	BatchSize   int           `env:"OUTBOX_BATCH_SIZE"`
	MaxAttempts int           `env:"OUTBOX_MAX_ATTEMPTS"`
	BackoffBase time.Duration `env:"OUTBOX_BACKOFF_BASE"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var redis Redis
	var dispatcher Dispatcher
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&redis.Addr, "r", `localhost:6379`, "Redis address")
	flag.DurationVar(&dispatcher.Interval, "i", 5*time.Second, "Outbox poll interval")
	flag.IntVar(&dispatcher.BatchSize, "b", 20, "Outbox batch size")
	flag.IntVar(&dispatcher.MaxAttempts, "n", 15, "Outbox max delivery attempts")
	flag.DurationVar(&dispatcher.BackoffBase, "w", time.Second, "Outbox retry backoff base")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&redis)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis config: %w", err)
	}
	err = env.Parse(&dispatcher)
	if err != nil {
		return nil, fmt.Errorf("error parsing dispatcher config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database:   &db,
		HTTP:       &http,
		Redis:      &redis,
		Dispatcher: &dispatcher,
		App:        &app,
	}

	return &config, nil
}
