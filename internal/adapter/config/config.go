package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Queue    *Queue
	App      *App
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

type Queue struct {
	Region          string `env:"AWS_REGION"`
	Endpoint        string `env:"AWS_ENDPOINT"`
	QueueURL        string `env:"SQS_QUEUE_URL"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"test"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"test"`
	PollIntervalMS  int    `env:"SQS_POLL_INTERVAL_MS" envDefault:"5000"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var queue Queue
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&queue.QueueURL, "q", "", "SQS queue URL")
	flag.StringVar(&queue.Region, "r", `us-east-1`, "AWS region")
	flag.StringVar(&queue.Endpoint, "e", "", "AWS endpoint override (LocalStack)")
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
	err = env.Parse(&queue)
	if err != nil {
		return nil, fmt.Errorf("error parsing queue config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Queue:    &queue,
		App:      &app,
	}

	return &config, nil
}
