package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"risk-tracker/internal/config"
	"risk-tracker/internal/database"
	"risk-tracker/internal/logger"
	"risk-tracker/internal/seed"
)

func main() {
	fixturePath := flag.String("file", "seed.yaml", "YAML fixture (see cmd/seed/seed.example.yaml) with turns, rolls, territories, teams and past turns")
	flag.Parse()

	if err := run(*fixturePath); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(fixturePath string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	config.LogLoaded(cfg, log)

	fixture, err := seed.LoadFile(fixturePath)
	if err != nil {
		return err
	}

	sqlDB, err := database.New(cfg, log)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	queries := database.NewQueries(sqlDB, cfg)
	if _, err := seed.Apply(context.Background(), sqlDB, queries, fixture, log); err != nil {
		return err
	}
	return nil
}
