package main

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/charforge/charforge/internal/clients/catalog"
	"github.com/charforge/charforge/internal/config"
	"github.com/charforge/charforge/internal/engine"
	"github.com/charforge/charforge/internal/events"
	"github.com/charforge/charforge/internal/repositories/characters"
	charservice "github.com/charforge/charforge/internal/services/character"
	"github.com/charforge/charforge/internal/uuid"
)

var rootCmd = &cobra.Command{
	Use:   "charforge",
	Short: "Character progression and sheet engine",
	Long:  "charforge builds characters from the rule catalog: classes, levels, choices, and the derived sheet.",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildService wires the catalog, store, engine, and service from the
// environment configuration
func buildService() (charservice.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(&catalog.Config{FS: os.DirFS(cfg.DataDir)})
	if err != nil {
		return nil, err
	}

	var repo characters.Repository
	switch cfg.Store {
	case config.StoreMemory:
		repo = characters.NewInMemoryRepository()
	default:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		repo = characters.NewRedisRepository(&characters.RedisRepoConfig{Client: client})
	}

	bus := events.NewBus()
	eng, err := engine.New(&engine.Config{Catalog: cat, Bus: bus})
	if err != nil {
		return nil, err
	}

	return charservice.NewService(&charservice.ServiceConfig{
		Repository:    repo,
		Engine:        eng,
		Catalog:       cat,
		Bus:           bus,
		UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
	}), nil
}
