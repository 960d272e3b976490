package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"product-api/internal/config"
	"product-api/internal/store"
)

type seedProduct struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Price    float64 `yaml:"price"`
	InStock  bool    `yaml:"instock"`
}

func loadFixture(path string) ([]seedProduct, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var products []seedProduct
	if err := yaml.Unmarshal(file, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func main() {
	fixture := flag.String("fixture", "seed/products.yaml", "path to the product fixture file")
	drop := flag.Bool("drop", false, "drop existing tables before creating the schema")
	flag.Parse()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()
	st, err := store.NewPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer st.Close()

	if *drop {
		if err := st.DropSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to drop schema")
		}
		log.Info().Msg("Existing tables dropped")
	}
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}
	log.Info().Msg("Schema ready")

	products, err := loadFixture(*fixture)
	if err != nil {
		log.Fatal().Err(err).Str("fixture", *fixture).Msg("Failed to load fixture")
	}

	for _, p := range products {
		if _, err := st.CreateProduct(ctx, p.Name, p.Category, p.Price, p.InStock); err != nil {
			log.Fatal().Err(err).Str("name", p.Name).Msg("Failed to seed product")
		}
	}
	log.Info().Int("count", len(products)).Msg("Products seeded")
}
