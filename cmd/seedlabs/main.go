// Command seedlabs creates the predefined laboratories. Safe to run more than
// once: labs whose code already exists are skipped.
package main

import (
	"context"
	"errors"

	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
	"github.com/jhoicas/labstock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/labstock-api/pkg/config"
	"github.com/jhoicas/labstock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	labRepo := postgres.NewLabRepository(pool)

	created, skipped := 0, 0
	for _, lab := range entity.PredefinedLabs {
		l := lab
		err := labRepo.Create(&l)
		switch {
		case err == nil:
			created++
			log.Info().Str("code", l.Code).Str("name", l.Name).Msg("lab created")
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
			log.Debug().Str("code", l.Code).Msg("lab already exists")
		default:
			log.Fatal().Err(err).Str("code", l.Code).Msg("seed lab")
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("lab seeding finished")
}
