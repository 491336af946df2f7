package repository

import (
	"github.com/chestno/chestno/internal/domain/statuslevel"
	"github.com/chestno/chestno/internal/domain/subscription"
	"github.com/chestno/chestno/internal/logger"
	"github.com/chestno/chestno/internal/postgres"
	postgresRepo "github.com/chestno/chestno/internal/repository/postgres"
)

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(db, logger)
}

func NewStatusLevelGrantRepository(db *postgres.DB, logger *logger.Logger) statuslevel.Repository {
	return postgresRepo.NewStatusLevelGrantRepository(db, logger)
}

func NewStatusHistoryRepository(db *postgres.DB, logger *logger.Logger) statuslevel.HistoryRepository {
	return postgresRepo.NewStatusHistoryRepository(db, logger)
}
