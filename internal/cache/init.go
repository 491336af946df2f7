package cache

import (
	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/logger"
)

// Initialize builds the cache from the already loaded configuration
func Initialize(cfg *config.Configuration, log *logger.Logger) *InMemoryCache {
	log.Info("Initializing cache system")
	return NewInMemoryCache(cfg)
}
