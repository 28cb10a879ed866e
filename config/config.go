package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache      sync.Map // reflect.Type -> parsed config value
	loadDotEnv sync.Once
)

// Load parses environment variables into cfg. Each configuration type is
// parsed once per process; later calls for the same type return the
// cached value. A .env file in the working directory is loaded (if
// present) before the first parse.
func Load[T any](cfg *T) error {
	loadDotEnv.Do(func() {
		// Missing .env is fine; real environment still applies.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", key, err)
	}

	v, _ := cache.LoadOrStore(key, *cfg)
	*cfg = v.(T)

	return nil
}

// MustLoad is Load that panics on failure. Useful during startup where a
// missing required variable should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
