package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig indicates Load was called with a nil pointer.
var ErrNilConfig = errors.New("config: nil config pointer")

var (
	cache   sync.Map // reflect.Type -> loaded config value
	envOnce sync.Once
)

// Load parses environment variables into cfg. The first call for each
// concrete type reads the environment; subsequent calls for the same type
// copy the cached value, so every caller observes identical configuration.
//
// A .env file in the working directory is loaded once per process before
// the first parse. A missing file is not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	envOnce.Do(func() {
		// Missing .env is normal outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	// LoadOrStore keeps the winner of a concurrent first load so both
	// callers end up with the same value.
	actual, _ := cache.LoadOrStore(key, *cfg)
	*cfg = actual.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use in startup wiring where
// a missing required variable should stop the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
