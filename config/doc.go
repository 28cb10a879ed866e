// Package config provides type-safe environment variable loading with
// caching using Go generics. Each configuration type is loaded once and
// cached for subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct
// fields.
//
// Basic usage:
//
//	import "github.com/GunnarSturla/dispatcher/config"
//
//	type AppConfig struct {
//		TokenPrefix string `env:"DISPATCHER_TOKEN_PREFIX" envDefault:"ID_"`
//		LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	func main() {
//		var cfg AppConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process lifetime:
//
//	var a AppConfig
//	config.Load(&a) // Loads from environment
//
//	var b AppConfig
//	config.Load(&b) // Returns cached value, a == b
//
// Different types are cached independently.
package config
