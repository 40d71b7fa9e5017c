// Package config loads typed configuration structs from environment
// variables.
//
// Configuration is declared as plain structs with `env` field tags understood
// by github.com/caarlos0/env. A .env file in the working directory is loaded
// once per process via godotenv before the first parse, which keeps local
// development friction-free without affecting deployed environments where the
// file is simply absent.
//
// # Usage
//
//	type PortalConfig struct {
//	    ServiceName string `env:"SERVICE_NAME" envDefault:"loankit"`
//	    Environment string `env:"ENVIRONMENT" envDefault:"development"`
//	}
//
//	var cfg PortalConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics instead of returning an error, for configuration the
// application cannot start without.
package config
