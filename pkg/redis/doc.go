// Package redis provides connection helpers for the go-redis client used by
// loankit services.
//
// It wraps client construction with retrying Connect, exposes a Healthcheck
// probe, and defines the sentinel errors callers match on. Configuration
// comes from environment variables via the Config struct.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
package redis
