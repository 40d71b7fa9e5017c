// Package logger builds configured log/slog loggers for loankit services.
//
// The factory applies functional options over production-safe defaults (JSON
// output at INFO level) and provides attribute helpers with the key names the
// rest of the toolkit logs under, so transition records, entities and actors
// are queryable consistently across services.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithTextFormat(),
//	    logger.WithAttr(slog.String("service", "servicing")),
//	)
//	log.Info("transition applied", logger.EntityID(contractID), logger.Event("PAY_OFF"))
package logger
