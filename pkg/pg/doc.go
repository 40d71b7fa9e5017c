// Package pg bootstraps the PostgreSQL layer for loankit services using the
// pgx/v5 driver.
//
// It offers a small set of cooperating helpers: a Config struct populated
// from environment variables, Connect which opens a *pgxpool.Pool with
// retries, Migrate which applies goose schema migrations before the service
// starts serving, and Healthcheck for liveness probes. Error classifiers
// (IsNotFoundError, IsDuplicateKeyError) keep pgx error handling out of
// business logic.
//
// # Usage
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    // terminate: the service cannot run without its store
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//	    // terminate: schema must be current before serving
//	}
package pg
