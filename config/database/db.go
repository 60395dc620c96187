package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stylesuggest/pkg/logger"

	_ "github.com/lib/pq"
)

// Connect opens a Postgres pool and pings it, retrying a few times for
// transient DNS or network failures during startup.
func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for i := 0; i < 5; i++ {
		if err = db.PingContext(ctx); err == nil {
			logger.Sugar.Info("Successfully connected to the database")
			return db, nil
		}
		logger.Sugar.Infof("Database connection failed, retrying in 2s... (%v)", err)
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	db.Close()
	return nil, fmt.Errorf("could not connect to database after retries: %w", err)
}
