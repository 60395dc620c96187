package repository

import (
	"context"
	"database/sql"
	"fmt"

	"stylesuggest/internal/suggestion/model"
	"stylesuggest/pkg/logger"
)

const schema = `CREATE TABLE IF NOT EXISTS suggestions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	position    BIGSERIAL
)`

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// Migrate creates the suggestions table when it does not exist yet.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, schema); err != nil {
		logger.Sugar.Errorf("Failed to create suggestions table: %v", err)
		return fmt.Errorf("migrate suggestions: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]model.Suggestion, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, description FROM suggestions ORDER BY position ASC")
	if err != nil {
		logger.Sugar.Errorf("Failed to list suggestions: %v", err)
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := []model.Suggestion{}
	for rows.Next() {
		var s model.Suggestion
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, s model.Suggestion) (model.Suggestion, error) {
	_, err := r.DB.ExecContext(ctx, "INSERT INTO suggestions (id, name, description) VALUES ($1, $2, $3)",
		s.ID, s.Name, s.Description)
	if err != nil {
		logger.Sugar.Errorf("Failed to create suggestion %s: %v", s.ID, err)
		return model.Suggestion{}, fmt.Errorf("create suggestion: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s model.Suggestion) (model.Suggestion, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE suggestions SET name = $1, description = $2 WHERE id = $3",
		s.Name, s.Description, s.ID)
	if err != nil {
		logger.Sugar.Errorf("Failed to update suggestion %s: %v", s.ID, err)
		return model.Suggestion{}, fmt.Errorf("update suggestion: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("update suggestion: %w", err)
	}
	if n == 0 {
		return model.Suggestion{}, ErrNotFound
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM suggestions WHERE id = $1", id); err != nil {
		logger.Sugar.Errorf("Failed to delete suggestion %s: %v", id, err)
		return fmt.Errorf("delete suggestion: %w", err)
	}
	return nil
}
