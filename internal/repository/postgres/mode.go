package postgres

import (
	"context"
	"database/sql"
	"errors"

	"smartzenbot/internal/domain"
)

// ModeRepo implements repository.ModeRepository on top of the user_modes table
type ModeRepo struct {
	db *sql.DB
}

// NewModeRepo creates a new mode repository
func NewModeRepo(db *sql.DB) *ModeRepo {
	return &ModeRepo{db: db}
}

// Get returns user's current mode
func (r *ModeRepo) Get(ctx context.Context, userID int64) (domain.UserMode, error) {
	var mode string
	query := `SELECT mode FROM user_modes WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&mode)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ModeIdle, nil
	}
	if err != nil {
		return domain.ModeIdle, err
	}

	return domain.ParseUserMode(mode), nil
}

// Set stores user's mode. Idle is stored as absence.
func (r *ModeRepo) Set(ctx context.Context, userID int64, mode domain.UserMode) error {
	if mode == domain.ModeIdle {
		return r.Clear(ctx, userID)
	}

	query := `
		INSERT INTO user_modes (user_id, mode, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET mode = EXCLUDED.mode, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, string(mode))
	return err
}

// Clear resets user to idle
func (r *ModeRepo) Clear(ctx context.Context, userID int64) error {
	query := `DELETE FROM user_modes WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// Take deletes user's row and returns the mode it held
func (r *ModeRepo) Take(ctx context.Context, userID int64) (domain.UserMode, error) {
	var mode string
	query := `DELETE FROM user_modes WHERE user_id = $1 RETURNING mode`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&mode)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ModeIdle, nil
	}
	if err != nil {
		return domain.ModeIdle, err
	}

	return domain.ParseUserMode(mode), nil
}
