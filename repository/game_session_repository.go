package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"minicasino/database"
	"minicasino/models"
)

// GameSessionRepository implements the GameSessionRepository interface
type GameSessionRepository struct {
	q queryable
}

// NewGameSessionRepository creates a new game session repository
func NewGameSessionRepository(db *database.DB) *GameSessionRepository {
	return &GameSessionRepository{q: db.Pool}
}

// newGameSessionRepositoryWithTx creates a new game session repository bound to a transaction
func newGameSessionRepositoryWithTx(tx queryable) *GameSessionRepository {
	return &GameSessionRepository{q: tx}
}

// Create creates a new game session record
func (r *GameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	query := `
		INSERT INTO game_sessions (
			account_id, game_type, bet_amount, win_amount, net_result, game_data
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		session.AccountID,
		session.GameType,
		session.BetAmount,
		session.WinAmount,
		session.NetResult,
		session.GameData,
	).Scan(&session.ID, &session.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create game session for account %d: %w", session.AccountID, err)
	}

	return nil
}

// GetByID retrieves a game session by its ID
func (r *GameSessionRepository) GetByID(ctx context.Context, id int64) (*models.GameSession, error) {
	query := `
		SELECT id, account_id, game_type, bet_amount, win_amount, net_result, game_data, created_at
		FROM game_sessions
		WHERE id = $1
	`

	var session models.GameSession
	err := r.q.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.AccountID,
		&session.GameType,
		&session.BetAmount,
		&session.WinAmount,
		&session.NetResult,
		&session.GameData,
		&session.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game session %d: %w", id, err)
	}

	return &session, nil
}

// ListByAccount returns game sessions for an account, newest first, along
// with the total count for pagination
func (r *GameSessionRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*models.GameSession, int64, error) {
	countQuery := `SELECT COUNT(*) FROM game_sessions WHERE account_id = $1`

	var total int64
	if err := r.q.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count game sessions for account %d: %w", accountID, err)
	}

	query := `
		SELECT id, account_id, game_type, bet_amount, win_amount, net_result, game_data, created_at
		FROM game_sessions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list game sessions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var sessions []*models.GameSession
	for rows.Next() {
		var s models.GameSession
		err := rows.Scan(
			&s.ID,
			&s.AccountID,
			&s.GameType,
			&s.BetAmount,
			&s.WinAmount,
			&s.NetResult,
			&s.GameData,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan game session: %w", err)
		}
		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate game sessions: %w", err)
	}

	return sessions, total, nil
}
