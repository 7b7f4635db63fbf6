package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/game/combat"
	"github.com/udisondev/arcana/internal/session"
)

// foreignKeyViolation is the SQLSTATE of an insert referencing a missing row.
const foreignKeyViolation = "23503"

// PlayerRepository is the PostgreSQL Player Store.
// It owns persisted mana and learned skill levels; combat state never touches it.
type PlayerRepository struct {
	db *pgxpool.Pool
}

var _ session.ProfileStore = (*PlayerRepository)(nil)

// NewPlayerRepository creates a new PlayerRepository.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// CreatePlayer inserts a player with its starting profile in one transaction.
func (r *PlayerRepository) CreatePlayer(ctx context.Context, playerID int64, name string, p combat.Profile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx,
		`INSERT INTO players (player_id, name, mana, max_mana) VALUES ($1, $2, $3, $4)`,
		playerID, name, p.Mana, p.MaxMana,
	); err != nil {
		return fmt.Errorf("inserting player %d: %w", playerID, err)
	}

	batch := &pgx.Batch{}
	for skill, level := range p.Skills {
		batch.Queue(
			`INSERT INTO player_skills (player_id, skill_id, skill_level) VALUES ($1, $2, $3)`,
			playerID, string(skill), level,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting skills of player %d: %w", playerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing player %d: %w", playerID, err)
	}
	return nil
}

// LoadProfile loads mana and learned skills of a player.
// Returns session.ErrPlayerNotFound if the player does not exist.
func (r *PlayerRepository) LoadProfile(ctx context.Context, playerID int64) (combat.Profile, error) {
	var p combat.Profile
	err := r.db.QueryRow(ctx,
		`SELECT mana, max_mana FROM players WHERE player_id = $1`, playerID,
	).Scan(&p.Mana, &p.MaxMana)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return combat.Profile{}, fmt.Errorf("player %d: %w", playerID, session.ErrPlayerNotFound)
		}
		return combat.Profile{}, fmt.Errorf("querying player %d: %w", playerID, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT skill_id, skill_level FROM player_skills WHERE player_id = $1 ORDER BY skill_id`, playerID)
	if err != nil {
		return combat.Profile{}, fmt.Errorf("querying skills of player %d: %w", playerID, err)
	}
	defer rows.Close()

	p.Skills = make(map[data.SkillID]int)
	for rows.Next() {
		var (
			skill string
			level int
		)
		if err := rows.Scan(&skill, &level); err != nil {
			return combat.Profile{}, fmt.Errorf("scanning skill row: %w", err)
		}
		p.Skills[data.SkillID(skill)] = level
	}
	if err := rows.Err(); err != nil {
		return combat.Profile{}, fmt.Errorf("iterating skill rows: %w", err)
	}

	return p, nil
}

// SaveMana stores the current and max mana of a player.
func (r *PlayerRepository) SaveMana(ctx context.Context, playerID int64, mana combat.ManaState) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE players SET mana = $2, max_mana = $3, updated_at = now() WHERE player_id = $1`,
		playerID, mana.Current, mana.Max,
	)
	if err != nil {
		return fmt.Errorf("updating mana of player %d: %w", playerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %d: %w", playerID, session.ErrPlayerNotFound)
	}
	return nil
}

// SaveSkillLevel upserts a learned skill level. Level 0 removes the skill.
func (r *PlayerRepository) SaveSkillLevel(ctx context.Context, playerID int64, skill data.SkillID, level int) error {
	if level <= 0 {
		if _, err := r.db.Exec(ctx,
			`DELETE FROM player_skills WHERE player_id = $1 AND skill_id = $2`, playerID, string(skill),
		); err != nil {
			return fmt.Errorf("deleting skill %s of player %d: %w", skill, playerID, err)
		}
		return nil
	}

	query := `
		INSERT INTO player_skills (player_id, skill_id, skill_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, skill_id)
		DO UPDATE SET skill_level = $3
	`
	if _, err := r.db.Exec(ctx, query, playerID, string(skill), level); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("player %d: %w", playerID, session.ErrPlayerNotFound)
		}
		return fmt.Errorf("upserting skill %s of player %d: %w", skill, playerID, err)
	}
	return nil
}
