package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/emprunt/model"
)

const empruntColumns = `id, client_id, livre_id, date_emprunt, date_retour_prevu, date_retour_effectif,
	statut, created_at, updated_at`

type postgresEmpruntRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEmpruntRepository(pool *pgxpool.Pool) EmpruntRepository {
	return &postgresEmpruntRepository{pool: pool}
}

func scanEmprunt(row pgx.Row) (*model.Emprunt, error) {
	e := &model.Emprunt{}
	var statut string
	err := row.Scan(
		&e.ID,
		&e.ClientID,
		&e.LivreID,
		&e.DateEmprunt,
		&e.DateRetourPrevu,
		&e.DateRetourEffectif,
		&statut,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Statut = model.Statut(statut)
	return e, nil
}

func (r *postgresEmpruntRepository) list(ctx context.Context, query string, args ...any) ([]model.Emprunt, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list emprunts: %w", err)
	}
	defer rows.Close()

	emprunts := make([]model.Emprunt, 0)
	for rows.Next() {
		e, err := scanEmprunt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan emprunt: %w", err)
		}
		emprunts = append(emprunts, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return emprunts, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresEmpruntRepository) Create(ctx context.Context, e *model.Emprunt) error {
	query := `
		INSERT INTO emprunts (` + empruntColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.ClientID,
		e.LivreID,
		e.DateEmprunt,
		e.DateRetourPrevu,
		e.DateRetourEffectif,
		string(e.Statut),
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create emprunt: %w", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresEmpruntRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Emprunt, error) {
	e, err := scanEmprunt(r.pool.QueryRow(ctx, `SELECT `+empruntColumns+` FROM emprunts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEmpruntNotFound
		}
		return nil, fmt.Errorf("failed to get emprunt: %w", err)
	}
	return e, nil
}

func (r *postgresEmpruntRepository) ListAll(ctx context.Context) ([]model.Emprunt, error) {
	return r.list(ctx, `SELECT `+empruntColumns+` FROM emprunts ORDER BY date_emprunt DESC, id`)
}

func (r *postgresEmpruntRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.Emprunt, error) {
	return r.list(ctx,
		`SELECT `+empruntColumns+` FROM emprunts WHERE client_id = $1 ORDER BY date_emprunt DESC, id`,
		clientID,
	)
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresEmpruntRepository) Update(ctx context.Context, e *model.Emprunt) error {
	query := `
		UPDATE emprunts SET
			date_retour_prevu = $2,
			date_retour_effectif = $3,
			statut = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		e.ID,
		e.DateRetourPrevu,
		e.DateRetourEffectif,
		string(e.Statut),
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrEmpruntNotFound
		}
		return fmt.Errorf("failed to update emprunt: %w", err)
	}
	return nil
}

func (r *postgresEmpruntRepository) MarkReturned(ctx context.Context, id uuid.UUID, at time.Time) (*model.Emprunt, error) {
	query := `
		UPDATE emprunts
		SET statut = $2, date_retour_effectif = $3, updated_at = NOW()
		WHERE id = $1 AND statut <> $2
		RETURNING ` + empruntColumns

	e, err := scanEmprunt(r.pool.QueryRow(ctx, query, id, string(model.StatutRetourne), at))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to mark emprunt returned: %w", err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, model.ErrAlreadyReturned
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresEmpruntRepository) Delete(ctx context.Context, id uuid.UUID) (*model.Emprunt, error) {
	e, err := scanEmprunt(r.pool.QueryRow(ctx, `DELETE FROM emprunts WHERE id = $1 RETURNING `+empruntColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEmpruntNotFound
		}
		return nil, fmt.Errorf("failed to delete emprunt: %w", err)
	}
	return e, nil
}
