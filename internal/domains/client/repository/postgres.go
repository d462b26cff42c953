package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-backend/internal/domains/client/model"
	"library-backend/pkg/database"
)

const pgUniqueViolation = "23505"

type postgresClientRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &postgresClientRepository{pool: pool}
}

func toUUIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid wishlist entry %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresClientRepository) Create(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (
			id, nom, email, password_hash, adresse, active, role, wishlist, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::uuid[], $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		client.ID,
		client.Nom,
		client.Email,
		client.PasswordHash,
		client.Adresse,
		client.Active,
		client.Role,
		pq.Array(toStrings(client.Wishlist)),
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// =====================================================
// READ
// =====================================================

const clientSelect = `
	SELECT id, nom, email, password_hash, adresse, active, role, wishlist::text[], created_at, updated_at
	FROM clients
`

func scanClient(row pgx.Row) (*model.Client, error) {
	c := &model.Client{}
	var wishlist []string

	err := row.Scan(
		&c.ID,
		&c.Nom,
		&c.Email,
		&c.PasswordHash,
		&c.Adresse,
		&c.Active,
		&c.Role,
		pq.Array(&wishlist),
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Wishlist, err = toUUIDs(wishlist)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, clientSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

func (r *postgresClientRepository) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	c, err := scanClient(r.pool.QueryRow(ctx, clientSelect+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}
	return c, nil
}

// =====================================================
// WISHLIST
// =====================================================

// lockWishlist reads the wishlist with a row lock held until the transaction ends.
func lockWishlist(ctx context.Context, tx pgx.Tx, clientID uuid.UUID) ([]uuid.UUID, error) {
	var raw []string
	err := tx.QueryRow(ctx,
		`SELECT wishlist::text[] FROM clients WHERE id = $1 FOR UPDATE`, clientID,
	).Scan(pq.Array(&raw))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to lock wishlist: %w", err)
	}
	return toUUIDs(raw)
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (r *postgresClientRepository) AddToWishlist(ctx context.Context, clientID, livreID uuid.UUID) ([]uuid.UUID, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]uuid.UUID, error) {
		current, err := lockWishlist(ctx, tx, clientID)
		if err != nil {
			return nil, err
		}
		if contains(current, livreID) {
			return nil, model.ErrAlreadyInWishlist
		}

		_, err = tx.Exec(ctx,
			`UPDATE clients SET wishlist = array_append(wishlist, $2::uuid), updated_at = NOW() WHERE id = $1`,
			clientID, livreID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to add to wishlist: %w", err)
		}
		return append(current, livreID), nil
	})
}

func (r *postgresClientRepository) RemoveFromWishlist(ctx context.Context, clientID, livreID uuid.UUID) ([]uuid.UUID, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]uuid.UUID, error) {
		current, err := lockWishlist(ctx, tx, clientID)
		if err != nil {
			return nil, err
		}
		if !contains(current, livreID) {
			return nil, model.ErrNotInWishlist
		}

		_, err = tx.Exec(ctx,
			`UPDATE clients SET wishlist = array_remove(wishlist, $2::uuid), updated_at = NOW() WHERE id = $1`,
			clientID, livreID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to remove from wishlist: %w", err)
		}

		remaining := make([]uuid.UUID, 0, len(current))
		for _, id := range current {
			if id != livreID {
				remaining = append(remaining, id)
			}
		}
		return remaining, nil
	})
}
