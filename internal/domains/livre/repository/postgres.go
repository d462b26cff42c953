package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/livre/model"
	"library-backend/pkg/cache"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

const livreColumns = `id, isbn, titre, auteur, annee_publication, editeur, langue, description,
	quantite, categorie_id, created_at, updated_at`

var pg = goqu.Dialect("postgres")

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresLivreRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresLivreRepository wires the pool with a read-through cache.
// Pass cache.Nop{} to disable caching.
func NewPostgresLivreRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) LivreRepository {
	if c == nil {
		c = cache.Nop{}
	}
	return &postgresLivreRepository{pool: pool, cache: c, cacheTTL: cacheTTL}
}

func cacheKey(id uuid.UUID) string {
	return "livre:" + id.String()
}

func scanLivre(row pgx.Row) (*model.Livre, error) {
	l := &model.Livre{}
	err := row.Scan(
		&l.ID,
		&l.ISBN,
		&l.Titre,
		&l.Auteur,
		&l.AnneePublication,
		&l.Editeur,
		&l.Langue,
		&l.Description,
		&l.Quantite,
		&l.CategorieID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return model.ErrISBNAlreadyExists
		case pgCheckViolation:
			return model.ErrInvalidQuantite
		}
	}
	return err
}

// invalidate drops the cached copy. A failure only costs a stale read until TTL.
func (r *postgresLivreRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("livre_id", id.String()).Msg("failed to invalidate livre cache")
	}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresLivreRepository) Create(ctx context.Context, livre *model.Livre) error {
	query := `
		INSERT INTO livres (
			id, isbn, titre, auteur, annee_publication, editeur, langue, description,
			quantite, categorie_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		livre.ID,
		livre.ISBN,
		livre.Titre,
		livre.Auteur,
		livre.AnneePublication,
		livre.Editeur,
		livre.Langue,
		livre.Description,
		livre.Quantite,
		livre.CategorieID,
		livre.CreatedAt,
		livre.UpdatedAt,
	)
	if err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create livre: %w", err)
	}

	return nil
}

// =====================================================
// GET BY ID (cache-aside)
// =====================================================

func (r *postgresLivreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Livre, error) {
	var cached model.Livre
	found, err := r.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		log.Warn().Err(err).Str("livre_id", id.String()).Msg("livre cache read failed")
	} else if found {
		return &cached, nil
	}

	query := `SELECT ` + livreColumns + ` FROM livres WHERE id = $1`

	livre, err := scanLivre(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLivreNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get livre: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey(id), livre, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("livre_id", id.String()).Msg("livre cache write failed")
	}

	return livre, nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresLivreRepository) List(ctx context.Context, req model.ListLivresRequest) ([]model.Livre, int, error) {
	req.Normalize()

	ds := pg.From("livres")
	if req.Q != "" {
		pattern := "%" + req.Q + "%"
		ds = ds.Where(goqu.Or(
			goqu.C("titre").ILike(pattern),
			goqu.C("auteur").ILike(pattern),
		))
	}
	if req.CategorieID != nil {
		ds = ds.Where(goqu.C("categorie_id").Eq(req.CategorieID.String()))
	}

	countSQL, countArgs, err := ds.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count livres: %w", err)
	}

	listSQL, args, err := ds.
		Select(goqu.L(livreColumns)).
		Order(goqu.C("titre").Asc(), goqu.C("id").Asc()).
		Limit(uint(req.Limit)).
		Offset(uint(req.Offset())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list livres: %w", err)
	}
	defer rows.Close()

	livres := make([]model.Livre, 0, req.Limit)
	for rows.Next() {
		l, err := scanLivre(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan livre: %w", err)
		}
		livres = append(livres, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return livres, total, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresLivreRepository) Update(ctx context.Context, livre *model.Livre) error {
	query := `
		UPDATE livres SET
			isbn = $2,
			titre = $3,
			auteur = $4,
			annee_publication = $5,
			editeur = $6,
			langue = $7,
			description = $8,
			quantite = $9,
			categorie_id = $10,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		livre.ID,
		livre.ISBN,
		livre.Titre,
		livre.Auteur,
		livre.AnneePublication,
		livre.Editeur,
		livre.Langue,
		livre.Description,
		livre.Quantite,
		livre.CategorieID,
	).Scan(&livre.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewLivreNotFoundError(livre.ID)
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update livre: %w", err)
	}

	r.invalidate(ctx, livre.ID)
	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresLivreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM livres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete livre: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewLivreNotFoundError(id)
	}

	r.invalidate(ctx, id)
	return nil
}

// =====================================================
// STOCK
// =====================================================

func (r *postgresLivreRepository) DecrementQuantite(ctx context.Context, id uuid.UUID) (*model.Livre, error) {
	query := `
		UPDATE livres
		SET quantite = quantite - 1, updated_at = NOW()
		WHERE id = $1 AND quantite > 0
		RETURNING ` + livreColumns

	livre, err := scanLivre(r.pool.QueryRow(ctx, query, id))
	if err == nil {
		r.invalidate(ctx, id)
		return livre, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to decrement quantite: %w", err)
	}

	// No row matched: tell a missing book apart from an empty shelf.
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM livres WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check livre: %w", err)
	}
	if !exists {
		return nil, model.NewLivreNotFoundError(id)
	}
	return nil, model.NewLivreIndisponibleError(id)
}

func (r *postgresLivreRepository) IncrementQuantite(ctx context.Context, id uuid.UUID) (*model.Livre, error) {
	query := `
		UPDATE livres
		SET quantite = quantite + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + livreColumns

	livre, err := scanLivre(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLivreNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to increment quantite: %w", err)
	}

	r.invalidate(ctx, id)
	return livre, nil
}
