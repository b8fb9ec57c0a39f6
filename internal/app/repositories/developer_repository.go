package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
)

// DeveloperStore handles the about-page developer entries.
type DeveloperStore interface {
	GetAll(ctx context.Context) ([]models.Developer, error)
	Create(ctx context.Context, dev *models.Developer) (*models.Developer, error)
}

// MemoryDevelopers is the in-memory DeveloperStore.
type MemoryDevelopers struct {
	mu      sync.RWMutex
	entries []models.Developer
	nextID  int64
}

// NewMemoryDevelopers creates an empty in-memory developer store.
func NewMemoryDevelopers() *MemoryDevelopers {
	return &MemoryDevelopers{nextID: 1}
}

// GetAll returns every developer entry in insertion order.
func (s *MemoryDevelopers) GetAll(ctx context.Context) ([]models.Developer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Developer, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Create stores a developer entry with an assigned id.
func (s *MemoryDevelopers) Create(ctx context.Context, dev *models.Developer) (*models.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := *dev
	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)
	return &entry, nil
}

// PostgresDevelopers is the Postgres-backed DeveloperStore.
type PostgresDevelopers struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresDevelopers creates a new Postgres-backed developer store.
func NewPostgresDevelopers(db *pgxpool.Pool) *PostgresDevelopers {
	return &PostgresDevelopers{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns every developer entry.
func (s *PostgresDevelopers) GetAll(ctx context.Context) ([]models.Developer, error) {
	sql, args, err := s.sb.Select("id", "name", "role", "github_profile", "bio", "image_url", "linkedin_profile").
		From("developers").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get developers query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving developers: %w", err)
	}
	defer rows.Close()

	var out []models.Developer
	for rows.Next() {
		var dev models.Developer
		if err := rows.Scan(&dev.ID, &dev.Name, &dev.Role, &dev.GithubProfile, &dev.Bio, &dev.ImageURL, &dev.LinkedinProfile); err != nil {
			return nil, fmt.Errorf("error scanning developer row: %w", err)
		}
		out = append(out, dev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating developer rows: %w", err)
	}
	return out, nil
}

// Create stores a developer entry with an assigned id.
func (s *PostgresDevelopers) Create(ctx context.Context, dev *models.Developer) (*models.Developer, error) {
	sql, args, err := s.sb.Insert("developers").
		Columns("name", "role", "github_profile", "bio", "image_url", "linkedin_profile").
		Values(dev.Name, dev.Role, dev.GithubProfile, dev.Bio, dev.ImageURL, dev.LinkedinProfile).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create developer query: %w", err)
	}

	entry := *dev
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		return nil, fmt.Errorf("error creating developer: %w", err)
	}
	return &entry, nil
}
