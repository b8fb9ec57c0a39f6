package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/apperrors"
	"github.com/gspavan07/StudentCodingDashboard/internal/pkg/dberrors"
)

// UserStore handles admin user lookups and creation.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// MemoryUsers is the in-memory UserStore.
type MemoryUsers struct {
	mu     sync.RWMutex
	users  map[int64]models.User
	byName map[string]int64
	nextID int64
}

// NewMemoryUsers creates an empty in-memory user store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		users:  make(map[int64]models.User),
		byName: make(map[string]int64),
		nextID: 1,
	}
}

// GetByUsername returns the user with the given username.
func (s *MemoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := s.users[id]
	return &u, nil
}

// Create stores a new user with an assigned id.
func (s *MemoryUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[user.Username]; exists {
		return nil, apperrors.ErrUsernameExists
	}

	u := *user
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = u
	s.byName[u.Username] = u.ID
	return &u, nil
}

// PostgresUsers is the Postgres-backed UserStore.
type PostgresUsers struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresUsers creates a new Postgres-backed user store.
func NewPostgresUsers(db *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByUsername returns the user with the given username.
func (s *PostgresUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := s.sb.Select("id", "username", "password", "is_admin").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var u models.User
	err = s.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Username, &u.Password, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// Create stores a new user with an assigned id.
func (s *PostgresUsers) Create(ctx context.Context, user *models.User) (*models.User, error) {
	sql, args, err := s.sb.Insert("users").
		Columns("username", "password", "is_admin").
		Values(user.Username, user.Password, user.IsAdmin).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create user query: %w", err)
	}

	u := *user
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&u.ID); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrUsernameExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return &u, nil
}
