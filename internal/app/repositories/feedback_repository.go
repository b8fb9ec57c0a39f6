package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gspavan07/StudentCodingDashboard/internal/app/models"
)

// FeedbackStore handles feedback submissions.
type FeedbackStore interface {
	GetAll(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
}

// MemoryFeedback is the in-memory FeedbackStore.
type MemoryFeedback struct {
	mu      sync.RWMutex
	entries []models.Feedback
	nextID  int64
}

// NewMemoryFeedback creates an empty in-memory feedback store.
func NewMemoryFeedback() *MemoryFeedback {
	return &MemoryFeedback{nextID: 1}
}

// GetAll returns every feedback entry in submission order.
func (s *MemoryFeedback) GetAll(ctx context.Context) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feedback, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Create stores a feedback entry with an assigned id.
func (s *MemoryFeedback) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := *fb
	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)
	return &entry, nil
}

// PostgresFeedback is the Postgres-backed FeedbackStore.
type PostgresFeedback struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostgresFeedback creates a new Postgres-backed feedback store.
func NewPostgresFeedback(db *pgxpool.Pool) *PostgresFeedback {
	return &PostgresFeedback{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAll returns every feedback entry.
func (s *PostgresFeedback) GetAll(ctx context.Context) ([]models.Feedback, error) {
	sql, args, err := s.sb.Select("id", "name", "email", "message").
		From("feedback").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get feedback query: %w", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}
	defer rows.Close()

	var out []models.Feedback
	for rows.Next() {
		var fb models.Feedback
		if err := rows.Scan(&fb.ID, &fb.Name, &fb.Email, &fb.Message); err != nil {
			return nil, fmt.Errorf("error scanning feedback row: %w", err)
		}
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}
	return out, nil
}

// Create stores a feedback entry with an assigned id.
func (s *PostgresFeedback) Create(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	sql, args, err := s.sb.Insert("feedback").
		Columns("name", "email", "message").
		Values(fb.Name, fb.Email, fb.Message).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create feedback query: %w", err)
	}

	entry := *fb
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		return nil, fmt.Errorf("error creating feedback: %w", err)
	}
	return &entry, nil
}
