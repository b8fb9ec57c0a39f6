package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the store instances behind their interfaces.
type Repositories struct {
	Roster     RosterStore
	Users      UserStore
	Feedback   FeedbackStore
	Developers DeveloperStore
}

// NewPostgresRepositories initializes Postgres-backed stores on the pool.
func NewPostgresRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Roster:     NewPostgresRoster(db),
		Users:      NewPostgresUsers(db),
		Feedback:   NewPostgresFeedback(db),
		Developers: NewPostgresDevelopers(db),
	}
}

// NewMemoryRepositories initializes in-memory stores. Used when the database
// driver is set to "memory" and in tests.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Roster:     NewMemoryRoster(),
		Users:      NewMemoryUsers(),
		Feedback:   NewMemoryFeedback(),
		Developers: NewMemoryDevelopers(),
	}
}
