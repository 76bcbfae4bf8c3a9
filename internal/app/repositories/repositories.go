package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odemir/studentbook/internal/db"
)

// Repositories holds all the repository instances. Users and sessions live
// in Postgres; student records and grades live in the SurrealDB record store.
type Repositories struct {
	UserRepository    *UserRepository
	SessionRepository *SessionRepository
	StudentRepository *StudentRepository
	GradeRepository   *GradeRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool, store *db.SurrealDB) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(pool),
		SessionRepository: NewSessionRepository(pool),
		StudentRepository: NewStudentRepository(store),
		GradeRepository:   NewGradeRepository(store),
	}
}
