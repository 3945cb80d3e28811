package repository

import (
	"fleet-admin/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User             UserRepository
	Session          SessionRepository
	BusConfiguration BusConfigurationRepository
	Bus              BusRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:             NewUserRepository(db, log),
		Session:          NewSessionRepository(db, log),
		BusConfiguration: NewBusConfigurationRepository(db, log),
		Bus:              NewBusRepository(db, log),
	}
}
