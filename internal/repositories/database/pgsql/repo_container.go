package pgsql

import (
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RequestRepo:    newPgxRequestRepository(dbPool),
		ParametersRepo: newPgxParametersRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		HolidayRepo:    newPgxHolidayRepository(dbPool),
		DocumentRepo:   newPgxDocumentRepository(dbPool),
	}
}
