package services

import (
	portsrepo "github.com/nyumbani/property_ledger/internal/core/ports/repositories"
	portssvc "github.com/nyumbani/property_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Tenant = NewTenantService(repos.TenantRepo, repos.CurrencyRepo)
	container.Account = NewAccountService(repos.AccountRepo, repos.TenantRepo, repos.CurrencyRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Statement = NewStatementService(repos.StatementRepo, repos.LedgerRepo, repos.AccountRepo)

	return container
}
