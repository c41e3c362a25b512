package services

import (
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/storage"
	"github.com/clearbooks-dev/clearbooks_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, fileStorage storage.FileStorage) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The authorizer comes first since every other service consults it.
	container.Authorizer = NewAuthorizationService(repos.UserRepo, repos.CompanyRepo)

	container.Auth = NewAuthService(repos.UserRepo, AuthConfig{
		JWTSecret:         cfg.JWTSecret,
		JWTExpiryDuration: cfg.JWTExpiryDuration,
		JWTIssuer:         cfg.JWTIssuer,
	})
	container.User = NewUserService(repos.UserRepo,
		WithUserAuthorizer(container.Authorizer),
	)
	container.Company = NewCompanyService(repos.CompanyRepo, repos.UserRepo,
		WithCompanyAuthorizer(container.Authorizer),
	)
	container.Account = NewAccountService(repos.AccountRepo,
		WithAccountAuthorizer(container.Authorizer),
	)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.JournalRepo, fileStorage,
		WithDocumentAuthorizer(container.Authorizer),
	)
	container.Journal = NewJournalService(repos.JournalRepo, repos.DocumentRepo, repos.AccountRepo,
		WithJournalAuthorizer(container.Authorizer),
	)
	container.Reporting = NewReportingService(repos.JournalRepo, repos.AccountRepo,
		WithReportingAuthorizer(container.Authorizer),
	)

	return container
}
