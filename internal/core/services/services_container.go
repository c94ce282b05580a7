package services

import (
	portsrepo "github.com/SscSPs/demerit_registry/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/demerit_registry/internal/core/ports/services"
	"github.com/SscSPs/demerit_registry/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, options ...PersonServiceOption) *portssvc.ServiceContainer {
	opts := []PersonServiceOption{
		WithSessionCacheSize(cfg.SessionCacheSize),
		WithAuditReplay(cfg.ReplayAuditOnLoad),
	}
	opts = append(opts, options...)

	return &portssvc.ServiceContainer{
		Person: NewPersonService(repos.PersonRepo, opts...),
	}
}
