package services

import (
	portsrepo "github.com/mandibooks/billing_backend/internal/core/ports/repositories"
	portssvc "github.com/mandibooks/billing_backend/internal/core/ports/services"
)

// NewContainer creates the service container with properly initialized
// dependencies. notifier and docStore may be nil when the corresponding
// collaborator is not configured.
func NewContainer(
	repos portsrepo.RepositoryProvider,
	notifier portssvc.Notifier,
	docStore portssvc.DocumentStore,
	defaultPhoneRegion string,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Party = NewPartyService(repos.PartyRepo, defaultPhoneRegion)
	container.Item = NewItemService(repos.ItemRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		container.Party,
		container.Item,
		notifier,
	)
	container.Documents = docStore

	return container
}
