package services

// ServiceContainer aggregates the service facades handed to the handlers.
type ServiceContainer struct {
	Party       PartySvcFacade
	Item        ItemSvcFacade
	Transaction TransactionSvcFacade
	Documents   DocumentStore
}
