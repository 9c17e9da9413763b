package repositories

// RepositoryProvider aggregates the concrete repositories handed to the
// service container.
type RepositoryProvider struct {
	PartyRepo       PartyRepositoryFacade
	ItemRepo        ItemRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
}
