package domain

// Provider исполнитель услуг (груминг, выгул, ветеринар)
type Provider struct {
	ID       int64
	UserID   int64 // учётная запись провайдера во внешнем auth
	Name     string
	IsActive bool
}

// ProviderService услуга провайдера с базовой длительностью и ценой
type ProviderService struct {
	ID              int64
	ProviderID      int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// Pet питомец клиента
type Pet struct {
	ID      int64
	OwnerID int64
	Name    string
}
