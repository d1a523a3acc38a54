package reassign_provider

// ReassignRequest HTTP request model
type ReassignRequest struct {
	ProviderID        int64  `json:"providerId"`
	ProviderServiceID *int64 `json:"providerServiceId,omitempty"` // не передан - услуга остаётся прежней
}
