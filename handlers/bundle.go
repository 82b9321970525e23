package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Auth     *AuthHandler
	Catalog  *CatalogHandler
	Booking  *BookingHandler
	Worker   *WorkerHandler
	Admin    *AdminHandler
	Matching *MatchingHandler
	Payment  *PaymentHandler
	Customer *CustomerHandler
}
