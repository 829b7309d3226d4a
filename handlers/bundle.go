// File: localbooker/handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Bookings *BookingHandler
	Services *ServiceHandler
	Payments *PaymentHandler
	Admin    *AdminHandler
	Storage  *StorageHandler
}
