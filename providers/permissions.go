package providers

// IPermissionProvider defines guest permission matrix logic.
type IPermissionProvider interface {
	Authorize(bookingID string, category string, entity string) bool
	Entities(bookingID string, category string) []string
}
