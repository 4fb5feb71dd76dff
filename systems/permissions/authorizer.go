package permissions

import (
	"github.com/go-home-io/guestkey/common"
	"github.com/go-home-io/guestkey/providers"
)

// Authorizer decides whether a device command may be forwarded.
type Authorizer struct {
	logger common.ILoggerProvider
	matrix providers.IPermissionProvider
}

// NewAuthorizer constructs a new command authorizer.
func NewAuthorizer(logger common.ILoggerProvider, matrix providers.IPermissionProvider) *Authorizer {
	return &Authorizer{
		logger: logger,
		matrix: matrix,
	}
}

// Prepare validates command type and payload without consulting the matrix.
func (a *Authorizer) Prepare(cmd *Command) (*ServiceCall, error) {
	call, err := cmd.Prepare()
	if err != nil {
		a.logger.Warn("Rejected device command", common.LogCommandToken, string(cmd.Type),
			common.LogEntityToken, cmd.Entity, common.LogErrorToken, err.Error())
		return nil, err
	}

	return call, nil
}

// Authorize checks prepared call against the matrix.
// Rejections are logged for audit.
func (a *Authorizer) Authorize(bookingID string, call *ServiceCall) bool {
	if a.matrix.Authorize(bookingID, string(call.Category), call.Entity) {
		return true
	}

	a.logger.Warn("[SECURITY] Forbidden attempt to control entity", common.LogBookingToken, bookingID,
		common.LogEntityToken, call.Entity, common.LogCategoryToken, string(call.Category))
	return false
}

// Controls returns sorted controllable entities of the booking per category.
// Every supported category is present, possibly empty.
func (a *Authorizer) Controls(bookingID string) map[Category][]string {
	result := make(map[Category][]string, len(categoryDomains))
	for k := range categoryDomains {
		result[k] = a.matrix.Entities(bookingID, string(k))
	}

	return result
}
