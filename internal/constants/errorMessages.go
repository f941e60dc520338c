package constants

const (
	ErrMsgUnauthorized   = "Unauthorized"
	ErrMsgAdminRequired  = "Unauthorized. Admin permissions required"
	ErrMsgInvalidBody    = "Invalid request body"
	ErrMsgVehicleMissing = "Vehicle not found"
)
