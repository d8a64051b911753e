package repository

// Persisted collection keys. The layout matches the dashboard's storage
// contract: each key holds one JSON-encoded collection (or, for the
// session key, a single identity document).
const (
	KeyUsers        = "users"
	KeyAuthUser     = "authUser"
	KeyStudents     = "students"
	KeyCustomFields = "customFields"
)
