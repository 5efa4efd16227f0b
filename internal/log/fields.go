package log

// Canonical field names for structured logging.
const (
	FieldService   = "service"
	FieldFunction  = "function"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Identity fields
	FieldRequestID      = "request_id"
	FieldAlexaRequestID = "alexa_request_id"
	FieldSessionID      = "session_id"
	FieldApplicationID  = "application_id"

	// Dispatch fields
	FieldRequestType = "request_type"
	FieldIntent      = "intent"
	FieldReason      = "reason"
	FieldCategoryID  = "category_id"
	FieldTitles      = "titles"
	FieldDurationMS  = "duration_ms"
)
