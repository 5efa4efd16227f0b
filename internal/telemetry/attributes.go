package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by the skill's spans.
const (
	AlexaRequestIDKey = "alexa.request_id"
	AlexaRequestType  = "alexa.request_type"
	AlexaIntentKey    = "alexa.intent"
	AlexaSessionNew   = "alexa.session_new"

	CatalogCategoryKey = "catalog.category_id"
	CatalogTitlesKey   = "catalog.titles"
)

// RequestAttributes creates span attributes describing an inbound request.
func RequestAttributes(requestID, requestType, intent string, sessionNew bool) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AlexaRequestIDKey, requestID),
		attribute.String(AlexaRequestType, requestType),
		attribute.Bool(AlexaSessionNew, sessionNew),
	}
	if intent != "" {
		attrs = append(attrs, attribute.String(AlexaIntentKey, intent))
	}
	return attrs
}
