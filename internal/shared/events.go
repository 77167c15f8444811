package shared

// Event names published on the sales channel. Consumers tell them apart by name.
const (
	EventOrderCreated     = "order-created"
	EventAnalyticsUpdated = "analytics-updated"
)

// DefaultChannel is the logical channel both events share.
const DefaultChannel = "sales-data"
