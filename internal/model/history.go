package model

import "time"

// EventType is the closed set of lifecycle event tags. Incoming tags that
// match a known constant are normalized to it; anything else becomes
// EventCustom with the original text preserved in the Label field, so a
// typo never produces a silently-uncategorized entry.
type EventType string

const (
	EventCreated               EventType = "created"
	EventManufactured          EventType = "manufactured"
	EventQualityCheck          EventType = "quality_check"
	EventShippedToDistributor  EventType = "shipped_to_distributor"
	EventReceivedByDistributor EventType = "received_by_distributor"
	EventShippedToRetailer     EventType = "shipped_to_retailer"
	EventReceivedByRetailer    EventType = "received_by_retailer"
	EventPurchased             EventType = "purchased"
	EventVerified              EventType = "verified"
	EventCustom                EventType = "custom"
)

// NormalizeEvent maps a raw tag onto the closed EventType set. Known tags
// return themselves with an empty label; unknown tags return EventCustom
// and the raw tag as label.
func NormalizeEvent(raw string) (EventType, string) {
	switch t := EventType(raw); t {
	case EventCreated, EventManufactured, EventQualityCheck,
		EventShippedToDistributor, EventReceivedByDistributor,
		EventShippedToRetailer, EventReceivedByRetailer,
		EventPurchased, EventVerified:
		return t, ""
	}
	return EventCustom, raw
}

// ProductHistory is one append-only annotation on a product's lifecycle.
// ProductID references the product's internal id, not its public code.
// Timestamp is assigned server-side at insertion; client-supplied
// timestamps are not accepted.
type ProductHistory struct {
	ID        uint64         `json:"id"`
	ProductID uint64         `json:"productId"`
	Event     EventType      `json:"event"`
	Label     string         `json:"label,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}
