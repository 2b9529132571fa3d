// Package queue defines message payloads exchanged over the message broker.
package queue

const (
	// RegisteredQueue receives one message per registered product passport.
	RegisteredQueue = "passport.registered"
	// HistoryQueue receives one message per appended history event.
	HistoryQueue = "passport.history"
)

// PassportRegisteredEvent is published when a product passport is created.
// It carries enough for downstream consumers to audit or notify without
// querying the store.
type PassportRegisteredEvent struct {
	EventID          string `json:"event_id"`
	ProductID        uint64 `json:"product_id"`
	ProductCode      string `json:"product_code"`
	ProductName      string `json:"product_name"`
	ManufacturerID   uint64 `json:"manufacturer_id"`
	ManufacturerName string `json:"manufacturer_name"`
	BlockchainTxID   string `json:"blockchain_tx_id"`
	RegisteredAt     string `json:"registered_at"`
}

// PassportHistoryEvent is published when a history event is appended to a
// passport. Label is only set for custom event tags.
type PassportHistoryEvent struct {
	EventID     string `json:"event_id"`
	ProductID   uint64 `json:"product_id"`
	ProductCode string `json:"product_code"`
	Event       string `json:"event"`
	Label       string `json:"label,omitempty"`
	RecordedAt  string `json:"recorded_at"`
}
