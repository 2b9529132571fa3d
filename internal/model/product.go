package model

import "time"

// Product is a registered product passport. Code and BlockchainTxID are
// assigned by the store and never accepted from clients. The json tags
// mirror the public API field names, so products can be returned directly
// from handlers; there is nothing secret on this record.
//
// BlockchainTxID is a display-only opaque identifier with no verification
// contract behind it.
type Product struct {
	ID                uint64     `json:"id"`
	Code              string     `json:"productId"`
	ProductName       string     `json:"productName"`
	ManufacturerID    uint64     `json:"manufacturerId"`
	ManufacturerName  string     `json:"manufacturerName"`
	SerialNumber      string     `json:"serialNumber,omitempty"`
	ManufacturingDate *time.Time `json:"manufacturingDate,omitempty"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	Category          string     `json:"category,omitempty"`
	Description       string     `json:"description,omitempty"`
	BlockchainTxID    string     `json:"blockchainTxId"`
	ImageURLs         []string   `json:"imageUrls"`
	CreatedAt         time.Time  `json:"createdAt"`
}
