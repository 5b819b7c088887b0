package model

import "encoding/json"

// OrderPlacedStatus is the acknowledgment returned by the order endpoint.
const OrderPlacedStatus = "Order placed successfully!"

// OrderFailedStatus is returned when placing an order fails.
const OrderFailedStatus = "Order failed."

// OrderRequest carries the raw, unvalidated order body.
type OrderRequest struct {
	Body json.RawMessage
}

// OrderResult is the order endpoint response.
type OrderResult struct {
	Status string `json:"status"`
}
