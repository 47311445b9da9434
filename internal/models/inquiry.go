package models

import "time"

// Inquiry is a formatted WhatsApp hand-off: the plain message, its
// URL-encoded form and the wa.me link the surface should open.
type Inquiry struct {
	Message string `json:"message"`
	Encoded string `json:"encoded"`
	URL     string `json:"url"`
}

// InquiryEvent is the notification published to the message queue whenever
// a visitor generates an inquiry link, so the shop owner can follow up.
type InquiryEvent struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"` // "single" or "wishlist"
	Codes     []string  `json:"codes"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
