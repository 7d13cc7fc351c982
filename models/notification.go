package models

import "time"

// Notification is a document in the Firestore "notifications" collection.
// The backend creates these when a business event fires (loan approved,
// payment due, message received); this client only reads them and flips Read.
type Notification struct {
	ID          string    `json:"id" firestore:"-"`
	RecipientID string    `json:"recipientId" firestore:"recipientId"`
	Title       string    `json:"title" firestore:"title"`
	Description string    `json:"description" firestore:"description"`
	Text        string    `json:"text" firestore:"text"`
	Timestamp   time.Time `json:"timestamp" firestore:"timestamp"`
	Read        bool      `json:"read" firestore:"read"`
	Delivered   bool      `json:"delivered" firestore:"delivered"`
}
