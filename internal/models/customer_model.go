package models

import "time"

// Customer status values.
const (
	CustomerStatusActive  = "active"
	CustomerStatusPending = "pending"
)

// Customer represents a water connection holder.
type Customer struct {
	ID           string `json:"id" firestore:"-"` // Document ID, auto-generated
	Name         string `json:"name" firestore:"name"`
	CNIC         string `json:"cnic,omitempty" firestore:"cnic,omitempty"`
	Phone        string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Address      string `json:"address,omitempty" firestore:"address,omitempty"`
	ConnectionNo string `json:"connectionNo" firestore:"connectionNo"`
	// AssignedTo holds the Firebase Auth UID of the collecting staff member,
	// never a staff document ID. Empty means unassigned.
	AssignedTo string    `json:"assignedTo,omitempty" firestore:"assignedTo"`
	Status     string    `json:"status" firestore:"status"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt  time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
