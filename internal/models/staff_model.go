package models

import "time"

// Staff status values.
const (
	StaffStatusActive   = "Active"
	StaffStatusInactive = "Inactive"
)

// Staff represents a field collector. The document ID and the Firebase Auth
// UID are decoupled: UID is issued by the identity provider and is the join
// key for customer assignment; the document ID is only a registry handle.
type Staff struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	UID       string    `json:"uid" firestore:"uid"`
	Name      string    `json:"name" firestore:"name"`
	Email     string    `json:"email" firestore:"email"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	CNIC      string    `json:"cnic,omitempty" firestore:"cnic,omitempty"`
	Address   string    `json:"address,omitempty" firestore:"address,omitempty"`
	Status    string    `json:"status" firestore:"status"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
