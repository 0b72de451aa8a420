package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"waterbill-backend-go/internal/models"
)

const staffCollection = "staff"

// firestoreStaffRepository implements StaffRepository using Firestore.
type firestoreStaffRepository struct {
	client *firestore.Client
}

// NewFirestoreStaffRepository creates a new instance of firestoreStaffRepository.
func NewFirestoreStaffRepository(client *firestore.Client) StaffRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for StaffRepository.")
	}
	return &firestoreStaffRepository{client: client}
}

// Create adds a new staff document with an auto-generated ID. The Firebase
// Auth UID lives in a field, not the document key.
func (r *firestoreStaffRepository) Create(ctx context.Context, staff *models.Staff) (string, error) {
	if staff.UID == "" {
		return "", errors.New("staff UID cannot be empty for Create operation")
	}
	docRef := r.client.Collection(staffCollection).NewDoc()
	staff.ID = docRef.ID

	_, err := docRef.Create(ctx, staff)
	if err != nil {
		return "", fmt.Errorf("failed to create staff: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a staff document by its ID.
func (r *firestoreStaffRepository) GetByID(ctx context.Context, staffID string) (*models.Staff, error) {
	if staffID == "" {
		return nil, errors.New("staffID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(staffCollection).Doc(staffID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("staff with ID '%s' not found: %w", staffID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get staff with ID '%s': %w", staffID, err)
	}

	var staff models.Staff
	if err := docSnap.DataTo(&staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff data for ID '%s': %w", staffID, err)
	}
	staff.ID = docSnap.Ref.ID

	return &staff, nil
}

// GetByUID retrieves a staff member by Firebase Auth UID.
func (r *firestoreStaffRepository) GetByUID(ctx context.Context, uid string) (*models.Staff, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByUID operation")
	}
	return r.queryOne(ctx, "uid", uid)
}

// GetByEmail retrieves a staff member by email. Used to resolve the signed-in
// identity to a staff record on the collector dashboard.
func (r *firestoreStaffRepository) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}
	return r.queryOne(ctx, "email", email)
}

func (r *firestoreStaffRepository) queryOne(ctx context.Context, field, value string) (*models.Staff, error) {
	iter := r.client.Collection(staffCollection).Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("staff with %s '%s' not found: %w", field, value, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query staff by %s '%s': %w", field, value, err)
	}

	var staff models.Staff
	if err := doc.DataTo(&staff); err != nil {
		return nil, fmt.Errorf("failed to decode staff data for ID '%s': %w", doc.Ref.ID, err)
	}
	staff.ID = doc.Ref.ID

	return &staff, nil
}

// List retrieves the full staff set.
func (r *firestoreStaffRepository) List(ctx context.Context) ([]*models.Staff, error) {
	iter := r.client.Collection(staffCollection).Documents(ctx)
	defer iter.Stop()

	var staffMembers []*models.Staff
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate staff: %w", err)
		}

		var staff models.Staff
		if err := doc.DataTo(&staff); err != nil {
			log.Printf("Error decoding staff data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		staff.ID = doc.Ref.ID
		staffMembers = append(staffMembers, &staff)
	}

	return staffMembers, nil
}

// Update modifies an existing staff document.
func (r *firestoreStaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	if staff.ID == "" {
		return errors.New("staff ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(staffCollection).Doc(staff.ID).Set(ctx, staff, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update staff with ID '%s': %w", staff.ID, err)
	}
	return nil
}

// Delete removes a staff document. Customer assignments pointing at the
// removed UID become dangling and aggregate as unassigned.
func (r *firestoreStaffRepository) Delete(ctx context.Context, staffID string) error {
	if staffID == "" {
		return errors.New("staffID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(staffCollection).Doc(staffID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("staff with ID '%s' not found for deletion: %w", staffID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete staff with ID '%s': %w", staffID, err)
	}
	return nil
}
