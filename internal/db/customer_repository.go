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

const customersCollection = "customers"

// firestoreCustomerRepository implements CustomerRepository using Firestore.
type firestoreCustomerRepository struct {
	client *firestore.Client
}

// NewFirestoreCustomerRepository creates a new instance of firestoreCustomerRepository.
func NewFirestoreCustomerRepository(client *firestore.Client) CustomerRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for CustomerRepository.")
	}
	return &firestoreCustomerRepository{client: client}
}

// Create adds a new customer document with an auto-generated ID.
// CreatedAt and UpdatedAt are handled by serverTimestamp tags on the model.
func (r *firestoreCustomerRepository) Create(ctx context.Context, customer *models.Customer) (string, error) {
	docRef := r.client.Collection(customersCollection).NewDoc()
	customer.ID = docRef.ID

	_, err := docRef.Create(ctx, customer)
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return docRef.ID, nil
}

// GetByID retrieves a customer document by its ID.
func (r *firestoreCustomerRepository) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	if customerID == "" {
		return nil, errors.New("customerID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(customersCollection).Doc(customerID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("customer with ID '%s' not found: %w", customerID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer with ID '%s': %w", customerID, err)
	}

	var customer models.Customer
	if err := docSnap.DataTo(&customer); err != nil {
		return nil, fmt.Errorf("failed to decode customer data for ID '%s': %w", customerID, err)
	}
	customer.ID = docSnap.Ref.ID

	return &customer, nil
}

// List retrieves the full customer set.
func (r *firestoreCustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	return r.collect(ctx, r.client.Collection(customersCollection).Query)
}

// ListByAssignee retrieves customers whose assignedTo equals the staff UID.
func (r *firestoreCustomerRepository) ListByAssignee(ctx context.Context, staffUID string) ([]*models.Customer, error) {
	if staffUID == "" {
		return nil, errors.New("staffUID cannot be empty for ListByAssignee operation")
	}
	query := r.client.Collection(customersCollection).Where("assignedTo", "==", staffUID)
	return r.collect(ctx, query)
}

func (r *firestoreCustomerRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Customer, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var customers []*models.Customer
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate customers: %w", err)
		}

		var customer models.Customer
		if err := doc.DataTo(&customer); err != nil {
			// Log and skip the malformed document rather than failing the read.
			log.Printf("Error decoding customer data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		customer.ID = doc.Ref.ID
		customers = append(customers, &customer)
	}

	return customers, nil
}

// Update modifies an existing customer document.
// Uses Set with MergeAll so partial models do not clobber unrelated fields.
func (r *firestoreCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	if customer.ID == "" {
		return errors.New("customer ID cannot be empty for Update operation")
	}
	_, err := r.client.Collection(customersCollection).Doc(customer.ID).Set(ctx, customer, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update customer with ID '%s': %w", customer.ID, err)
	}
	return nil
}

// Delete removes a customer document. Historical bills referencing the
// customer are left untouched.
func (r *firestoreCustomerRepository) Delete(ctx context.Context, customerID string) error {
	if customerID == "" {
		return errors.New("customerID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(customersCollection).Doc(customerID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("customer with ID '%s' not found for deletion: %w", customerID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete customer with ID '%s': %w", customerID, err)
	}
	return nil
}

// SetAssignments writes assignedTo for every listed customer in one batch
// commit, so a mixed toggle can never land half-applied.
func (r *firestoreCustomerRepository) SetAssignments(ctx context.Context, assignments map[string]string) error {
	if len(assignments) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for customerID, staffUID := range assignments {
		if customerID == "" {
			return errors.New("customerID cannot be empty in SetAssignments")
		}
		docRef := r.client.Collection(customersCollection).Doc(customerID)
		batch.Update(docRef, []firestore.Update{
			{Path: "assignedTo", Value: staffUID},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignment batch (%d customers): %w", len(assignments), err)
	}
	return nil
}
