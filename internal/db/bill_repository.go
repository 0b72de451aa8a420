package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"waterbill-backend-go/internal/models"
)

const billsCollection = "bills"

// firestoreBillRepository implements BillRepository using Firestore.
type firestoreBillRepository struct {
	client *firestore.Client
}

// NewFirestoreBillRepository creates a new instance of firestoreBillRepository.
func NewFirestoreBillRepository(client *firestore.Client) BillRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for BillRepository.")
	}
	return &firestoreBillRepository{client: client}
}

// GetByID retrieves a bill document by its ID.
func (r *firestoreBillRepository) GetByID(ctx context.Context, billID string) (*models.Bill, error) {
	if billID == "" {
		return nil, errors.New("billID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(billsCollection).Doc(billID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("bill with ID '%s' not found: %w", billID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get bill with ID '%s': %w", billID, err)
	}

	var bill models.Bill
	if err := docSnap.DataTo(&bill); err != nil {
		return nil, fmt.Errorf("failed to decode bill data for ID '%s': %w", billID, err)
	}
	bill.ID = docSnap.Ref.ID

	return &bill, nil
}

// List retrieves the full bill set.
func (r *firestoreBillRepository) List(ctx context.Context) ([]*models.Bill, error) {
	return r.collect(ctx, r.client.Collection(billsCollection).Query)
}

// ListByCustomer retrieves all bills for one customer. Callers sort; no
// composite index is required this way.
func (r *firestoreBillRepository) ListByCustomer(ctx context.Context, customerID string) ([]*models.Bill, error) {
	if customerID == "" {
		return nil, errors.New("customerID cannot be empty for ListByCustomer operation")
	}
	query := r.client.Collection(billsCollection).Where("customerId", "==", customerID)
	return r.collect(ctx, query)
}

// ListForMonth retrieves bills whose billDate falls inside the calendar month
// containing the given instant.
func (r *firestoreBillRepository) ListForMonth(ctx context.Context, month time.Time) ([]*models.Bill, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	end := start.AddDate(0, 1, 0)

	query := r.client.Collection(billsCollection).
		Where("billDate", ">=", start).
		Where("billDate", "<", end)
	return r.collect(ctx, query)
}

func (r *firestoreBillRepository) collect(ctx context.Context, query firestore.Query) ([]*models.Bill, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var bills []*models.Bill
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate bills: %w", err)
		}

		var bill models.Bill
		if err := doc.DataTo(&bill); err != nil {
			log.Printf("Error decoding bill data (ID: %s): %v. Skipping.", doc.Ref.ID, err)
			continue
		}
		bill.ID = doc.Ref.ID
		bills = append(bills, &bill)
	}

	return bills, nil
}

// CreateBatch persists all bills in one batch commit: either every bill of a
// generation run lands, or none do.
func (r *firestoreBillRepository) CreateBatch(ctx context.Context, bills []*models.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, bill := range bills {
		docRef := r.client.Collection(billsCollection).NewDoc()
		bill.ID = docRef.ID
		batch.Create(docRef, bill)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bill batch (%d bills): %w", len(bills), err)
	}
	return nil
}

// SetStatus updates status and paymentDate in a single write so the
// status/paymentDate coupling cannot be broken by a partial update.
func (r *firestoreBillRepository) SetStatus(ctx context.Context, billID, status string, paymentDate *time.Time) error {
	if billID == "" {
		return errors.New("billID cannot be empty for SetStatus operation")
	}

	var paymentValue interface{}
	if paymentDate != nil {
		paymentValue = *paymentDate
	}

	_, err := r.client.Collection(billsCollection).Doc(billID).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "paymentDate", Value: paymentValue},
	})
	if err != nil {
		return fmt.Errorf("failed to set status on bill '%s': %w", billID, err)
	}
	return nil
}

// Delete removes a single bill document.
func (r *firestoreBillRepository) Delete(ctx context.Context, billID string) error {
	if billID == "" {
		return errors.New("billID cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(billsCollection).Doc(billID).Delete(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("bill with ID '%s' not found for deletion: %w", billID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete bill with ID '%s': %w", billID, err)
	}
	return nil
}

// DeleteBatch removes all listed bills in one batch commit.
func (r *firestoreBillRepository) DeleteBatch(ctx context.Context, billIDs []string) error {
	if len(billIDs) == 0 {
		return nil
	}

	batch := r.client.Batch()
	for _, billID := range billIDs {
		if billID == "" {
			return errors.New("billID cannot be empty in DeleteBatch")
		}
		batch.Delete(r.client.Collection(billsCollection).Doc(billID))
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bill delete batch (%d bills): %w", len(billIDs), err)
	}
	return nil
}
