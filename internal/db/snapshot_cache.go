package db

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/models"
)

// SnapshotCache mirrors the customers, staff, and bills collections in
// memory via Firestore snapshot listeners, so the read-side aggregation can
// recompute on every change without re-querying the store. Listener errors
// are logged and the last good snapshot is kept; a stale view is preferred
// over a crashing one.
type SnapshotCache struct {
	client *firestore.Client
	logger *zap.Logger

	mu        sync.RWMutex
	customers []*models.Customer
	staff     []*models.Staff
	bills     []*models.Bill
}

// NewSnapshotCache creates a SnapshotCache. Start must be called before the
// accessors return anything.
func NewSnapshotCache(client *firestore.Client, logger *zap.Logger) *SnapshotCache {
	if client == nil {
		panic("SnapshotCache requires a non-nil Firestore client")
	}
	if logger == nil {
		panic("SnapshotCache requires a non-nil zap.Logger instance")
	}
	return &SnapshotCache{client: client, logger: logger}
}

// Start launches one listener goroutine per collection. The listeners stop
// when ctx is cancelled.
func (c *SnapshotCache) Start(ctx context.Context) {
	go c.watch(ctx, customersCollection, c.applyCustomers)
	go c.watch(ctx, staffCollection, c.applyStaff)
	go c.watch(ctx, billsCollection, c.applyBills)
}

func (c *SnapshotCache) watch(ctx context.Context, collection string, apply func([]*firestore.DocumentSnapshot)) {
	snapIter := c.client.Collection(collection).Snapshots(ctx)
	defer snapIter.Stop()

	for {
		snap, err := snapIter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Attempt-once contract: no retry loop beyond what the
			// client library does internally.
			c.logger.Warn("Collection listener error; keeping last snapshot",
				zap.String("collection", collection),
				zap.Error(err))
			return
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			c.logger.Warn("Failed to read collection snapshot; keeping last snapshot",
				zap.String("collection", collection),
				zap.Error(err))
			continue
		}
		apply(docs)
	}
}

func (c *SnapshotCache) applyCustomers(docs []*firestore.DocumentSnapshot) {
	customers := make([]*models.Customer, 0, len(docs))
	for _, doc := range docs {
		var customer models.Customer
		if err := doc.DataTo(&customer); err != nil {
			c.logger.Warn("Skipping undecodable customer document", zap.String("id", doc.Ref.ID), zap.Error(err))
			continue
		}
		customer.ID = doc.Ref.ID
		customers = append(customers, &customer)
	}

	c.mu.Lock()
	c.customers = customers
	c.mu.Unlock()
}

func (c *SnapshotCache) applyStaff(docs []*firestore.DocumentSnapshot) {
	staffMembers := make([]*models.Staff, 0, len(docs))
	for _, doc := range docs {
		var staff models.Staff
		if err := doc.DataTo(&staff); err != nil {
			c.logger.Warn("Skipping undecodable staff document", zap.String("id", doc.Ref.ID), zap.Error(err))
			continue
		}
		staff.ID = doc.Ref.ID
		staffMembers = append(staffMembers, &staff)
	}

	c.mu.Lock()
	c.staff = staffMembers
	c.mu.Unlock()
}

func (c *SnapshotCache) applyBills(docs []*firestore.DocumentSnapshot) {
	bills := make([]*models.Bill, 0, len(docs))
	for _, doc := range docs {
		var bill models.Bill
		if err := doc.DataTo(&bill); err != nil {
			c.logger.Warn("Skipping undecodable bill document", zap.String("id", doc.Ref.ID), zap.Error(err))
			continue
		}
		bill.ID = doc.Ref.ID
		bills = append(bills, &bill)
	}

	c.mu.Lock()
	c.bills = bills
	c.mu.Unlock()
}

// Customers returns the latest customer snapshot.
func (c *SnapshotCache) Customers() []*models.Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.customers
}

// Staff returns the latest staff snapshot.
func (c *SnapshotCache) Staff() []*models.Staff {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.staff
}

// Bills returns the latest bill snapshot.
func (c *SnapshotCache) Bills() []*models.Bill {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bills
}
