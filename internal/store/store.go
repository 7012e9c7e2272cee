package store

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"locker-admin-backend/config"
	"locker-admin-backend/internal/model"
	"locker-admin-backend/pkg/apierror"
)

// Store defines all document store operations. Every mutation is atomic at
// the single-document level only; there is no transaction or version check
// across documents, and concurrent writers (mobile client, device
// firmware) resolve by last write wins.
type Store interface {
	Lockers(ctx context.Context) ([]model.Locker, error)
	Reservations(ctx context.Context) ([]model.Reservation, error)
	CreateLocker(ctx context.Context, input CreateLockerInput) error
	DeleteLocker(ctx context.Context, id string) error
	UpdatePrice(ctx context.Context, id string, price float64) error
	ToggleLock(ctx context.Context, id string, current int) (int, error)
	BulkUpdatePrice(ctx context.Context, ids []string, price float64) error
}

// mongoStore implements Store against the remote document store.
type mongoStore struct {
	lockers      *mongo.Collection
	reservations *mongo.Collection
}

// NewMongoStore creates a document-store-backed Store.
func NewMongoStore(client *mongo.Client, cfg *config.MongoConfig) Store {
	db := client.Database(cfg.Database)
	return &mongoStore{
		lockers:      db.Collection(cfg.LockersCollection),
		reservations: db.Collection(cfg.ReservationsCollection),
	}
}

// Lockers fetches the entire lockers collection and maps it into the
// domain shape, ordered by document key for a stable dashboard layout.
func (s *mongoStore) Lockers(ctx context.Context) ([]model.Locker, error) {
	cursor, err := s.lockers.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, apierror.Connectivity(fmt.Sprintf("fetching lockers: %v", err))
	}
	defer cursor.Close(ctx)

	var docs []lockerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apierror.Connectivity(fmt.Sprintf("decoding lockers: %v", err))
	}

	out := make([]model.Locker, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Reservations fetches the entire reservations collection, ordered by
// creation time as the store assigned it.
func (s *mongoStore) Reservations(ctx context.Context) ([]model.Reservation, error) {
	cursor, err := s.reservations.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, apierror.Connectivity(fmt.Sprintf("fetching reservations: %v", err))
	}
	defer cursor.Close(ctx)

	var docs []reservationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apierror.Connectivity(fmt.Sprintf("decoding reservations: %v", err))
	}

	out := make([]model.Reservation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CreateLocker writes a full locker document under the admin-assigned
// identifier. The lock state is forced to locked and the reservation
// expiry to null regardless of form input; the update timestamp is
// assigned by the store, not this process.
func (s *mongoStore) CreateLocker(ctx context.Context, input CreateLockerInput) error {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return apierror.Validation("locker identifier must not be empty")
	}

	_, err := s.lockers.UpdateByID(ctx, id, createLockerUpdate(input), options.Update().SetUpsert(true))
	if err != nil {
		return apierror.Connectivity(fmt.Sprintf("creating locker %s: %v", id, err))
	}
	return nil
}

// createLockerUpdate builds the upsert document for a new locker. Lock
// state and reservation expiry come out forced regardless of the input,
// and lastUpdated is assigned by the store.
func createLockerUpdate(input CreateLockerInput) bson.M {
	status := input.Status
	if status == "" {
		status = string(model.StatusClosed)
	}
	return bson.M{
		"$set": bson.M{
			"label":            input.Label,
			"location":         input.Location,
			"status":           status,
			"lockState":        model.LockStateLocked,
			"pricePerHour":     input.PricePerHour,
			"size":             input.Size,
			"reservationUntil": nil,
		},
		"$currentDate": bson.M{"lastUpdated": true},
	}
}

// DeleteLocker removes a locker document. Irreversible; the caller is
// responsible for having confirmed the action.
func (s *mongoStore) DeleteLocker(ctx context.Context, id string) error {
	res, err := s.lockers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apierror.Connectivity(fmt.Sprintf("deleting locker %s: %v", id, err))
	}
	if res.DeletedCount == 0 {
		return apierror.NotFound(fmt.Sprintf("locker %s not found", id))
	}
	return nil
}

// UpdatePrice sets the hourly price and refreshes the update timestamp.
// No lower bound is enforced here beyond what the input control supplies.
func (s *mongoStore) UpdatePrice(ctx context.Context, id string, price float64) error {
	update := bson.M{
		"$set":         bson.M{"pricePerHour": price},
		"$currentDate": bson.M{"lastUpdated": true},
	}
	res, err := s.lockers.UpdateByID(ctx, id, update)
	if err != nil {
		return apierror.Connectivity(fmt.Sprintf("updating price for locker %s: %v", id, err))
	}
	if res.MatchedCount == 0 {
		return apierror.NotFound(fmt.Sprintf("locker %s not found", id))
	}
	return nil
}

// ToggleLock flips the lock state read from the caller's in-memory
// snapshot and writes the result. This is a read-modify-write over the
// locally cached value, not a server-side compare-and-swap: a concurrent
// toggle or a firmware write to the same field can be lost, and the view
// corrects itself on the next subscription push.
func (s *mongoStore) ToggleLock(ctx context.Context, id string, current int) (int, error) {
	if current != model.LockStateLocked && current != model.LockStateUnlocked {
		return 0, apierror.Validation(fmt.Sprintf("lock state must be 0 or 1, got %d", current))
	}
	next := 1 - current

	update := bson.M{
		"$set":         bson.M{"lockState": next},
		"$currentDate": bson.M{"lastUpdated": true},
	}
	res, err := s.lockers.UpdateByID(ctx, id, update)
	if err != nil {
		return 0, apierror.Connectivity(fmt.Sprintf("toggling lock for locker %s: %v", id, err))
	}
	if res.MatchedCount == 0 {
		return 0, apierror.NotFound(fmt.Sprintf("locker %s not found", id))
	}
	return next, nil
}

// BulkUpdatePrice issues one price update per locker, fired simultaneously
// and awaited together. Best-effort: a partial failure leaves the
// completed writes in place, and the set of lockers actually updated is
// undefined from the caller's perspective.
func (s *mongoStore) BulkUpdatePrice(ctx context.Context, ids []string, price float64) error {
	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			return s.UpdatePrice(ctx, id, price)
		})
	}
	return g.Wait()
}
