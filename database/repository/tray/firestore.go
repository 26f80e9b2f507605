package trayRepo

import (
	"context"
	"fmt"
	"sync"

	"viacampo/database"
	"viacampo/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const trayCollection = "tray_items"

// releaseBatchLimit bounds the writes per commit during a bulk release, under
// Firestore's 500-operation batch ceiling.
const releaseBatchLimit = 450

// FirestoreTrayRepo implements TrayRepository on Firestore.
type FirestoreTrayRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreTrayRepo creates a TrayRepository backed by the shared
// Firestore client.
func NewFirestoreTrayRepo() TrayRepository {
	client := database.FirestoreClient
	return &FirestoreTrayRepo{
		client: client,
		coll:   client.Collection(trayCollection),
	}
}

// docToItem decodes a snapshot into a TrayItem. An absent or zero trayOrder
// sorts last.
func docToItem(doc *firestore.DocumentSnapshot) (models.TrayItem, error) {
	var item models.TrayItem
	if err := doc.DataTo(&item); err != nil {
		return item, fmt.Errorf("failed to decode tray item %s: %w", doc.Ref.ID, err)
	}
	item.ID = doc.Ref.ID
	if item.TrayOrder == 0 {
		item.TrayOrder = models.DefaultTrayOrder
	}
	return item, nil
}

func (r *FirestoreTrayRepo) query() firestore.Query {
	return r.coll.OrderBy("trayOrder", firestore.Asc)
}

func (r *FirestoreTrayRepo) Subscribe(ctx context.Context, onChange func([]models.TrayItem), onError func(error)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	snapIter := r.query().Snapshots(ctx)

	go func() {
		defer snapIter.Stop()
		for {
			snap, err := snapIter.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled {
					return
				}
				onError(err)
				return
			}

			items, err := decodeSnapshot(snap)
			if err != nil {
				onError(err)
				return
			}
			onChange(items)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func decodeSnapshot(snap *firestore.QuerySnapshot) ([]models.TrayItem, error) {
	items := []models.TrayItem{}
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate tray snapshot: %w", err)
		}
		item, err := docToItem(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *FirestoreTrayRepo) List(ctx context.Context) ([]models.TrayItem, error) {
	docs, err := r.query().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tray items: %w", err)
	}
	items := []models.TrayItem{}
	for _, doc := range docs {
		item, err := docToItem(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *FirestoreTrayRepo) Get(ctx context.Context, id string) (*models.TrayItem, error) {
	doc, err := r.coll.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("tray item %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch tray item %s: %w", id, err)
	}
	item, err := docToItem(doc)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *FirestoreTrayRepo) Add(ctx context.Context, item models.TrayItem) (string, error) {
	// New items always enter the pool unlinked.
	item.TripID = nil
	item.TripAt = nil

	doc := r.coll.NewDoc()
	if _, err := doc.Set(ctx, item); err != nil {
		return "", fmt.Errorf("failed to add tray item: %w", err)
	}
	return doc.ID, nil
}

func (r *FirestoreTrayRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	if _, err := r.coll.Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("tray item %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to update tray item %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreTrayRepo) Remove(ctx context.Context, id string) error {
	if _, err := r.coll.Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove tray item %s: %w", id, err)
	}
	return nil
}

func (r *FirestoreTrayRepo) UpdateOrder(ctx context.Context, updates []OrderUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	batch := r.client.Batch()
	for _, u := range updates {
		batch.Update(r.coll.Doc(u.ID), []firestore.Update{
			{Path: "trayOrder", Value: u.TrayOrder},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit reorder batch: %w", err)
	}
	return nil
}

func (r *FirestoreTrayRepo) MarkItemsInTrip(ctx context.Context, ids []string, tripID string) error {
	if len(ids) == 0 {
		return nil
	}
	batch := r.client.Batch()
	for _, id := range ids {
		batch.Update(r.coll.Doc(id), []firestore.Update{
			{Path: "tripId", Value: tripID},
			{Path: "tripAt", Value: firestore.ServerTimestamp},
			{Path: "updatedAt", Value: firestore.ServerTimestamp},
		})
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("failed to link items to trip %s: %w", tripID, err)
	}
	return nil
}

func (r *FirestoreTrayRepo) ClearTripByTripID(ctx context.Context, tripID string) (int, error) {
	docs, err := r.coll.Where("tripId", "==", tripID).Documents(ctx).GetAll()
	if err != nil {
		return 0, fmt.Errorf("failed to query items linked to trip %s: %w", tripID, err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	cleared := 0
	for start := 0; start < len(docs); start += releaseBatchLimit {
		end := start + releaseBatchLimit
		if end > len(docs) {
			end = len(docs)
		}

		batch := r.client.Batch()
		for _, doc := range docs[start:end] {
			batch.Update(doc.Ref, []firestore.Update{
				{Path: "tripId", Value: nil},
				{Path: "tripAt", Value: nil},
				{Path: "updatedAt", Value: firestore.ServerTimestamp},
			})
		}
		if _, err := batch.Commit(ctx); err != nil {
			return cleared, &PartialReleaseError{TripID: tripID, Released: cleared, Err: err}
		}
		cleared += end - start
	}
	return cleared, nil
}
