package directoryRepo

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

const userCollection = "app_users"

// FirestoreDirectoryRepo implements DirectoryRepository on Firestore. The
// document id is the user's uid.
type FirestoreDirectoryRepo struct {
	client *firestore.Client
	coll   *firestore.CollectionRef
}

// NewFirestoreDirectoryRepo creates a DirectoryRepository backed by the
// shared Firestore client.
func NewFirestoreDirectoryRepo() DirectoryRepository {
	client := database.FirestoreClient
	return &FirestoreDirectoryRepo{
		client: client,
		coll:   client.Collection(userCollection),
	}
}

func docToUser(doc *firestore.DocumentSnapshot) (models.AppUser, error) {
	var user models.AppUser
	if err := doc.DataTo(&user); err != nil {
		return user, fmt.Errorf("failed to decode app user %s: %w", doc.Ref.ID, err)
	}
	user.UID = doc.Ref.ID
	return user, nil
}

func (r *FirestoreDirectoryRepo) Subscribe(ctx context.Context, onChange func([]models.AppUser), onError func(error)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	snapIter := r.coll.OrderBy("email", firestore.Asc).Snapshots(ctx)

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

			users := []models.AppUser{}
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					onError(fmt.Errorf("failed to iterate user snapshot: %w", err))
					return
				}
				user, err := docToUser(doc)
				if err != nil {
					onError(err)
					return
				}
				users = append(users, user)
			}
			onChange(users)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (r *FirestoreDirectoryRepo) List(ctx context.Context) ([]models.AppUser, error) {
	docs, err := r.coll.OrderBy("email", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list app users: %w", err)
	}
	users := []models.AppUser{}
	for _, doc := range docs {
		user, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *FirestoreDirectoryRepo) GetByUID(ctx context.Context, uid string) (*models.AppUser, error) {
	doc, err := r.coll.Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("app user %s: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get app user %s: %w", uid, err)
	}
	user, err := docToUser(doc)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *FirestoreDirectoryRepo) Upsert(ctx context.Context, user models.AppUser) error {
	if _, err := r.coll.Doc(user.UID).Set(ctx, user); err != nil {
		return fmt.Errorf("failed to upsert app user %s: %w", user.UID, err)
	}
	return nil
}

func (r *FirestoreDirectoryRepo) SetActive(ctx context.Context, uid string, active bool) error {
	return r.updateField(ctx, uid, firestore.Update{Path: "active", Value: active})
}

func (r *FirestoreDirectoryRepo) SetPermissions(ctx context.Context, uid string, permissions []string) error {
	return r.updateField(ctx, uid, firestore.Update{Path: "permissions", Value: permissions})
}

func (r *FirestoreDirectoryRepo) updateField(ctx context.Context, uid string, update firestore.Update) error {
	if _, err := r.coll.Doc(uid).Update(ctx, []firestore.Update{update}); err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("app user %s: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update app user %s: %w", uid, err)
	}
	return nil
}
