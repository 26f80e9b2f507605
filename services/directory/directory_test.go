package directory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	directoryRepo "viacampo/database/repository/directory"
	"viacampo/models"
	"viacampo/services/access"
)

type fakeDirectoryRepo struct {
	users map[string]models.AppUser
}

func newFakeDirectoryRepo() *fakeDirectoryRepo {
	return &fakeDirectoryRepo{users: map[string]models.AppUser{}}
}

func (f *fakeDirectoryRepo) Subscribe(ctx context.Context, onChange func([]models.AppUser), onError func(error)) (func(), error) {
	return func() {}, nil
}

func (f *fakeDirectoryRepo) List(ctx context.Context) ([]models.AppUser, error) {
	out := []models.AppUser{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeDirectoryRepo) GetByUID(ctx context.Context, uid string) (*models.AppUser, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, directoryRepo.ErrNotFound
	}
	return &u, nil
}

func (f *fakeDirectoryRepo) Upsert(ctx context.Context, user models.AppUser) error {
	f.users[user.UID] = user
	return nil
}

func (f *fakeDirectoryRepo) SetActive(ctx context.Context, uid string, active bool) error {
	u, ok := f.users[uid]
	if !ok {
		return directoryRepo.ErrNotFound
	}
	u.Active = active
	f.users[uid] = u
	return nil
}

func (f *fakeDirectoryRepo) SetPermissions(ctx context.Context, uid string, permissions []string) error {
	u, ok := f.users[uid]
	if !ok {
		return directoryRepo.ErrNotFound
	}
	u.Permissions = permissions
	f.users[uid] = u
	return nil
}

func TestEnsureUser_FirstLoginDefaults(t *testing.T) {
	repo := newFakeDirectoryRepo()
	svc := &DefaultDirectoryService{Repo: repo}

	user, err := svc.EnsureUser(context.Background(), models.Actor{UID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if !user.Active {
		t.Error("new user should start active")
	}
	if !reflect.DeepEqual(user.Permissions, []string{models.PermTray}) {
		t.Errorf("permissions = %v, want default tray-only", user.Permissions)
	}
}

func TestEnsureUser_ExistingRowUntouched(t *testing.T) {
	repo := newFakeDirectoryRepo()
	repo.users["u1"] = models.AppUser{
		UID:         "u1",
		Email:       "u1@example.com",
		Active:      false,
		Permissions: []string{models.PermAdmin, models.PermAll},
	}
	svc := &DefaultDirectoryService{Repo: repo}

	user, err := svc.EnsureUser(context.Background(), models.Actor{UID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if user.Active {
		t.Error("existing inactive row was reactivated")
	}
	if !user.Has(models.PermAdmin) {
		t.Error("existing permissions were replaced")
	}
}

func TestSetActive_SelfEditRejected(t *testing.T) {
	repo := newFakeDirectoryRepo()
	repo.users["admin"] = models.AppUser{UID: "admin", Active: true}
	svc := &DefaultDirectoryService{Repo: repo}

	err := svc.SetActive(context.Background(), models.Actor{UID: "admin"}, "admin", false)
	if !errors.Is(err, ErrSelfEdit) {
		t.Fatalf("err = %v, want ErrSelfEdit", err)
	}
	if !repo.users["admin"].Active {
		t.Error("self-edit was applied despite rejection")
	}
}

func TestSetProfile_SelfEditRejected(t *testing.T) {
	repo := newFakeDirectoryRepo()
	repo.users["admin"] = models.AppUser{UID: "admin", Active: true, Permissions: []string{models.PermAdmin, models.PermAll}}
	svc := &DefaultDirectoryService{Repo: repo}

	err := svc.SetProfile(context.Background(), models.Actor{UID: "admin"}, "admin", access.ProfileTray)
	if !errors.Is(err, ErrSelfEdit) {
		t.Fatalf("err = %v, want ErrSelfEdit", err)
	}
}

func TestSetProfile_AppliesStoredSet(t *testing.T) {
	repo := newFakeDirectoryRepo()
	repo.users["u2"] = models.AppUser{UID: "u2", Active: true, Permissions: []string{models.PermTray}}
	svc := &DefaultDirectoryService{Repo: repo}

	if err := svc.SetProfile(context.Background(), models.Actor{UID: "admin"}, "u2", access.ProfileTrayHistory); err != nil {
		t.Fatalf("SetProfile failed: %v", err)
	}
	want := []string{models.PermTray, models.PermHistory}
	if !reflect.DeepEqual(repo.users["u2"].Permissions, want) {
		t.Errorf("permissions = %v, want %v", repo.users["u2"].Permissions, want)
	}
}

func TestSetProfile_RejectsUnknownProfile(t *testing.T) {
	repo := newFakeDirectoryRepo()
	repo.users["u2"] = models.AppUser{UID: "u2", Active: true}
	svc := &DefaultDirectoryService{Repo: repo}

	if err := svc.SetProfile(context.Background(), models.Actor{UID: "admin"}, "u2", access.Profile("SUPERUSER")); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestSetActive_Applies(t *testing.T) {
	repo := newFakeDirectoryRepo()
	repo.users["u2"] = models.AppUser{UID: "u2", Active: true}
	svc := &DefaultDirectoryService{Repo: repo}

	if err := svc.SetActive(context.Background(), models.Actor{UID: "admin"}, "u2", false); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if repo.users["u2"].Active {
		t.Error("active flag not toggled")
	}
}
