package categories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"place-history/internal/pagination"

	"github.com/google/uuid"
)

type testRepo struct {
	byID map[uuid.UUID]Category
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uuid.UUID]Category{}}
}

func (r *testRepo) Create(ctx context.Context, c Category) error {
	if _, ok := r.byID[c.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(ctx context.Context, c Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) FindByIDAndClient(ctx context.Context, id, clientID uuid.UUID) (Category, error) {
	c, ok := r.byID[id]
	if !ok || c.ClientID != clientID {
		return Category{}, ErrNotFound
	}
	return c, nil
}

// failingRepo simula una base caída: todo devuelve el mismo error.
type failingRepo struct {
	err error
}

func (r failingRepo) Create(ctx context.Context, c Category) error { return r.err }
func (r failingRepo) Update(ctx context.Context, c Category) error { return r.err }

func (r failingRepo) FindByIDAndClient(ctx context.Context, id, clientID uuid.UUID) (Category, error) {
	return Category{}, r.err
}

func (r failingRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]Category, int64, error) {
	return nil, 0, r.err
}

func (r *testRepo) ListByClient(ctx context.Context, clientID uuid.UUID, p pagination.Params) ([]Category, int64, error) {
	all := make([]Category, 0)
	for _, c := range r.byID {
		if c.ClientID == clientID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

type knownClients map[uuid.UUID]bool

func (k knownClients) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return k[id], nil
}

func TestCreate_UnknownClient_NotFound(t *testing.T) {
	svc := NewService(newTestRepo(), knownClients{})

	_, err := svc.Create(context.Background(), uuid.New(), "Food")
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_StampsCreatedEqualsUpdated(t *testing.T) {
	clientID := uuid.New()
	svc := NewService(newTestRepo(), knownClients{clientID: true})

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	c, err := svc.Create(context.Background(), clientID, "  Food  ")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if c.CategoryName != "Food" {
		t.Fatalf("expected trimmed name, got %q", c.CategoryName)
	}
	if c.CreatedAt != now || c.UpdatedAt != now {
		t.Fatalf("expected created_at == updated_at == now")
	}
	if c.ClientID != clientID {
		t.Fatalf("expected owner %s, got %s", clientID, c.ClientID)
	}
}

func TestCreate_RejectsEmptyAndOversizedNames(t *testing.T) {
	clientID := uuid.New()
	svc := NewService(newTestRepo(), knownClients{clientID: true})

	if _, err := svc.Create(context.Background(), clientID, "   "); err != ErrInvalidInput {
		t.Fatalf("empty name: expected ErrInvalidInput, got %v", err)
	}
	long := strings.Repeat("x", 101)
	if _, err := svc.Create(context.Background(), clientID, long); err != ErrInvalidInput {
		t.Fatalf("oversized name: expected ErrInvalidInput, got %v", err)
	}
}

func TestCreate_AllowsDuplicateNamesPerClient(t *testing.T) {
	clientID := uuid.New()
	svc := NewService(newTestRepo(), knownClients{clientID: true})

	a, err := svc.Create(context.Background(), clientID, "Food")
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	b, err := svc.Create(context.Background(), clientID, "Food")
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids for duplicate names")
	}
}

func TestUpdate_RenamesAndKeepsCreatedAt(t *testing.T) {
	clientID := uuid.New()
	repo := newTestRepo()
	svc := NewService(repo, knownClients{clientID: true})

	created := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }
	c, _ := svc.Create(context.Background(), clientID, "Food")

	later := created.Add(10 * time.Minute)
	svc.now = func() time.Time { return later }

	updated, err := svc.Update(context.Background(), c.ID, clientID, "Restaurants")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.CategoryName != "Restaurants" {
		t.Fatalf("expected renamed category, got %q", updated.CategoryName)
	}
	if updated.CreatedAt != created {
		t.Fatalf("created_at must be immutable")
	}
	if updated.UpdatedAt != later {
		t.Fatalf("expected updated_at bumped")
	}
}

func TestUpdate_WrongOwner_NotFound(t *testing.T) {
	clientID := uuid.New()
	other := uuid.New()
	svc := NewService(newTestRepo(), knownClients{clientID: true, other: true})

	c, _ := svc.Create(context.Background(), clientID, "Food")

	if _, err := svc.Update(context.Background(), c.ID, other, "Stolen"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for cross-client update, got %v", err)
	}
}

func TestGet_RepoFailure_IsNotNotFound(t *testing.T) {
	clientID := uuid.New()
	errDown := errors.New("repo: connection refused")
	svc := NewService(failingRepo{err: errDown}, knownClients{clientID: true})

	_, err := svc.Get(context.Background(), uuid.New(), clientID)
	if !errors.Is(err, errDown) {
		t.Fatalf("expected infrastructure error propagated, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("infrastructure failure must not look like not-found")
	}
}

func TestUpdate_RepoFailure_IsNotNotFound(t *testing.T) {
	clientID := uuid.New()
	errDown := errors.New("repo: connection refused")
	svc := NewService(failingRepo{err: errDown}, knownClients{clientID: true})

	_, err := svc.Update(context.Background(), uuid.New(), clientID, "Food")
	if !errors.Is(err, errDown) {
		t.Fatalf("expected infrastructure error propagated, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("infrastructure failure must not look like not-found")
	}
}

func TestList_ScopedToClient_NewestFirst(t *testing.T) {
	clientID := uuid.New()
	other := uuid.New()
	svc := NewService(newTestRepo(), knownClients{clientID: true, other: true})

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		svc.now = func() time.Time { return ts }
		if _, err := svc.Create(context.Background(), clientID, "Cat"); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}
	svc.now = func() time.Time { return base }
	_, _ = svc.Create(context.Background(), other, "Ajena")

	page, err := svc.List(context.Background(), clientID, pagination.Params{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if page.TotalElements != 3 {
		t.Fatalf("expected 3 total, got %d", page.TotalElements)
	}
	if page.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", page.TotalPages)
	}
	if len(page.Content) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Content))
	}
	if !page.Content[0].CreatedAt.After(page.Content[1].CreatedAt) {
		t.Fatalf("expected created_at desc order")
	}
	for _, c := range page.Content {
		if c.ClientID != clientID {
			t.Fatalf("cross-client leakage: got category of %s", c.ClientID)
		}
	}
}
