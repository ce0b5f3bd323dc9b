package combo

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"go.uber.org/zap"
)

// stubRepo implements Repository in memory. Dishes are seeded directly so the
// enable guard can be exercised without a dish store.
type stubRepo struct {
	nextID     int64
	combos     map[int64]*Combo
	items      map[int64][]Item
	dishes     map[int64]RefDish // dish id -> row
	deleted    []int64
	failDelete error // when set, DeleteBatch fails without applying anything
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		nextID: 1,
		combos: map[int64]*Combo{},
		items:  map[int64][]Item{},
		dishes: map[int64]RefDish{},
	}
}

func (s *stubRepo) Insert(ctx context.Context, c *Combo, items []Item) error {
	c.ID = s.nextID
	s.nextID++
	cp := *c
	s.combos[c.ID] = &cp
	for i := range items {
		items[i].ComboID = c.ID
	}
	s.items[c.ID] = append([]Item(nil), items...)
	return nil
}

func (s *stubRepo) Update(ctx context.Context, c *Combo, items []Item) error {
	old, ok := s.combos[c.ID]
	if !ok {
		return ErrNotFound
	}
	cp := *c
	cp.Status = old.Status
	s.combos[c.ID] = &cp
	for i := range items {
		items[i].ComboID = c.ID
	}
	s.items[c.ID] = append([]Item(nil), items...)
	return nil
}

func (s *stubRepo) DeleteBatch(ctx context.Context, ids []int64) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	for _, id := range ids {
		delete(s.combos, id)
		delete(s.items, id)
		s.deleted = append(s.deleted, id)
	}
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id int64) (*Combo, error) {
	c, ok := s.combos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubRepo) ItemsByComboID(ctx context.Context, comboID int64) ([]Item, error) {
	return append([]Item(nil), s.items[comboID]...), nil
}

func (s *stubRepo) DishesForCombo(ctx context.Context, comboID int64) ([]RefDish, error) {
	var out []RefDish
	for _, it := range s.items[comboID] {
		if d, ok := s.dishes[it.DishID]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubRepo) DishOptionsByComboID(ctx context.Context, comboID int64) ([]DishOption, error) {
	var out []DishOption
	for _, it := range s.items[comboID] {
		out = append(out, DishOption{Name: it.Name, Copies: it.Copies})
	}
	return out, nil
}

func (s *stubRepo) ComboIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error) {
	seen := map[int64]bool{}
	var out []int64
	for comboID, items := range s.items {
		for _, it := range items {
			for _, dishID := range dishIDs {
				if it.DishID == dishID && !seen[comboID] {
					seen[comboID] = true
					out = append(out, comboID)
				}
			}
		}
	}
	return out, nil
}

func (s *stubRepo) ListByCategory(ctx context.Context, categoryID int64, status int) ([]Combo, error) {
	var out []Combo
	for _, c := range s.combos {
		if c.CategoryID == categoryID && c.Status == status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateStatus(ctx context.Context, id int64, status int, updatedBy int64, at time.Time) error {
	c, ok := s.combos[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	return nil
}

func mustCreate(t *testing.T, svc *Service, req SaveRequest) int64 {
	t.Helper()
	id, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create combo: %v", err)
	}
	return id
}

func TestCreateRoundTripPreservesItemSet(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	id := mustCreate(t, svc, SaveRequest{
		CategoryID: 3, Name: "Family Feast", Price: "39.90",
		Items: []ItemInput{
			{DishID: 7, Name: "Mapo Tofu", Price: "12.50", Copies: 2},
			{DishID: 4, Name: "Rice", Price: "2.00", Copies: 4},
		},
	})

	view, err := svc.Detail(context.Background(), id)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(view.Items) != 2 {
		t.Fatalf("items len=%d, expected 2", len(view.Items))
	}
	got := map[int64]int{}
	for _, it := range view.Items {
		if it.ComboID != id {
			t.Fatalf("item combo_id=%d, expected %d", it.ComboID, id)
		}
		got[it.DishID] = it.Copies
	}
	if got[7] != 2 || got[4] != 4 {
		t.Fatalf("item set %v does not match input", got)
	}
}

func TestUpdateReplacesItemSet(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	id := mustCreate(t, svc, SaveRequest{
		CategoryID: 3, Name: "Feast", Price: "30.00",
		Items: []ItemInput{{DishID: 7, Name: "Mapo Tofu", Price: "12.50", Copies: 1}},
	})

	if err := svc.Update(context.Background(), id, SaveRequest{
		CategoryID: 3, Name: "Feast", Price: "30.00",
		Items: []ItemInput{{DishID: 9, Name: "Dumplings", Price: "8.00", Copies: 3}},
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	view, err := svc.Detail(context.Background(), id)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].DishID != 9 {
		t.Fatalf("items=%v, expected only dish 9", view.Items)
	}
}

func TestDeleteBatchRejectsOnSaleAndDeletesNothing(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	a := mustCreate(t, svc, SaveRequest{CategoryID: 3, Name: "A", Price: "10.00"})
	b := mustCreate(t, svc, SaveRequest{CategoryID: 3, Name: "B", Price: "20.00"})
	repo.combos[b].Status = StatusEnabled

	err := svc.DeleteBatch(context.Background(), []int64{a, b})
	if !errors.Is(err, ErrOnSale) {
		t.Fatalf("err=%v, expected ErrOnSale", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("deleted=%v, expected no deletions", repo.deleted)
	}
}

func TestDeleteBatchRemovesCombosAndItems(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	a := mustCreate(t, svc, SaveRequest{
		CategoryID: 3, Name: "A", Price: "10.00",
		Items: []ItemInput{{DishID: 7, Name: "Mapo Tofu", Price: "12.50", Copies: 1}},
	})
	b := mustCreate(t, svc, SaveRequest{CategoryID: 3, Name: "B", Price: "20.00"})

	if err := svc.DeleteBatch(context.Background(), []int64{a, b}); err != nil {
		t.Fatalf("delete batch: %v", err)
	}
	want := []int64{a, b}
	sort.Slice(repo.deleted, func(i, j int) bool { return repo.deleted[i] < repo.deleted[j] })
	if len(repo.deleted) != 2 || repo.deleted[0] != want[0] || repo.deleted[1] != want[1] {
		t.Fatalf("deleted=%v, expected %v", repo.deleted, want)
	}
	if len(repo.items[a]) != 0 {
		t.Fatalf("items survived the combo delete")
	}
}

func TestDeleteBatchFailureLeavesEveryComboInPlace(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	a := mustCreate(t, svc, SaveRequest{CategoryID: 3, Name: "A", Price: "10.00"})
	b := mustCreate(t, svc, SaveRequest{CategoryID: 3, Name: "B", Price: "20.00"})
	repo.failDelete = errors.New("connection reset")

	if err := svc.DeleteBatch(context.Background(), []int64{a, b}); err == nil {
		t.Fatal("expected the batch delete to fail")
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("deleted=%v, expected the failed batch to apply nothing", repo.deleted)
	}
	for _, id := range []int64{a, b} {
		if _, err := svc.Detail(context.Background(), id); err != nil {
			t.Fatalf("combo %d should survive the failed batch: %v", id, err)
		}
	}
}

func TestEnableFailsWhenAnyDishDisabled(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	id := mustCreate(t, svc, SaveRequest{
		CategoryID: 3, Name: "Feast", Price: "30.00",
		Items: []ItemInput{
			{DishID: 7, Name: "Mapo Tofu", Price: "12.50", Copies: 1},
			{DishID: 9, Name: "Dumplings", Price: "8.00", Copies: 1},
		},
	})
	repo.dishes[7] = RefDish{ID: 7, Name: "Mapo Tofu", Status: StatusEnabled}
	repo.dishes[9] = RefDish{ID: 9, Name: "Dumplings", Status: StatusDisabled}

	err := svc.SetStatus(context.Background(), id, StatusEnabled)
	if !errors.Is(err, ErrEnableFailed) {
		t.Fatalf("err=%v, expected ErrEnableFailed", err)
	}
	if repo.combos[id].Status != StatusDisabled {
		t.Fatal("combo status was written despite the failed guard")
	}
}

func TestEnableSucceedsWhenAllDishesEnabled(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	id := mustCreate(t, svc, SaveRequest{
		CategoryID: 3, Name: "Feast", Price: "30.00",
		Items: []ItemInput{{DishID: 7, Name: "Mapo Tofu", Price: "12.50", Copies: 1}},
	})
	repo.dishes[7] = RefDish{ID: 7, Name: "Mapo Tofu", Status: StatusEnabled}

	if err := svc.SetStatus(context.Background(), id, StatusEnabled); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if repo.combos[id].Status != StatusEnabled {
		t.Fatal("status not persisted")
	}
}

func TestDisableSkipsDishGuard(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, zap.NewNop().Sugar())

	id := mustCreate(t, svc, SaveRequest{
		CategoryID: 3, Name: "Feast", Price: "30.00",
		Items: []ItemInput{{DishID: 9, Name: "Dumplings", Price: "8.00", Copies: 1}},
	})
	repo.dishes[9] = RefDish{ID: 9, Name: "Dumplings", Status: StatusDisabled}

	if err := svc.SetStatus(context.Background(), id, StatusDisabled); err != nil {
		t.Fatalf("disable should not consult dishes: %v", err)
	}
}
