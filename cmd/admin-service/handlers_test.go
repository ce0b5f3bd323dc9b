package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mcruz-dev/takeout-backoffice/internal/dish"
	"github.com/mcruz-dev/takeout-backoffice/internal/report"
)

//
// ---------- STUBS & FAKES ----------
//

// dishStubRepo implements dish.Repository in memory.
type dishStubRepo struct {
	nextID  int64
	dishes  map[int64]*dish.Dish
	flavors map[int64][]dish.Flavor
	deleted []int64
}

func newDishStubRepo() *dishStubRepo {
	return &dishStubRepo{nextID: 1, dishes: map[int64]*dish.Dish{}, flavors: map[int64][]dish.Flavor{}}
}

func (s *dishStubRepo) Insert(ctx context.Context, d *dish.Dish, flavors []dish.Flavor) error {
	d.ID = s.nextID
	s.nextID++
	cp := *d
	s.dishes[d.ID] = &cp
	s.flavors[d.ID] = append([]dish.Flavor(nil), flavors...)
	return nil
}

func (s *dishStubRepo) Update(ctx context.Context, d *dish.Dish, flavors []dish.Flavor) error {
	if _, ok := s.dishes[d.ID]; !ok {
		return dish.ErrNotFound
	}
	cp := *d
	s.dishes[d.ID] = &cp
	s.flavors[d.ID] = append([]dish.Flavor(nil), flavors...)
	return nil
}

func (s *dishStubRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(s.dishes, id)
		s.deleted = append(s.deleted, id)
	}
	return nil
}

func (s *dishStubRepo) GetByID(ctx context.Context, id int64) (*dish.Dish, error) {
	d, ok := s.dishes[id]
	if !ok {
		return nil, dish.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *dishStubRepo) FlavorsByDishID(ctx context.Context, dishID int64) ([]dish.Flavor, error) {
	return s.flavors[dishID], nil
}

func (s *dishStubRepo) ListByIDs(ctx context.Context, ids []int64) ([]dish.Dish, error) {
	var out []dish.Dish
	for _, id := range ids {
		if d, ok := s.dishes[id]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *dishStubRepo) ListByCategory(ctx context.Context, categoryID int64, status int) ([]dish.Dish, error) {
	var out []dish.Dish
	for _, d := range s.dishes {
		if d.CategoryID == categoryID && d.Status == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *dishStubRepo) UpdateStatus(ctx context.Context, id int64, status int, updatedBy int64, at time.Time) error {
	d, ok := s.dishes[id]
	if !ok {
		return dish.ErrNotFound
	}
	d.Status = status
	return nil
}

// noCombos answers the reference check with an empty set.
type noCombos struct{ refs []int64 }

func (n *noCombos) ComboIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error) {
	return n.refs, nil
}

// reportStubRepo returns canned aggregates.
type reportStubRepo struct {
	amountByDay map[string]string // "2024-01-02" -> "100.0"
}

func (s *reportStubRepo) SumOrderAmount(ctx context.Context, begin, end time.Time, status int) (decimal.NullDecimal, error) {
	if raw, ok := s.amountByDay[begin.Format("2006-01-02")]; ok {
		return decimal.NullDecimal{Decimal: decimal.RequireFromString(raw), Valid: true}, nil
	}
	return decimal.NullDecimal{}, nil
}

func (s *reportStubRepo) CountOrders(ctx context.Context, begin, end time.Time, status *int) (int64, error) {
	return 0, nil
}

func (s *reportStubRepo) CountUsersCreatedBetween(ctx context.Context, begin, end time.Time) (int64, error) {
	return 0, nil
}

func (s *reportStubRepo) CountUsersCreatedBefore(ctx context.Context, end time.Time) (int64, error) {
	return 0, nil
}

func (s *reportStubRepo) TopSales(ctx context.Context, begin, end time.Time, limit int) ([]report.ItemSales, error) {
	return nil, nil
}

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

//
// ---------- TESTS ----------
//

func TestCreateDish_HappyPath(t *testing.T) {
	t.Parallel()

	repo := newDishStubRepo()
	svc := dish.NewService(repo, &noCombos{}, testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/dish", createDishHandler(svc))

	body := `{"category_id":1,"name":"Mapo Tofu","price":"12.50","flavors":[{"name":"spiciness","value":"[\"hot\"]"}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/dish", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID == 0 {
		t.Fatalf("bad body %s: %v", w.Body.String(), err)
	}
	if len(repo.flavors[resp.ID]) != 1 {
		t.Fatalf("flavors not persisted with the dish")
	}
}

func TestDeleteDishes_OnSaleConflict(t *testing.T) {
	t.Parallel()

	repo := newDishStubRepo()
	repo.dishes[1] = &dish.Dish{ID: 1, Name: "A", Status: dish.StatusEnabled}
	repo.nextID = 2
	svc := dish.NewService(repo, &noCombos{}, testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/admin/dish", deleteDishesHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/dish?ids=1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (expected 409)", w.Code, w.Body.String())
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("deleted=%v, expected nothing", repo.deleted)
	}
}

func TestDeleteDishes_ComboReferenceConflict(t *testing.T) {
	t.Parallel()

	repo := newDishStubRepo()
	repo.dishes[1] = &dish.Dish{ID: 1, Name: "A", Status: dish.StatusDisabled}
	svc := dish.NewService(repo, &noCombos{refs: []int64{5}}, testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/admin/dish", deleteDishesHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/admin/dish?ids=1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s (expected 409)", w.Code, w.Body.String())
	}
}

func TestGetDish_NotFound(t *testing.T) {
	t.Parallel()

	svc := dish.NewService(newDishStubRepo(), &noCombos{}, testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/dish/:id", getDishHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dish/404", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (expected 404)", w.Code, w.Body.String())
	}
}

func TestTurnoverReport_SeriesOverHTTP(t *testing.T) {
	t.Parallel()

	svc := report.NewService(&reportStubRepo{amountByDay: map[string]string{"2024-01-02": "100.0"}}, testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/report/turnover", turnoverHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/report/turnover?begin=2024-01-01&end=2024-01-03", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Dates   []string `json:"dates"`
		Amounts []string `json:"amounts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(resp.Dates) != 3 || len(resp.Amounts) != 3 {
		t.Fatalf("series lengths %d/%d, expected 3/3. body=%s", len(resp.Dates), len(resp.Amounts), w.Body.String())
	}
	if resp.Amounts[1] != "100.0" {
		t.Fatalf("amounts=%v, expected the middle day at 100.0", resp.Amounts)
	}
	if resp.Amounts[0] != "0" || resp.Amounts[2] != "0" {
		t.Fatalf("amounts=%v, expected empty days normalized to 0", resp.Amounts)
	}
}

func TestTurnoverReport_InvertedRange(t *testing.T) {
	t.Parallel()

	svc := report.NewService(&reportStubRepo{}, testLogger())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/report/turnover", turnoverHandler(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/report/turnover?begin=2024-01-03&end=2024-01-01", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (expected 400)", w.Code, w.Body.String())
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
