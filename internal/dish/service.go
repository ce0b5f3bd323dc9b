package dish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mcruz-dev/takeout-backoffice/internal/operator"
)

var (
	// ErrOnSale rejects deleting a dish that is still enabled.
	ErrOnSale = errors.New("dish is on sale")
	// ErrReferencedByCombo rejects deleting a dish still linked to a combo.
	ErrReferencedByCombo = errors.New("dish is referenced by a combo")
)

// ComboRefs is the slice of the combo store this engine needs: set-membership
// of dish ids across all combo items, answered in one query.
type ComboRefs interface {
	ComboIDsByDishIDs(ctx context.Context, dishIDs []int64) ([]int64, error)
}

type Service struct {
	repo   Repository
	combos ComboRefs
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewService(repo Repository, combos ComboRefs, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, combos: combos, logger: logger, now: time.Now}
}

// Create inserts the dish and its flavors atomically and returns the new id.
// An empty flavor set is fine.
func (s *Service) Create(ctx context.Context, req SaveRequest) (int64, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", req.Price, err)
	}
	d := Dish{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Status:      StatusDisabled,
	}
	d.StampCreate(ctx, s.now())

	if err := s.repo.Insert(ctx, &d, flavorsFromInputs(req.Flavors)); err != nil {
		return 0, fmt.Errorf("insert dish: %w", err)
	}
	s.logger.Infow("dish created", "dish_id", d.ID, "flavors", len(req.Flavors))
	return d.ID, nil
}

// Update rewrites the dish fields and replaces the whole flavor set. Passing
// no flavors makes the dish flavorless.
func (s *Service) Update(ctx context.Context, id int64, req SaveRequest) error {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", req.Price, err)
	}
	d := Dish{
		ID:          id,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
	}
	d.StampUpdate(ctx, s.now())

	if err := s.repo.Update(ctx, &d, flavorsFromInputs(req.Flavors)); err != nil {
		return err
	}
	s.logger.Infow("dish updated", "dish_id", id)
	return nil
}

// DeleteBatch removes the given dishes and their flavors. Every guard runs
// before the first delete: if any dish is enabled, or any dish is referenced
// by any combo item, nothing in the batch is deleted.
func (s *Service) DeleteBatch(ctx context.Context, ids []int64) error {
	// one read for the whole batch; a missing id fails it
	dishes, err := s.repo.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load dishes: %w", err)
	}
	if len(dishes) != len(ids) {
		return ErrNotFound
	}
	for _, d := range dishes {
		if d.Status == StatusEnabled {
			return ErrOnSale
		}
	}
	// one membership query for the whole batch, not one per id
	comboIDs, err := s.combos.ComboIDsByDishIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("check combo references: %w", err)
	}
	if len(comboIDs) > 0 {
		return ErrReferencedByCombo
	}

	if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete dishes: %w", err)
	}
	s.logger.Infow("dishes deleted", "ids", ids)
	return nil
}

// Detail joins the dish row with its flavor list.
func (s *Service) Detail(ctx context.Context, id int64) (*View, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	flavors, err := s.repo.FlavorsByDishID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flavors == nil {
		flavors = []Flavor{}
	}
	return &View{Dish: *d, Flavors: flavors}, nil
}

// ListByCategory returns only enabled dishes; the status filter is this
// engine's narrowing, not the caller's.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Dish, error) {
	return s.repo.ListByCategory(ctx, categoryID, StatusEnabled)
}

// SetStatus is a plain partial update. Disabling a dish does not re-validate
// combos that already reference it while enabled; the guard only runs when a
// combo is being enabled. Kept as-is pending a product decision.
func (s *Service) SetStatus(ctx context.Context, id int64, status int) error {
	if err := s.repo.UpdateStatus(ctx, id, status, operator.FromContext(ctx), s.now()); err != nil {
		return err
	}
	s.logger.Infow("dish status changed", "dish_id", id, "status", status)
	return nil
}

func flavorsFromInputs(in []FlavorInput) []Flavor {
	out := make([]Flavor, 0, len(in))
	for _, f := range in {
		out = append(out, Flavor{Name: f.Name, Value: f.Value})
	}
	return out
}
