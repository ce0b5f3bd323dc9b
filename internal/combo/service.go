package combo

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
	// ErrOnSale rejects deleting a combo that is still enabled.
	ErrOnSale = errors.New("combo is on sale")
	// ErrEnableFailed rejects enabling a combo that references a disabled dish.
	ErrEnableFailed = errors.New("combo references a disabled dish")
)

type Service struct {
	repo   Repository
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create inserts the combo and its dish associations atomically and returns
// the new id.
func (s *Service) Create(ctx context.Context, req SaveRequest) (int64, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", req.Price, err)
	}
	items, err := itemsFromInputs(req.Items)
	if err != nil {
		return 0, err
	}
	c := Combo{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Status:      StatusDisabled,
	}
	c.StampCreate(ctx, s.now())

	if err := s.repo.Insert(ctx, &c, items); err != nil {
		return 0, fmt.Errorf("insert combo: %w", err)
	}
	s.logger.Infow("combo created", "combo_id", c.ID, "items", len(items))
	return c.ID, nil
}

// Update rewrites the combo fields and replaces the whole item set.
func (s *Service) Update(ctx context.Context, id int64, req SaveRequest) error {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", req.Price, err)
	}
	items, err := itemsFromInputs(req.Items)
	if err != nil {
		return err
	}
	c := Combo{
		ID:          id,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
	}
	c.StampUpdate(ctx, s.now())

	if err := s.repo.Update(ctx, &c, items); err != nil {
		return err
	}
	s.logger.Infow("combo updated", "combo_id", id)
	return nil
}

// DeleteBatch removes the given combos and their items. The on-sale guard
// runs for every id before the first delete, and the deletes themselves
// commit or roll back as one unit.
func (s *Service) DeleteBatch(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		c, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c.Status == StatusEnabled {
			return ErrOnSale
		}
	}
	if err := s.repo.DeleteBatch(ctx, ids); err != nil {
		return fmt.Errorf("delete combos: %w", err)
	}
	s.logger.Infow("combos deleted", "ids", ids)
	return nil
}

// Detail joins the combo row with its item list.
func (s *Service) Detail(ctx context.Context, id int64) (*View, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ItemsByComboID(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return &View{Combo: *c, Items: items}, nil
}

// SetStatus updates the combo's on-sale status. Enabling first loads every
// referenced dish; one disabled dish fails the whole transition with nothing
// written. The guard runs only here, not when a dish is disabled later.
func (s *Service) SetStatus(ctx context.Context, id int64, status int) error {
	if status == StatusEnabled {
		dishes, err := s.repo.DishesForCombo(ctx, id)
		if err != nil {
			return fmt.Errorf("load combo dishes: %w", err)
		}
		for _, d := range dishes {
			if d.Status == StatusDisabled {
				return ErrEnableFailed
			}
		}
	}
	if err := s.repo.UpdateStatus(ctx, id, status, operator.FromContext(ctx), s.now()); err != nil {
		return err
	}
	s.logger.Infow("combo status changed", "combo_id", id, "status", status)
	return nil
}

// ListByCategory returns only enabled combos for the category.
func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]Combo, error) {
	return s.repo.ListByCategory(ctx, categoryID, StatusEnabled)
}

// DishOptions lists the dishes inside a combo for the customer menu.
func (s *Service) DishOptions(ctx context.Context, comboID int64) ([]DishOption, error) {
	return s.repo.DishOptionsByComboID(ctx, comboID)
}

func itemsFromInputs(in []ItemInput) ([]Item, error) {
	out := make([]Item, 0, len(in))
	for _, it := range in {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid item price %q: %w", it.Price, err)
		}
		out = append(out, Item{DishID: it.DishID, Name: it.Name, Price: price, Copies: it.Copies})
	}
	return out, nil
}
