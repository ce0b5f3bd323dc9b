package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcruz-dev/takeout-backoffice/internal/combo"
	"github.com/mcruz-dev/takeout-backoffice/internal/dish"
)

var (
	// ErrBadItem rejects a request naming neither or both of dish and combo.
	ErrBadItem = errors.New("exactly one of dish_id or combo_id is required")
)

// DishCatalog and ComboCatalog supply the name/price/image snapshot taken at
// add time; a line is never re-priced after that.
type DishCatalog interface {
	GetByID(ctx context.Context, id int64) (*dish.Dish, error)
}

type ComboCatalog interface {
	GetByID(ctx context.Context, id int64) (*combo.Combo, error)
}

type Service struct {
	repo   Repository
	dishes DishCatalog
	combos ComboCatalog
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewService(repo Repository, dishes DishCatalog, combos ComboCatalog, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, dishes: dishes, combos: combos, logger: logger, now: time.Now}
}

// Add merges the item into the user's cart. An existing line with the same
// identity gets its quantity bumped; otherwise a new line is inserted with a
// snapshot of the current dish or combo row.
func (s *Service) Add(ctx context.Context, userID int64, req AddRequest) (*Line, error) {
	if (req.DishID == nil) == (req.ComboID == nil) {
		return nil, ErrBadItem
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	existing, err := s.repo.FindByIdentity(ctx, userID, req.DishID, req.ComboID, req.Flavor)
	switch {
	case err == nil:
		existing.Quantity += qty
		if err := s.repo.UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, fmt.Errorf("bump quantity: %w", err)
		}
		return existing, nil
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	line := Line{
		ID:        uuid.NewString(),
		UserID:    userID,
		DishID:    req.DishID,
		ComboID:   req.ComboID,
		Flavor:    req.Flavor,
		Quantity:  qty,
		CreatedAt: s.now(),
	}
	if req.DishID != nil {
		d, err := s.dishes.GetByID(ctx, *req.DishID)
		if err != nil {
			return nil, err
		}
		line.Name = d.Name
		line.UnitPrice = d.Price
		line.Image = d.Image
	} else {
		c, err := s.combos.GetByID(ctx, *req.ComboID)
		if err != nil {
			return nil, err
		}
		line.Name = c.Name
		line.UnitPrice = c.Price
		line.Image = c.Image
	}

	if err := s.repo.Insert(ctx, &line); err != nil {
		return nil, fmt.Errorf("insert cart line: %w", err)
	}
	s.logger.Infow("cart line added", "user_id", userID, "line_id", line.ID)
	return &line, nil
}

func (s *Service) RemoveLine(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}

// Clear empties the user's cart; clearing an empty cart is not an error.
func (s *Service) Clear(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUserID(ctx, userID)
}

func (s *Service) List(ctx context.Context, userID int64) ([]Line, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}
