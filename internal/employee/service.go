package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCredentials = errors.New("wrong username or password")
	ErrAccountLocked  = errors.New("account is disabled")
)

type Service struct {
	repo      Repository
	jwtSecret []byte
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewService(repo Repository, jwtSecret string, logger *zap.SugaredLogger) *Service {
	return &Service{repo: repo, jwtSecret: []byte(jwtSecret), logger: logger, now: time.Now}
}

// Login checks the password against the stored bcrypt hash, rejects disabled
// accounts, and issues a token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	e, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(e.Password), []byte(req.Password)) != nil {
		return nil, ErrBadCredentials
	}
	if e.Status == StatusDisabled {
		return nil, ErrAccountLocked
	}
	token, err := GenerateToken(s.jwtSecret, e.ID, e.Username)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	s.logger.Infow("employee logged in", "employee_id", e.ID)
	return &LoginResponse{ID: e.ID, Username: e.Username, Name: e.Name, Token: token}, nil
}

// Create adds an account with the default password, enabled.
func (s *Service) Create(ctx context.Context, req SaveRequest) (int64, error) {
	hash, err := HashPassword(DefaultPassword)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	e := Employee{
		Username: req.Username,
		Name:     req.Name,
		Phone:    req.Phone,
		Password: hash,
		Status:   StatusEnabled,
	}
	e.StampCreate(ctx, s.now())
	if err := s.repo.Insert(ctx, &e); err != nil {
		return 0, err
	}
	s.logger.Infow("employee created", "employee_id", e.ID)
	return e.ID, nil
}

// Update edits name/phone; username is immutable here.
func (s *Service) Update(ctx context.Context, id int64, req SaveRequest) error {
	e := Employee{ID: id, Name: req.Name, Phone: req.Phone, Status: -1}
	e.StampUpdate(ctx, s.now())
	return s.repo.Update(ctx, &e)
}

// SetStatus enables or disables an account.
func (s *Service) SetStatus(ctx context.Context, id int64, status int) error {
	e := Employee{ID: id, Status: status}
	e.StampUpdate(ctx, s.now())
	if err := s.repo.Update(ctx, &e); err != nil {
		return err
	}
	s.logger.Infow("employee status changed", "employee_id", id, "status", status)
	return nil
}

// GetByID returns the account with the password hash masked.
func (s *Service) GetByID(ctx context.Context, id int64) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Password = "****"
	return e, nil
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
