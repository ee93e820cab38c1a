package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SumanthCsy/Mens-Club-sub000/app/docstore"
	"github.com/SumanthCsy/Mens-Club-sub000/app/models"
	"github.com/SumanthCsy/Mens-Club-sub000/app/repositories"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type SignUpInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,numeric,min=10,max=13"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	validate *validator.Validate
	cost     int
	now      func() time.Time
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, validate *validator.Validate) *AuthService {
	return &AuthService{userRepo: userRepo, validate: validate, cost: bcrypt.DefaultCost, now: time.Now}
}

func (s *AuthService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = models.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	email := in.Email
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, persistence("AuthService.SignUp", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &models.User{
		Name:         in.Name,
		Email:        email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         models.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, persistence("AuthService.SignUp", err)
	}
	zap.S().Infof("AuthService.SignUp: user %s registered", user.ID)
	return user, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, persistence("AuthService.SignIn", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		zap.S().Debugf("AuthService.SignIn: password mismatch for %s", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, ErrNotAuthenticated
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, persistence("AuthService.CurrentUser", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword re-verifies the current password before replacing it.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if len(next) < 8 || len(next) > 72 {
		return fmt.Errorf("%w: new password must be 8 to 72 characters", ErrInvalidInput)
	}
	hash, err := s.hash(next)
	if err != nil {
		return err
	}
	err = s.userRepo.Update(ctx, userID,
		docstore.Set("passwordHash", hash),
		docstore.Set("updatedAt", s.now()),
	)
	if err != nil {
		return persistence("AuthService.ChangePassword", err)
	}
	return nil
}

// SetRole is an admin operation; admins cannot demote themselves.
func (s *AuthService) SetRole(ctx context.Context, actor *models.User, userID, role string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if actor.ID == userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot remove your own admin role", ErrAccessDenied)
	}
	err := s.userRepo.Update(ctx, userID, docstore.Set("role", role), docstore.Set("updatedAt", s.now()))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, persistence("AuthService.SetRole", err)
	}
	return s.CurrentUser(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, persistence("AuthService.ListUsers", err)
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

// EnsureAdmin creates or promotes the admin account used by the seeder.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, persistence("AuthService.EnsureAdmin", err)
	}
	if existing != nil {
		if existing.Role != models.RoleAdmin {
			if err := s.userRepo.Update(ctx, existing.ID, docstore.Set("role", models.RoleAdmin)); err != nil {
				return nil, persistence("AuthService.EnsureAdmin", err)
			}
			existing.Role = models.RoleAdmin
		}
		return existing, nil
	}
	user, err := s.SignUp(ctx, SignUpInput{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user.ID, docstore.Set("role", models.RoleAdmin)); err != nil {
		return nil, persistence("AuthService.EnsureAdmin", err)
	}
	user.Role = models.RoleAdmin
	return user, nil
}
