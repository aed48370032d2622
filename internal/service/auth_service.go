package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

// AuthService authenticates users, mints session tokens and manages user
// accounts on behalf of administrators.
type AuthService struct {
	users      *repository.UserRepo
	secret     string
	ttl        time.Duration
	bcryptCost int
	log        *zap.Logger
}

// NewAuthService wires an AuthService.  secret signs session tokens that
// live for ttl.
func NewAuthService(users *repository.UserRepo, secret string, ttl time.Duration, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, bcryptCost: bcryptCost, log: log}
}

// Session is the result of a successful login.
type Session struct {
	User  model.PublicUser
	Token utils.AccessToken
}

// Login verifies credentials and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	return s.login(ctx, email, password, false)
}

// AdminLogin is Login restricted to administrators.
func (s *AuthService) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	return s.login(ctx, email, password, true)
}

func (s *AuthService) login(ctx context.Context, email, password string, adminOnly bool) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, validationError("Email and password are required")
	}
	rejected := "Invalid credentials"
	if adminOnly {
		rejected = "Invalid admin credentials"
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalidCredentials(rejected)
	}
	if err != nil {
		return nil, persistence("could not load user", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, invalidCredentials(rejected)
	}
	if adminOnly && u.Role != model.RoleAdmin {
		return nil, invalidCredentials(rejected)
	}
	tok, err := utils.NewAccessToken(s.secret, u.ID, u.Role, s.ttl)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "could not issue token", Err: err}
	}
	s.log.Info("user logged in", zap.Uint64("user_id", u.ID), zap.String("role", u.Role))
	return &Session{User: ToPublic(u), Token: tok}, nil
}

// Register creates a user with role "user".
func (s *AuthService) Register(ctx context.Context, name, email, password string) (model.PublicUser, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return model.PublicUser{}, validationError("Name, email and password are required")
	}
	return s.create(ctx, name, email, password, model.RoleUser)
}

// UserInput carries the fields an administrator may set on a user.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ListUsers returns every user without credentials.
func (s *AuthService) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, persistence("could not list users", err)
	}
	out := make([]model.PublicUser, 0, len(users))
	if err := copier.Copy(&out, &users); err != nil {
		return nil, &Error{Kind: KindInternal, Message: "could not map users", Err: err}
	}
	return out, nil
}

// GetUser returns one user without credentials.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (model.PublicUser, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.PublicUser{}, notFound("User not found")
	}
	if err != nil {
		return model.PublicUser{}, persistence("could not load user", err)
	}
	return ToPublic(u), nil
}

// CurrentRole returns the stored role of a user, or "" when the user no
// longer exists.
func (s *AuthService) CurrentRole(ctx context.Context, id uint64) (string, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", persistence("could not load user", err)
	}
	return u.Role, nil
}

// CreateUser creates a user on behalf of an administrator.  Role defaults
// to "user".
func (s *AuthService) CreateUser(ctx context.Context, in UserInput) (model.PublicUser, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return model.PublicUser{}, validationError("Name, email and password are required")
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return model.PublicUser{}, err
	}
	return s.create(ctx, in.Name, in.Email, in.Password, role)
}

// UpdateUser rewrites name, email and role and, when given, the password.
func (s *AuthService) UpdateUser(ctx context.Context, id uint64, in UserInput) (model.PublicUser, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		return model.PublicUser{}, validationError("Name and email are required")
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return model.PublicUser{}, err
	}
	taken, err := s.users.EmailTaken(ctx, in.Email, id)
	if err != nil {
		return model.PublicUser{}, persistence("could not check email", err)
	}
	if taken {
		return model.PublicUser{}, conflict("User already exists")
	}
	err = s.users.Update(ctx, id, in.Name, in.Email, role, in.Password, s.bcryptCost)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return model.PublicUser{}, notFound("User not found")
	case errors.Is(err, repository.ErrEmailExists):
		return model.PublicUser{}, conflict("User already exists")
	case err != nil:
		return model.PublicUser{}, persistence("could not update user", err)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser hard-deletes a user.
func (s *AuthService) DeleteUser(ctx context.Context, id uint64) error {
	err := s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("User not found")
	}
	if errors.Is(err, repository.ErrInUse) {
		return conflict("User has bookings and cannot be deleted")
	}
	if err != nil {
		return persistence("could not delete user", err)
	}
	s.log.Info("user deleted", zap.Uint64("user_id", id))
	return nil
}

func (s *AuthService) create(ctx context.Context, name, email, password, role string) (model.PublicUser, error) {
	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return model.PublicUser{}, persistence("could not check email", err)
	}
	if taken {
		return model.PublicUser{}, conflict("User already exists")
	}
	id, err := s.users.Create(ctx, name, email, password, role, s.bcryptCost)
	if errors.Is(err, repository.ErrEmailExists) {
		return model.PublicUser{}, conflict("User already exists")
	}
	if err != nil {
		return model.PublicUser{}, persistence("could not create user", err)
	}
	s.log.Info("user created", zap.Uint64("user_id", id), zap.String("role", role))
	return model.PublicUser{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Email: strings.ToLower(strings.TrimSpace(email)),
		Role:  role,
	}, nil
}

func normalizeRole(role string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "", model.RoleUser:
		return model.RoleUser, nil
	case model.RoleAdmin:
		return model.RoleAdmin, nil
	}
	return "", validationError("role must be admin or user")
}

// ToPublic strips credentials from a user record.
func ToPublic(u model.User) model.PublicUser {
	var p model.PublicUser
	_ = copier.Copy(&p, &u)
	return p
}
