package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayBooker/internal/lib/logger/sl"
	"stayBooker/internal/lib/session"
	"stayBooker/internal/models"
	"stayBooker/internal/storage"
)

var ErrWrongPassword = errors.New("password is wrong")

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=UserStorage
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	Issue(claims session.Claims) (string, error)
}

// Service owns user registration and password login.
type Service struct {
	log    *slog.Logger
	users  UserStorage
	hasher PasswordHasher
	tokens TokenIssuer
}

func New(log *slog.Logger, users UserStorage, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{
		log:    log,
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register stores a new user with a hashed password. It fails with
// storage.ErrEmailExists when the email is taken.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "services.credentials.Register"

	log := s.log.With(slog.String("op", op), slog.String("email", email))

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}

	if err = s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			log.Info("email already registered")
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailExists)
		}

		log.Error("failed to create user", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("id", user.ID.Hex()))

	return user, nil
}

// Login checks the password and returns a session token together with the
// stored user. Unknown emails fail with storage.ErrUserNotFound, bad
// passwords with ErrWrongPassword.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "services.credentials.Login"

	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Info("user not found")
			return "", nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.hasher.Compare(user.Password, password) {
		log.Info("wrong password")
		return "", nil, fmt.Errorf("%s: %w", op, ErrWrongPassword)
	}

	token, err := s.tokens.Issue(session.Claims{
		Email: user.Email,
		ID:    user.ID.Hex(),
		Name:  user.Name,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("id", user.ID.Hex()))

	return token, user, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}

// FindByID looks a user up by the hex id carried in session claims.
func (s *Service) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "services.credentials.FindByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	user, err := s.users.GetUserByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
