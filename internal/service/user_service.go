// Package service holds the account workflows behind the HTTP handlers.
package service

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/accountly/user-service/internal/events"
	"github.com/accountly/user-service/internal/models"
	"github.com/accountly/user-service/internal/utils"
)

// UserWriteStore is the persistence contract for user mutations and
// full-record lookups.
type UserWriteStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Activate(ctx context.Context, email string) (int64, error)
}

// UserReadStore serves listings and cached single-user views.
type UserReadStore interface {
	GetViewByID(ctx context.Context, id string) (*models.UserView, error)
	List(ctx context.Context, page, perPage int) (*models.Page, error)
	CacheView(ctx context.Context, view *models.UserView)
	InvalidateView(ctx context.Context, userID string)
}

// PhotoStore persists an uploaded photo and returns its public URL.
type PhotoStore interface {
	Store(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error)
}

// Mailer sends the registration-confirmation message.
type Mailer interface {
	SendRegistrationMail(name, email string) error
}

// Publisher appends lifecycle events to the event stream.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// PhotoUpload is the uploaded profile photo as received by the handler.
type PhotoUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// RegisterInput is a validated registration request.
type RegisterInput struct {
	Email    string
	Fullname string
	Password string
	Photo    PhotoUpload
}

// ActivationResult is the pre-activation snapshot returned by Activate.
type ActivationResult struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
}

// UserService orchestrates the photo store, mailer, event stream and the
// two repositories to implement listing, detail, registration and
// activation.
type UserService struct {
	writeRepo UserWriteStore
	readRepo  UserReadStore
	photos    PhotoStore
	mail      Mailer
	publisher Publisher
}

func NewUserService(
	writeRepo UserWriteStore,
	readRepo UserReadStore,
	photos PhotoStore,
	mail Mailer,
	publisher Publisher,
) *UserService {
	return &UserService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		photos:    photos,
		mail:      mail,
		publisher: publisher,
	}
}

// List returns one page of users. Non-positive page or limit values fall
// back to the repository defaults.
func (s *UserService) List(ctx context.Context, page, limit int) (*models.Page, error) {
	return s.readRepo.List(ctx, page, limit)
}

// Detail returns the view of a single user, or repository.ErrNotFound.
func (s *UserService) Detail(ctx context.Context, id string) (*models.UserView, error) {
	return s.readRepo.GetViewByID(ctx, id)
}

// EmailTaken reports whether an email is already registered.
func (s *UserService) EmailTaken(ctx context.Context, email string) (bool, error) {
	return s.writeRepo.EmailTaken(ctx, email)
}

// Register stores the photo, creates the user in an inactive state and sends
// the confirmation mail. A mail failure is returned to the caller but does
// not roll back the created record.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	photoURL, err := s.photos.Store(ctx, in.Photo.Reader, in.Photo.Size, in.Photo.Filename, in.Photo.ContentType)
	if err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Email:        in.Email,
		Fullname:     in.Fullname,
		PasswordHash: passwordHash,
		ProfilePhoto: photoURL,
		Active:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.writeRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.readRepo.CacheView(ctx, user.View())

	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID:   user.ID,
		Email:    user.Email,
		Fullname: user.Fullname,
	}); err != nil {
		log.Printf("Failed to publish user.registered event: %v", err)
	}

	if err := s.mail.SendRegistrationMail(user.Fullname, user.Email); err != nil {
		return nil, err
	}

	return user, nil
}

// Activate marks the account with the given email as active and returns the
// pre-update snapshot. Activating an already-active account succeeds again.
func (s *UserService) Activate(ctx context.Context, email string) (*ActivationResult, error) {
	user, err := s.writeRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if _, err := s.writeRepo.Activate(ctx, email); err != nil {
		return nil, err
	}

	s.readRepo.InvalidateView(ctx, user.ID)

	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserActivated, events.UserActivatedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		log.Printf("Failed to publish user.activated event: %v", err)
	}

	return &ActivationResult{ID: user.ID, Fullname: user.Fullname}, nil
}
