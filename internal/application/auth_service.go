package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-service/internal/domain/entity"
	repo "github.com/oksasatya/go-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-auth-service/pkg/helpers"
	"github.com/oksasatya/go-auth-service/pkg/metrics"
	"github.com/oksasatya/go-auth-service/pkg/validation"
)

// EventUserRegistered is the message type of UserRegistered events.
const EventUserRegistered = "user.registered"

const publishTimeout = 3 * time.Second

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
}

// EventPublisher delivers domain events. Delivery is best effort.
type EventPublisher interface {
	PublishJSON(ctx context.Context, eventType string, body any) error
}

type RegisterResult struct {
	Message string
	UserID  string
}

type LoginResult struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// UserRegistered is published after a successful registration.
type UserRegistered struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	At       time.Time `json:"at"`
}

type Service struct {
	Repo    repo.UserRepository
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Logger  *logrus.Logger
	Events  EventPublisher
	Metrics *metrics.Metrics

	caseSensitive bool
	unifyErrors   bool
	dummyHash     string
}

type Option func(*Service)

// WithEvents enables UserRegistered publishing.
func WithEvents(p EventPublisher) Option {
	return func(s *Service) { s.Events = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.Metrics = m }
}

// WithCaseInsensitiveUserNames folds user names to lower case before
// any lookup or write.
func WithCaseInsensitiveUserNames() Option {
	return func(s *Service) { s.caseSensitive = false }
}

// WithUnifiedLoginErrors makes unknown-user and wrong-password failures
// indistinguishable in both message and bcrypt work.
func WithUnifiedLoginErrors() Option {
	return func(s *Service) { s.unifyErrors = true }
}

func NewService(users repo.UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	s := &Service{
		Repo:          users,
		Hasher:        hasher,
		Tokens:        tokens,
		Logger:        logger,
		caseSensitive: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.unifyErrors {
		// Verified against on unknown users so both failure paths cost one bcrypt compare.
		h, err := hasher.Hash(uuid.NewString())
		if err != nil {
			logger.WithError(err).Warn("dummy hash unavailable, unknown-user logins will return faster")
		}
		s.dummyHash = h
	}
	return s
}

func (s *Service) normalize(userName string) string {
	if s.caseSensitive {
		return userName
	}
	return strings.ToLower(userName)
}

// Register validates the credentials and creates a user.
func (s *Service) Register(ctx context.Context, userName, password string) (*RegisterResult, error) {
	res, err := s.register(ctx, userName, password)
	s.Metrics.ObserveRegister(resultLabel(err))
	return res, err
}

func (s *Service) register(ctx context.Context, userName, password string) (*RegisterResult, error) {
	if errs := validation.ValidateRegister(validation.Credentials{UserName: userName, Password: password}); len(errs) > 0 {
		return nil, ValidationError(errs)
	}
	name := s.normalize(userName)
	log := s.Logger.WithField("user_name", name)

	_, err := s.Repo.FindByUserName(ctx, name)
	switch {
	case err == nil:
		log.Info("register rejected: user name taken")
		return nil, ConflictError(MsgUserExists)
	case !errors.Is(err, repo.ErrUserNotFound):
		helpers.LogError(log, "register: lookup failed", err, nil)
		return nil, InternalError(err)
	}

	hash, err := s.Hasher.Hash(password)
	if err != nil {
		if errors.Is(err, helpers.ErrPasswordTooLong) {
			return nil, ValidationError([]validation.FieldError{{Field: "password", Msg: MsgPasswordTooLong}})
		}
		helpers.LogError(log, "register: hash failed", err, nil)
		return nil, InternalError(err)
	}

	u := &entity.User{UserName: name, PasswordHash: hash}
	if err := s.Repo.Insert(ctx, u); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			log.Info("register rejected: user name taken concurrently")
			return nil, ConflictError(MsgUserExists)
		}
		helpers.LogError(log, "register: insert failed", err, nil)
		return nil, InternalError(err)
	}

	log.WithField("user_id", u.ID).Info("user registered")
	s.publishRegistered(ctx, u)
	return &RegisterResult{Message: MsgRegistered, UserID: u.ID}, nil
}

func (s *Service) publishRegistered(ctx context.Context, u *entity.User) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := UserRegistered{UserID: u.ID, UserName: u.UserName, At: u.CreatedAt}
	if err := s.Events.PublishJSON(ctx, EventUserRegistered, ev); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("publish user registered event failed")
	}
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	res, err := s.login(ctx, userName, password)
	s.Metrics.ObserveLogin(resultLabel(err))
	return res, err
}

func (s *Service) login(ctx context.Context, userName, password string) (*LoginResult, error) {
	if errs := validation.ValidateLogin(validation.Credentials{UserName: userName, Password: password}); len(errs) > 0 {
		return nil, ValidationError(errs)
	}
	name := s.normalize(userName)
	log := s.Logger.WithField("user_name", name)

	u, err := s.Repo.FindByUserName(ctx, name)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			log.Info("login rejected: unknown user")
			if s.unifyErrors {
				if s.dummyHash != "" {
					_, _ = s.Hasher.Verify(password, s.dummyHash)
				}
				return nil, AuthError(MsgInvalidCredentials)
			}
			return nil, AuthError(MsgUserNotFound)
		}
		helpers.LogError(log, "login: lookup failed", err, nil)
		return nil, InternalError(err)
	}

	ok, err := s.Hasher.Verify(password, u.PasswordHash)
	if err != nil {
		helpers.LogError(log, "login: stored hash unusable", err, logrus.Fields{"user_id": u.ID})
		return nil, InternalError(err)
	}
	if !ok {
		log.Info("login rejected: wrong password")
		if s.unifyErrors {
			return nil, AuthError(MsgInvalidCredentials)
		}
		return nil, AuthError(MsgInvalidPassword)
	}

	token, exp, err := s.Tokens.Issue(u.ID)
	if err != nil {
		helpers.LogError(log, "login: token issue failed", err, logrus.Fields{"user_id": u.ID})
		return nil, InternalError(err)
	}

	log.WithField("user_id", u.ID).Info("user logged in")
	return &LoginResult{Token: token, UserID: u.ID, ExpiresAt: exp}, nil
}

func resultLabel(err error) string {
	if err == nil {
		return metrics.ResultOK
	}
	switch AsError(err).Kind {
	case KindValidation:
		return metrics.ResultInvalid
	case KindConflict:
		return metrics.ResultConflict
	case KindAuth:
		return metrics.ResultUnauthorized
	default:
		return metrics.ResultError
	}
}
