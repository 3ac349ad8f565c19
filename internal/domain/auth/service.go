package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	credential "talentcrm/internal/auth"
	"talentcrm/internal/model"
	"talentcrm/internal/platform/docstore"
	"talentcrm/internal/platform/metrics"
	"talentcrm/internal/platform/validate"
	"talentcrm/internal/repository"
	"talentcrm/internal/requestctx"
)

type Options struct {
	BcryptCost    int
	SessionSecret string
	SessionTTL    time.Duration
	Logger        *slog.Logger
	Metrics       *metrics.Collector
}

type Service struct {
	Repos   *repository.Set
	cost    int
	secret  string
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector
}

func NewService(repos *repository.Set, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Service{
		Repos:   repos,
		cost:    opts.BcryptCost,
		secret:  opts.SessionSecret,
		ttl:     ttl,
		logger:  logger,
		metrics: opts.Metrics,
	}
}

func (s *Service) HashPassword(password string) (string, error) {
	return credential.HashPassword(password, s.cost)
}

// VerifyPassword accepts hashed credentials and, for accounts created before
// hashing was introduced, plaintext ones. Authenticate rewrites the latter.
func (s *Service) VerifyPassword(stored, supplied string) bool {
	return credential.VerifyPassword(stored, supplied)
}

// Authenticate returns the matching user. A plaintext credential that
// verifies is replaced by a bcrypt hash in the same document write.
func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	var out model.User
	upgraded := false
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		users, err := s.Repos.Users.FindIn(doc, func(u model.User) bool { return u.Username == username })
		if err != nil {
			return false, err
		}
		if len(users) == 0 || !credential.VerifyPassword(users[0].Password, password) {
			return false, ErrInvalidCredentials
		}
		out = users[0]
		if credential.IsHashed(out.Password) {
			return false, nil
		}
		hashed, err := s.HashPassword(password)
		if err != nil {
			return false, fmt.Errorf("hash password: %w", err)
		}
		out, err = s.Repos.Users.UpdateIn(doc, out.UserID, repository.Fields{"password": hashed})
		if err != nil {
			return false, err
		}
		upgraded = true
		return true, nil
	})
	if err != nil {
		s.metrics.RecordLogin(false)
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.InfoContext(ctx, "login rejected", "username", username)
		}
		return model.User{}, err
	}
	s.metrics.RecordLogin(true)
	if upgraded {
		s.metrics.RecordPasswordUpgrade()
		s.logger.WarnContext(ctx, "plaintext password upgraded to hash", "userId", out.UserID)
	}
	return out, nil
}

// Register creates a person and a User-role account for it in one write.
func (s *Service) Register(ctx context.Context, person PersonInput, username, password string) (model.User, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	if err := validate.Struct(registration{Person: person, Username: username, Password: password}); err != nil {
		return model.User{}, err
	}
	var out model.User
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		role, ok, err := s.Repos.Roles.ByNameIn(doc, model.RoleUser)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, ErrMissingDefaultRole
		}
		taken, err := s.Repos.Users.FindIn(doc, func(u model.User) bool { return u.Username == username })
		if err != nil {
			return false, err
		}
		if len(taken) > 0 {
			return false, fmt.Errorf("%s: %w", username, ErrUsernameTaken)
		}
		hashed, err := s.HashPassword(password)
		if err != nil {
			return false, fmt.Errorf("hash password: %w", err)
		}
		p, err := s.Repos.Persons.InsertInto(doc, person.Person())
		if err != nil {
			return false, err
		}
		out, err = s.Repos.Users.InsertInto(doc, model.User{
			Username: username,
			Password: hashed,
			RoleID:   role.RoleID,
			PersonID: p.PersonID,
		})
		if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return model.User{}, err
	}
	s.logger.InfoContext(ctx, "user registered", "userId", out.UserID, "personId", out.PersonID)
	return out, nil
}

// AssignRole moves a user to the named role.
func (s *Service) AssignRole(ctx context.Context, userID int64, roleName string) (model.User, error) {
	ctx = requestctx.EnsureOperationID(ctx)
	var out model.User
	err := s.Repos.Store.Update(ctx, func(doc *docstore.Document) (bool, error) {
		role, ok, err := s.Repos.Roles.ByNameIn(doc, roleName)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("%s: %w", roleName, ErrRoleNotFound)
		}
		out, err = s.Repos.Users.UpdateIn(doc, userID, repository.Fields{"role_id": role.RoleID})
		return err == nil, err
	})
	if err != nil {
		return model.User{}, err
	}
	s.logger.InfoContext(ctx, "role assigned", "userId", userID, "role", roleName)
	return out, nil
}

// SetPassword stores a new hashed password for the user.
func (s *Service) SetPassword(ctx context.Context, userID int64, password string) error {
	ctx = requestctx.EnsureOperationID(ctx)
	v := &validate.Validator{}
	if password == "" {
		v.Add("password", "is required")
	}
	if err := v.Err(); err != nil {
		return err
	}
	hashed, err := s.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if _, err := s.Repos.Users.Update(ctx, userID, repository.Fields{"password": hashed}); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "password changed", "userId", userID)
	return nil
}

// IssueSession signs a session token for an authenticated user.
func (s *Service) IssueSession(ctx context.Context, user model.User) (string, error) {
	if s.secret == "" {
		return "", ErrSessionsDisabled
	}
	roleName := model.RoleUser
	role, err := s.Repos.Roles.Get(ctx, user.RoleID)
	switch {
	case err == nil:
		roleName = role.RoleName
	case !errors.Is(err, repository.ErrNotFound):
		return "", err
	}
	return credential.GenerateToken(s.secret, credential.Claims{
		UserID:   user.UserID,
		PersonID: user.PersonID,
		RoleID:   user.RoleID,
		RoleName: roleName,
	}, s.ttl)
}

// ParseSession validates a token and returns the user it names.
func (s *Service) ParseSession(ctx context.Context, token string) (model.User, *credential.Claims, error) {
	if s.secret == "" {
		return model.User{}, nil, ErrSessionsDisabled
	}
	claims, err := credential.ParseToken(s.secret, token)
	if err != nil {
		return model.User{}, nil, err
	}
	user, err := s.Repos.Users.Get(ctx, claims.UserID)
	if err != nil {
		return model.User{}, nil, err
	}
	return user, claims, nil
}
