package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/diewo77/agence-immo/auth"
	"github.com/diewo77/agence-immo/gate"
	"github.com/diewo77/agence-immo/internal/apperr"
	"github.com/diewo77/agence-immo/internal/models"
	"github.com/diewo77/agence-immo/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errInvalidCredentials = apperr.Authentication("invalid credentials")
	errInvalidToken       = apperr.Authentication("invalid or expired token")
)

// dummyHash is compared against when the email is unknown so both login
// failures cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("not-a-real-password")
	return h
})

// Session is the result of a successful login.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// NewUser is the payload of an account creation.
type NewUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionService stores accounts and their session tokens.
type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

// NormalizeEmail trims and lowercases an email before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate checks the credentials and opens a new session, deleting every
// previous token of the user.
func (s *SessionService) Authenticate(ctx context.Context, email, password string) (Session, error) {
	email = NormalizeEmail(email)

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		auth.CheckPassword(dummyHash(), password)
		zap.S().Infow("login failed", "email", email, "reason", "unknown email")
		return Session{}, errInvalidCredentials
	}
	if err != nil {
		return Session{}, apperr.FromDB(err)
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		zap.S().Infow("login failed", "email", email, "reason", "wrong password")
		return Session{}, errInvalidCredentials
	}

	token, err := auth.NewToken()
	if err != nil {
		return Session{}, apperr.Storage(err)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Concurrent logins of one user queue on the row lock, so each sees the
		// token committed by the previous one. SQLite ignores the clause and
		// relies on its single connection.
		if err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Select("id").Take(&models.User{}, user.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.AuthToken{Token: token, UserID: user.ID}).Error
	})
	if err != nil {
		return Session{}, apperr.FromDB(err)
	}
	zap.S().Infow("login succeeded", "email", email, "user_id", user.ID)
	return Session{Token: token, User: user.Public()}, nil
}

// Resolve returns the identity owning token.
func (s *SessionService) Resolve(ctx context.Context, token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, errInvalidToken
	}
	var tok models.AuthToken
	err := s.db.WithContext(ctx).Joins("User").
		Where(clause.Eq{Column: clause.Column{Table: clause.CurrentTable, Name: "token"}, Value: token}).
		Take(&tok).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && tok.User == nil) {
		return auth.Identity{}, errInvalidToken
	}
	if err != nil {
		return auth.Identity{}, apperr.FromDB(err)
	}
	return auth.Identity{
		UserID:  tok.User.ID,
		Email:   tok.User.Email,
		Role:    tok.User.Role,
		TokenID: tok.ID,
	}, nil
}

// Revoke deletes a session. Revoking an unknown session is not an error.
func (s *SessionService) Revoke(ctx context.Context, tokenID uint) error {
	if err := s.db.WithContext(ctx).Delete(&models.AuthToken{}, tokenID).Error; err != nil {
		return apperr.FromDB(err)
	}
	return nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when no user holds
// email yet. It reports whether the account was created.
func (s *SessionService) EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return false, apperr.Validation("bootstrap admin email and password required", nil)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, apperr.Storage(err)
	}
	var user models.User
	res := s.db.WithContext(ctx).
		Where(models.User{Email: email}).
		Attrs(models.User{PasswordHash: hash, Role: gate.RoleAdmin}).
		FirstOrCreate(&user)
	if res.Error != nil {
		return false, apperr.FromDB(res.Error)
	}
	created := res.RowsAffected > 0
	if created {
		zap.S().Warnw("default admin account created with the bootstrap password, rotate it", "email", email)
	}
	return created, nil
}

// ListUsers returns every account sorted by email.
func (s *SessionService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("email ASC").Find(&users).Error; err != nil {
		return nil, apperr.FromDB(err)
	}
	out := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// CreateUser registers an account. The role defaults to agent.
func (s *SessionService) CreateUser(ctx context.Context, in NewUser) (models.PublicUser, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = gate.RoleAgent
	}

	v := make(validation.Violations)
	validation.Required("email", in.Email, v)
	validation.Required("password", in.Password, v)
	validation.OneOf("role", in.Role, gate.Roles, v)
	if err := v.Err(); err != nil {
		return models.PublicUser{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.PublicUser{}, apperr.Storage(err)
	}
	user := models.User{Email: in.Email, PasswordHash: hash, Role: in.Role}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.PublicUser{}, apperr.Conflict("email already registered")
		}
		return models.PublicUser{}, apperr.FromDB(err)
	}
	zap.S().Infow("user created", "email", user.Email, "role", user.Role)
	return user.Public(), nil
}
