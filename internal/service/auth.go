package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/pkg/events"
	pkg_hash "github.com/Skotchmaster/farm_shop/pkg/hash"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

type AuthService struct {
	Repo        *repo.GormRepo
	Tokens      *tokens.Issuer
	Events      events.Publisher
	AdminEmails AdminSet
	Now         Clock
}

type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AdminSet is the configured allow-list of admin e-mails.
type AdminSet map[string]struct{}

func NewAdminSet(emails ...string) AdminSet {
	s := make(AdminSet, len(emails))
	for _, e := range emails {
		s[e] = struct{}{}
	}
	return s
}

func (s AdminSet) Contains(email string) bool {
	_, ok := s[email]
	return ok
}

// NewReferralID returns "REF-" followed by 8 uppercase hex digits.
func NewReferralID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "REF-" + strings.ToUpper(hex.EncodeToString(b)), nil
}

func defaultFullName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (h *AuthService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if err := validate.Var(email, "required,email"); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid email")
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if password == "" {
		l.Warn("signup_error", "status", 400, "reason", "empty password")
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	user, err := h.CreateUser(ctx, email, password, "")
	if err != nil {
		return nil, err
	}

	res, err := h.issue(user)
	if err != nil {
		l.Error("signup_error", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	h.publish(ctx, events.UserSignedUp, user)
	l.Info("signup_success", "user_id", user.ID)
	return res, nil
}

// bcrypt only looks at the first 72 bytes and refuses longer input.
const maxPasswordBytes = 72

// CreateUser stores a user together with its profile. An empty fullName
// falls back to the local part of the e-mail. Allow-listed e-mails become
// admins.
func (h *AuthService) CreateUser(ctx context.Context, email, password, fullName string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.create_user")

	if len(password) > maxPasswordBytes {
		l.Warn("create_user_error", "status", 400, "reason", "password too long")
		return nil, fmt.Errorf("%w: password too long", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("create_user_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	referralID, err := NewReferralID()
	if err != nil {
		l.Error("create_user_error", "status", 500, "reason", "cannot generate referral id", "error", err)
		return nil, err
	}

	role := models.RoleCustomer
	if h.AdminEmails.Contains(email) {
		role = models.RoleAdmin
	}
	if fullName == "" {
		fullName = defaultFullName(email)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		CreatedAt:    h.Now.now(),
	}
	profile := &models.Profile{
		FullName:   &fullName,
		ReferralID: referralID,
	}

	if err := h.Repo.CreateUserWithProfile(ctx, user, profile); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("create_user_error", "status", 400, "reason", "email already exists")
			return nil, ErrDuplicateEmail
		}
		l.Error("create_user_error", "status", 500, "reason", "cannot store user", "error", err)
		return nil, err
	}
	return user, nil
}

func (h *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.verify_credentials")

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := h.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "status", 400, "reason", "user not found")
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 400, "reason", "invalid password", "user_id", user.ID)
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (h *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := h.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if user.Role != models.RoleAdmin && h.AdminEmails.Contains(user.Email) {
		if err := h.Repo.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			l.Error("login_failed", "status", 500, "reason", "cannot promote allow-listed admin", "error", err)
			return nil, err
		}
		user.Role = models.RoleAdmin
	}

	res, err := h.issue(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot issue token", "error", err)
		return nil, err
	}

	h.publish(ctx, events.UserLoggedIn, user)
	l.Info("login_successful", "user_id", user.ID)
	return res, nil
}

func (h *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	user, err := h.Repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (h *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, exp, err := h.Tokens.Issue(tokens.Principal{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  string(user.Role),
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

func (h *AuthService) publish(ctx context.Context, typ string, user *models.User) {
	if h.Events == nil {
		return
	}
	ev := events.UserEvent{Type: typ, UserID: user.ID.String(), Email: user.Email, At: h.Now.now()}
	if err := h.Events.Publish(ctx, events.TopicUserEvents, ev.UserID, ev); err != nil {
		logging.FromContext(ctx).Error("publish_error", "topic", events.TopicUserEvents, "type", typ, "error", err)
	}
}
