package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/eventz-dev/eventz/internal/domain"
	"github.com/eventz-dev/eventz/internal/errors"
	"github.com/eventz-dev/eventz/internal/jwt"
	"github.com/eventz-dev/eventz/internal/logger"
)

type IdentityService interface {
	Register(ctx context.Context, sess domain.Session, username, password, email string) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, string, error)
	WalletLogin(ctx context.Context, address, email string) (domain.User, string, error)
	Users(ctx context.Context, sess domain.Session) ([]domain.User, error)
	UpdateUser(ctx context.Context, sess domain.Session, id string, patch domain.UserPatch) error
	DeleteUser(ctx context.Context, sess domain.Session, id string) error
}

type Identity struct {
	storage     UserStorage
	jwt         jwt.JwtService
	adminWallet string
}

type UserStorage interface {
	Users(ctx context.Context) ([]domain.User, error)
	UserById(ctx context.Context, id string) (domain.User, error)
	UserByUsername(ctx context.Context, username string) (domain.User, error)
	UserByWallet(ctx context.Context, wallet string) (domain.User, error)
	SaveUser(ctx context.Context, user domain.User) (domain.User, error)
	PatchUser(ctx context.Context, id string, patch domain.UserPatch) error
	TouchLastLogin(ctx context.Context, id string) error
	RemoveUser(ctx context.Context, id string) error
}

func NewIdentity(storage UserStorage, jwtService jwt.JwtService, adminWallet string) *Identity {
	return &Identity{storage: storage, jwt: jwtService, adminWallet: strings.ToLower(adminWallet)}
}

// isAdmin is the single capability check the event service relies on: a
// stored admin role or a match against the configured admin wallet.
func (i *Identity) isAdmin(u domain.User) bool {
	if u.Role == domain.RoleAdmin {
		return true
	}
	return i.adminWallet != "" && u.WalletAddress == i.adminWallet
}

func (i *Identity) session(u domain.User) domain.Session {
	return domain.Session{
		UserId:        u.Id,
		Username:      u.Username,
		WalletAddress: u.WalletAddress,
		Admin:         i.isAdmin(u),
	}
}

// Register creates a local-credential account. Only admins can provision
// accounts; there is no open signup on this service.
func (i *Identity) Register(ctx context.Context, sess domain.Session, username, password, email string) (domain.User, error) {
	if err := requireAdmin(sess); err != nil {
		return domain.User{}, err
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.User{}, errors.NewValidation("Username and password are required")
	}

	// Passwords are never stored in clear.
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	return i.storage.SaveUser(ctx, domain.User{
		Username: strings.TrimSpace(username),
		PassHash: string(passHash),
		Email:    email,
		Role:     domain.RoleUser,
	})
}

// Login authenticates the username+password variant and issues a session token.
func (i *Identity) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	user, err := i.storage.UserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.IsNotFound(err) {
			return domain.User{}, "", errors.NewUnauthorized("Invalid credentials")
		}
		return domain.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)) != nil {
		return domain.User{}, "", errors.NewUnauthorized("Invalid credentials")
	}

	if err := i.storage.TouchLastLogin(ctx, user.Id); err != nil {
		logger.Log.Warn("failed to refresh last login", "user", user.Id, "error", err)
	}

	token, err := i.jwt.NewToken(i.session(user))
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// WalletLogin resolves a wallet identity: first-seen addresses get a user
// record with role "user", known ones get a lastLogin refresh. Signature
// verification happens upstream; this consumes a resolved address.
func (i *Identity) WalletLogin(ctx context.Context, address, email string) (domain.User, string, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return domain.User{}, "", errors.NewValidation("Wallet address is required")
	}

	user, err := i.storage.UserByWallet(ctx, address)
	switch {
	case err == nil:
		if err := i.storage.TouchLastLogin(ctx, user.Id); err != nil {
			logger.Log.Warn("failed to refresh last login", "user", user.Id, "error", err)
		}
	case errors.IsNotFound(err):
		now := time.Now().UTC()
		user, err = i.storage.SaveUser(ctx, domain.User{
			WalletAddress: address,
			Email:         email,
			Role:          domain.RoleUser,
			LastLogin:     &now,
		})
		if err != nil {
			return domain.User{}, "", err
		}
	default:
		return domain.User{}, "", err
	}

	token, err := i.jwt.NewToken(i.session(user))
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (i *Identity) Users(ctx context.Context, sess domain.Session) ([]domain.User, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	return i.storage.Users(ctx)
}

func (i *Identity) UpdateUser(ctx context.Context, sess domain.Session, id string, patch domain.UserPatch) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if patch.WalletAddress != nil {
		normalized := strings.ToLower(strings.TrimSpace(*patch.WalletAddress))
		patch.WalletAddress = &normalized
	}
	if patch.Role != nil && *patch.Role != domain.RoleAdmin && *patch.Role != domain.RoleUser {
		return errors.NewValidation("Role must be admin or user")
	}
	return i.storage.PatchUser(ctx, id, patch)
}

func (i *Identity) DeleteUser(ctx context.Context, sess domain.Session, id string) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if id == sess.UserId {
		return errors.NewValidation("Cannot delete your own account")
	}
	return i.storage.RemoveUser(ctx, id)
}

// EnsureAdmin bootstraps the configured local admin account on startup.
// It is a no-op when the username already exists or no credentials are set.
func (i *Identity) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := i.storage.UserByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.IsNotFound(err) {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = i.storage.SaveUser(ctx, domain.User{
		Username: username,
		PassHash: string(passHash),
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		return err
	}
	logger.Log.Info("bootstrapped admin account", "username", username)
	return nil
}
