package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"MysteryMessage/server/internal/email"
	"MysteryMessage/server/internal/models"
	"MysteryMessage/server/internal/storage"
	"MysteryMessage/server/internal/utils"
	"MysteryMessage/server/internal/verification"

	"github.com/golang-jwt/jwt/v4"
)

const sessionTokenValidity = 24 * time.Hour

type UserService struct {
	accounts  storage.Accounts
	sender    email.Sender
	issuer    *verification.Issuer
	jwtSecret []byte
}

func NewUserService(accounts storage.Accounts, sender email.Sender, issuer *verification.Issuer, jwtSecret []byte) *UserService {
	return &UserService{
		accounts:  accounts,
		sender:    sender,
		issuer:    issuer,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new account, or refreshes an existing unverified one.
//
// The username check runs strictly before any email branch: a verified
// username is a harder collision than an unverified email. Re-registering
// an unverified email overwrites only the password hash and verification
// code, never the username, inbox, or acceptance flag. The verification
// email goes out after the account mutation commits; a delivery failure is
// reported to the caller but the mutation stays.
func (us *UserService) Register(ctx context.Context, username, emailAddr, password string, now time.Time) error {
	_, err := us.accounts.GetVerifiedByUsername(ctx, username)
	if err == nil {
		return models.ErrUsernameTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	existing, err := us.accounts.GetByEmail(ctx, emailAddr)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if existing != nil && existing.Verified {
		return models.ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return err
	}

	code, expiry := us.issuer.Issue(now)

	if existing != nil {
		if err := us.accounts.UpdateCredentials(ctx, existing.ID, hashedPassword, code, expiry); err != nil {
			return err
		}
		log.Printf("Refreshed unverified account %d (%s)", existing.ID, existing.Username)
	} else {
		account := &models.Account{
			Username:          username,
			Email:             emailAddr,
			PasswordHash:      hashedPassword,
			Verified:          false,
			VerifyCode:        code,
			VerifyCodeExpiry:  expiry,
			AcceptingMessages: true,
		}
		id, err := us.accounts.Create(ctx, account)
		if err != nil {
			return err
		}
		log.Printf("Account created: %s (ID: %d)", username, id)
	}

	if err := us.sender.SendVerification(ctx, emailAddr, username, code); err != nil {
		return fmt.Errorf("%w: %v", models.ErrDeliveryFailed, err)
	}

	return nil
}

// VerifyCode checks a supplied code for the account holding username and
// marks the account verified on success. Verification is monotonic: a
// verified account never transitions back, and re-submitting a still-valid
// code afterwards is harmless.
func (us *UserService) VerifyCode(ctx context.Context, username, code string, now time.Time) error {
	account, err := us.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}

	switch verification.Check(account.VerifyCode, account.VerifyCodeExpiry, code, now) {
	case verification.Expired:
		return models.ErrCodeExpired
	case verification.Invalid:
		return models.ErrCodeInvalid
	}

	if account.Verified {
		return nil
	}

	return us.accounts.SetVerified(ctx, account.ID)
}

// Login authenticates by email or username and returns a signed session
// token. Unverified accounts cannot sign in.
func (us *UserService) Login(ctx context.Context, identifier, password string) (string, error) {
	account, err := us.accounts.GetByEmail(ctx, identifier)
	if errors.Is(err, models.ErrNotFound) {
		account, err = us.accounts.GetVerifiedByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if !account.Verified {
		return "", models.ErrNotVerified
	}

	if err := utils.CheckPasswordHash(password, account.PasswordHash); err != nil {
		log.Printf("Password verification failed for user %d", account.ID)
		return "", models.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  account.ID,
		"username": account.Username,
		"exp":      time.Now().Add(sessionTokenValidity).Unix(),
	})

	tokenString, err := token.SignedString(us.jwtSecret)
	if err != nil {
		log.Printf("Error creating token for user %d: %v", account.ID, err)
		return "", err
	}

	return tokenString, nil
}

// SetAccepting flips the accept-messages flag unconditionally and returns
// the updated value.
func (us *UserService) SetAccepting(ctx context.Context, accountID int, accepting bool) (bool, error) {
	if err := us.accounts.SetAccepting(ctx, accountID, accepting); err != nil {
		return false, err
	}
	return accepting, nil
}

func (us *UserService) GetAccepting(ctx context.Context, accountID int) (bool, error) {
	account, err := us.accounts.GetByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	return account.AcceptingMessages, nil
}

// IsUsernameAvailable reports whether no verified account holds the
// username. Unverified holders do not count: the name is still up for
// grabs until someone verifies it.
func (us *UserService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := us.accounts.GetVerifiedByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, models.ErrNotFound) {
		return true, nil
	}
	return false, err
}

func (us *UserService) GetUserById(ctx context.Context, id int) (*models.Account, error) {
	account, err := us.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return account, nil
}
