// Package storage persists accounts and their message inboxes.
package storage

import (
	"context"
	"time"

	"MysteryMessage/server/internal/models"
)

// Accounts is the account store consumed by the services. Implementations
// must provide read-your-writes consistency and enforce two uniqueness
// guarantees: email is unique across all accounts, and username is unique
// among verified accounts.
type Accounts interface {
	// Create inserts a new account if no account with the same email
	// exists, and returns the assigned id. A concurrent or prior insert
	// with the same email yields models.ErrEmailTaken.
	Create(ctx context.Context, account *models.Account) (int, error)

	GetByID(ctx context.Context, id int) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByUsername returns an account holding the username, preferring a
	// verified holder when unverified accounts transiently share it.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// GetVerifiedByUsername returns the verified holder of the username,
	// or models.ErrNotFound.
	GetVerifiedByUsername(ctx context.Context, username string) (*models.Account, error)

	// UpdateCredentials overwrites the password hash and verification
	// code/expiry of an existing account, leaving everything else intact.
	UpdateCredentials(ctx context.Context, id int, passwordHash, verifyCode string, verifyCodeExpiry time.Time) error

	// SetVerified marks the account verified. If another account already
	// verified the same username, models.ErrUsernameTaken is returned and
	// the account is left unverified.
	SetVerified(ctx context.Context, id int) error

	SetAccepting(ctx context.Context, id int, accepting bool) error

	AppendMessage(ctx context.Context, accountID int, message *models.Message) error

	// ListMessages returns the account's inbox, newest first.
	ListMessages(ctx context.Context, accountID int) ([]models.Message, error)

	// DeleteMessage removes one message owned by accountID. A missing
	// message, or one owned by someone else, yields models.ErrNotFound.
	DeleteMessage(ctx context.Context, accountID int, messageID string) error
}
