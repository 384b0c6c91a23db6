package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"MysteryMessage/server/internal/models"
	"MysteryMessage/server/internal/storage"

	"github.com/google/uuid"
)

const (
	MinContentLength = 1
	MaxContentLength = 300
)

type MessageService struct {
	accounts storage.Accounts
}

func NewMessageService(accounts storage.Accounts) *MessageService {
	return &MessageService{accounts: accounts}
}

// Submit appends an anonymous message to the inbox of the account holding
// username. Content length is re-validated here even though handlers check
// it too; this is the authoritative gate. An account need not be verified
// to receive messages, it only has to exist and accept them.
func (ms *MessageService) Submit(ctx context.Context, username, content string, now time.Time) (*models.Message, error) {
	length := utf8.RuneCountInString(content)
	if length < MinContentLength || length > MaxContentLength {
		return nil, models.ErrInvalidContent
	}

	account, err := ms.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	if !account.AcceptingMessages {
		return nil, models.ErrNotAccepting
	}

	message := &models.Message{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Content:   content,
		CreatedAt: now,
	}

	if err := ms.accounts.AppendMessage(ctx, account.ID, message); err != nil {
		return nil, err
	}

	return message, nil
}

// GetMessages returns the owner's inbox, newest first.
func (ms *MessageService) GetMessages(ctx context.Context, accountID int) ([]models.Message, error) {
	return ms.accounts.ListMessages(ctx, accountID)
}

// DeleteMessage removes one message from the owner's inbox. Messages owned
// by other accounts are invisible to the caller and report not found.
func (ms *MessageService) DeleteMessage(ctx context.Context, accountID int, messageID string) error {
	return ms.accounts.DeleteMessage(ctx, accountID, messageID)
}
