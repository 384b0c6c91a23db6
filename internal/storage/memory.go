package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"MysteryMessage/server/internal/models"
)

// Memory is an in-process Accounts implementation used by tests. It enforces
// the same uniqueness guarantees as the Postgres store.
type Memory struct {
	mu       sync.Mutex
	nextID   int
	accounts map[int]*models.Account
	inboxes  map[int][]models.Message
}

func NewMemory() *Memory {
	return &Memory{
		nextID:   1,
		accounts: make(map[int]*models.Account),
		inboxes:  make(map[int][]models.Message),
	}
}

func (m *Memory) Create(_ context.Context, account *models.Account) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == account.Email {
			return 0, models.ErrEmailTaken
		}
	}

	stored := *account
	stored.ID = m.nextID
	m.nextID++
	m.accounts[stored.ID] = &stored
	return stored.ID, nil
}

func (m *Memory) GetByID(_ context.Context, id int) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *Memory) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *Memory) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var best *models.Account
	for _, a := range m.accounts {
		if a.Username != username {
			continue
		}
		if best == nil || (a.Verified && !best.Verified) || (a.Verified == best.Verified && a.ID < best.ID) {
			best = a
		}
	}
	if best == nil {
		return nil, models.ErrNotFound
	}
	copied := *best
	return &copied, nil
}

func (m *Memory) GetVerifiedByUsername(_ context.Context, username string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.accounts {
		if a.Username == username && a.Verified {
			copied := *a
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *Memory) UpdateCredentials(_ context.Context, id int, passwordHash, verifyCode string, verifyCodeExpiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return models.ErrNotFound
	}
	a.PasswordHash = passwordHash
	a.VerifyCode = verifyCode
	a.VerifyCodeExpiry = verifyCodeExpiry
	return nil
}

func (m *Memory) SetVerified(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return models.ErrNotFound
	}
	for _, other := range m.accounts {
		if other.ID != id && other.Username == a.Username && other.Verified {
			return models.ErrUsernameTaken
		}
	}
	a.Verified = true
	return nil
}

func (m *Memory) SetAccepting(_ context.Context, id int, accepting bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.accounts[id]
	if !ok {
		return models.ErrNotFound
	}
	a.AcceptingMessages = accepting
	return nil
}

func (m *Memory) AppendMessage(_ context.Context, accountID int, message *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[accountID]; !ok {
		return models.ErrNotFound
	}
	stored := *message
	stored.AccountID = accountID
	m.inboxes[accountID] = append(m.inboxes[accountID], stored)
	return nil
}

func (m *Memory) ListMessages(_ context.Context, accountID int) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inbox := m.inboxes[accountID]
	messages := make([]models.Message, len(inbox))
	copy(messages, inbox)
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (m *Memory) DeleteMessage(_ context.Context, accountID int, messageID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inbox := m.inboxes[accountID]
	for i, msg := range inbox {
		if msg.ID == messageID {
			m.inboxes[accountID] = append(inbox[:i], inbox[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}
