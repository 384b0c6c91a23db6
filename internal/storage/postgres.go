package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"MysteryMessage/server/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation        = "23505"
	emailUniqueConstraint  = "users_email_key"
	verifiedUsernameUnique = "users_username_verified_idx"
)

type PostgresAccounts struct {
	pool *pgxpool.Pool
}

func NewPostgresAccounts(pool *pgxpool.Pool) *PostgresAccounts {
	return &PostgresAccounts{pool: pool}
}

func (s *PostgresAccounts) Create(ctx context.Context, account *models.Account) (int, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("users").
		Columns("username", "email", "password_hash", "verify_code", "verify_code_expiry", "is_verified", "is_accepting_messages").
		Values(account.Username, account.Email, account.PasswordHash, account.VerifyCode, account.VerifyCodeExpiry, account.Verified, account.AcceptingMessages).
		Suffix("ON CONFLICT (email) DO NOTHING RETURNING id")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return 0, err
	}

	var id int
	err = s.pool.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		// No row back from DO NOTHING: another insert holds this email.
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrEmailTaken
		}
		log.Printf("Error creating account: %v", err)
		return 0, storeErr(err)
	}

	return id, nil
}

func (s *PostgresAccounts) GetByID(ctx context.Context, id int) (*models.Account, error) {
	return s.getOne(ctx, squirrel.Eq{"id": id}, "")
}

func (s *PostgresAccounts) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getOne(ctx, squirrel.Eq{"email": email}, "")
}

func (s *PostgresAccounts) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	// Unverified accounts may transiently share a username; prefer the
	// verified holder, then the oldest record.
	return s.getOne(ctx, squirrel.Eq{"username": username}, "is_verified DESC, id ASC")
}

func (s *PostgresAccounts) GetVerifiedByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.getOne(ctx, squirrel.Eq{"username": username, "is_verified": true}, "")
}

func (s *PostgresAccounts) getOne(ctx context.Context, where squirrel.Eq, orderBy string) (*models.Account, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "username", "email", "password_hash", "verify_code", "verify_code_expiry", "is_verified", "is_accepting_messages", "created_at").
		From("users").
		Where(where).
		Limit(1)
	if orderBy != "" {
		query = query.OrderBy(orderBy)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	var account models.Account
	err = s.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash,
		&account.VerifyCode, &account.VerifyCodeExpiry, &account.Verified,
		&account.AcceptingMessages, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		log.Printf("Error fetching account: %v", err)
		return nil, storeErr(err)
	}

	return &account, nil
}

func (s *PostgresAccounts) UpdateCredentials(ctx context.Context, id int, passwordHash, verifyCode string, verifyCodeExpiry time.Time) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("password_hash", passwordHash).
		Set("verify_code", verifyCode).
		Set("verify_code_expiry", verifyCodeExpiry).
		Where(squirrel.Eq{"id": id})

	return s.exec(ctx, query)
}

func (s *PostgresAccounts) SetVerified(ctx context.Context, id int) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("is_verified", true).
		Where(squirrel.Eq{"id": id})

	return s.exec(ctx, query)
}

func (s *PostgresAccounts) SetAccepting(ctx context.Context, id int, accepting bool) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("users").
		Set("is_accepting_messages", accepting).
		Where(squirrel.Eq{"id": id})

	return s.exec(ctx, query)
}

func (s *PostgresAccounts) exec(ctx context.Context, query squirrel.UpdateBuilder) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	result, err := s.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error updating account: %v", err)
		return storeErr(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (s *PostgresAccounts) AppendMessage(ctx context.Context, accountID int, message *models.Message) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Insert("messages").
		Columns("id", "account_id", "content", "created_at").
		Values(message.ID, accountID, message.Content, message.CreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	_, err = s.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error saving message for account %d: %v", accountID, err)
		return storeErr(err)
	}

	return nil
}

func (s *PostgresAccounts) ListMessages(ctx context.Context, accountID int) ([]models.Message, error) {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "account_id", "content", "created_at").
		From("messages").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC, id DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return nil, err
	}

	rows, err := s.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error fetching messages for account %d: %v", accountID, err)
		return nil, storeErr(err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.AccountID, &msg.Content, &msg.CreatedAt); err != nil {
			log.Printf("Error scanning row: %v", err)
			return nil, storeErr(err)
		}
		messages = append(messages, msg)
	}
	if rows.Err() != nil {
		log.Printf("Error after iterating rows: %v", rows.Err())
		return nil, storeErr(rows.Err())
	}

	return messages, nil
}

func (s *PostgresAccounts) DeleteMessage(ctx context.Context, accountID int, messageID string) error {
	query := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Delete("messages").
		Where(squirrel.Eq{"id": messageID, "account_id": accountID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Printf("Failed to build SQL query: %v", err)
		return err
	}

	result, err := s.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		log.Printf("Error deleting message %s: %v", messageID, err)
		return storeErr(err)
	}

	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// storeErr maps driver errors to the typed kinds the services report:
// the uniqueness constraints become their collision errors, everything
// else is surfaced as a store outage.
func storeErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case emailUniqueConstraint:
			return models.ErrEmailTaken
		case verifiedUsernameUnique:
			return models.ErrUsernameTaken
		}
	}
	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}
