package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sailbook/internal/logger"
	"sailbook/internal/models"
	"sailbook/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountRepo is what the service needs from persistence. Save must
// reject stale revisions with repository.ErrConflict; the service never
// retries a conflict, it hands it to the caller.
type AccountRepo interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]*models.Account, error)
	FindByName(ctx context.Context, name string) ([]*models.Account, error)
	FindByResetTokenHash(ctx context.Context, hash string) ([]*models.Account, error)
	FindByVerifyToken(ctx context.Context, token string) ([]*models.Account, error)
}

// AccountMailer delivers account mail. A send failure is reported to the
// caller but never rolls back what was already persisted.
type AccountMailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
	SendVerification(ctx context.Context, to, link string) error
}

// Listener is notified after every successful account mutation with the
// id of the account that changed. Called synchronously, at least once.
type Listener func(accountID string)

type AccountService struct {
	repo      AccountRepo
	mailer    AccountMailer
	siteURL   string
	resetTTL  time.Duration
	verifyTTL time.Duration

	mu        sync.Mutex
	listeners []Listener
}

func NewAccountService(repo AccountRepo, mailer AccountMailer, siteURL string, resetTTL, verifyTTL time.Duration) *AccountService {
	return &AccountService{
		repo:      repo,
		mailer:    mailer,
		siteURL:   strings.TrimRight(siteURL, "/"),
		resetTTL:  resetTTL,
		verifyTTL: verifyTTL,
	}
}

// Subscribe registers a mutation listener (cache invalidation and the
// like). Not safe to call concurrently with mutations in flight.
func (s *AccountService) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *AccountService) notify(accountID string) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, l := range listeners {
		l(accountID)
	}
}

// Signup creates a new account. The raw password is hashed immediately
// and never persisted or logged.
func (s *AccountService) Signup(ctx context.Context, accountName, rawPassword string) (*models.Account, error) {
	accountName = strings.TrimSpace(accountName)
	logger.Log.Info("account signup (service)", zap.String("account_name", accountName))

	if accountName == "" || !strings.Contains(accountName, "@") {
		return nil, fmt.Errorf("account name must be an e-mail address")
	}
	if len(rawPassword) < 8 {
		return nil, ErrWeakPassword
	}

	existing, err := s.repo.FindByName(ctx, accountName)
	if err != nil {
		logger.Log.Error("signup name lookup failed (service)", zap.Error(err))
		return nil, err
	}
	if len(existing) > 0 {
		logger.Log.Warn("signup rejected, name taken (service)", zap.String("account_name", accountName))
		return nil, ErrAlreadyExists
	}

	hash, err := utils.HashPassword(rawPassword)
	if err != nil {
		logger.Log.Error("password hashing failed (service)", zap.Error(err))
		return nil, err
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:           uuid.New().String(),
		AccountName:  accountName,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Save(ctx, account); err != nil {
		logger.Log.Error("account create failed (service)", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("account created (service)", zap.String("account_id", account.ID))
	s.notify(account.ID)
	return account, nil
}

// Authenticate verifies credentials. The failure is the same for an
// unknown name and a wrong password so the API leaks nothing about
// which accounts exist.
func (s *AccountService) Authenticate(ctx context.Context, accountName, rawPassword string) (*models.Account, error) {
	accountName = strings.TrimSpace(accountName)
	logger.Log.Info("login attempt (service)", zap.String("account_name", accountName))

	matches, err := s.repo.FindByName(ctx, accountName)
	if err != nil {
		return nil, err
	}
	if len(matches) > 1 {
		logger.Log.Error("duplicate account names in store (service)", zap.String("account_name", accountName))
		return nil, ErrAmbiguous
	}
	if len(matches) == 0 {
		logger.Log.Warn("login failed (service)", zap.String("account_name", accountName))
		return nil, ErrUnauthorized
	}

	account := matches[0]
	if !utils.CheckPasswordHash(rawPassword, account.PasswordHash) {
		logger.Log.Warn("login failed (service)", zap.String("account_name", accountName))
		return nil, ErrUnauthorized
	}

	logger.Log.Info("login ok (service)", zap.String("account_id", account.ID))
	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.repo.Get(ctx, id)
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.repo.LoadAll(ctx)
}

// RequestPasswordReset issues a fresh single-use token valid for the
// configured TTL and mails it. A second request overwrites a pending
// token — the latest request wins. The token is never part of the
// return value; it only travels in the e-mail.
func (s *AccountService) RequestPasswordReset(ctx context.Context, accountName string) error {
	accountName = strings.TrimSpace(accountName)
	logger.Log.Info("password reset requested (service)", zap.String("account_name", accountName))

	matches, err := s.repo.FindByName(ctx, accountName)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return ErrNotFound
	}
	if len(matches) > 1 {
		logger.Log.Error("duplicate account names in store (service)", zap.String("account_name", accountName))
		return ErrAmbiguous
	}

	account := matches[0]
	token, tokenHash, err := utils.NewResetToken()
	if err != nil {
		logger.Log.Error("reset token generation failed (service)", zap.Error(err))
		return err
	}

	timeout := time.Now().UTC().Add(s.resetTTL)
	account.ResetTokenHash = tokenHash
	account.ResetTimeout = &timeout
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		logger.Log.Error("reset token save failed (service)", zap.String("account_id", account.ID), zap.Error(err))
		return err
	}
	s.notify(account.ID)

	link := fmt.Sprintf("%s/pwreset?token=%s", s.siteURL, token)
	if err := s.mailer.SendPasswordReset(ctx, account.AccountName, link); err != nil {
		// Issuance stands: the token stays valid until its own expiry.
		logger.Log.Error("reset mail delivery failed (service)", zap.String("account_id", account.ID), zap.Error(err))
		return fmt.Errorf("send reset mail: %w", err)
	}

	logger.Log.Info("reset mail sent (service)",
		zap.String("account_id", account.ID), zap.Time("expires_at", timeout))
	return nil
}

// ResetPassword consumes a reset token. An expired token fails without
// being consumed and without touching the password; a consumed token
// cannot be replayed.
func (s *AccountService) ResetPassword(ctx context.Context, token, newRawPassword string) (*models.Account, error) {
	logger.Log.Info("password reset attempt (service)")

	if len(newRawPassword) < 8 {
		return nil, ErrWeakPassword
	}

	matches, err := s.repo.FindByResetTokenHash(ctx, utils.HashToken(token))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		logger.Log.Warn("reset with unknown token (service)")
		return nil, ErrNotFound
	}
	if len(matches) > 1 {
		logger.Log.Error("duplicate reset tokens in store (service)")
		return nil, ErrAmbiguous
	}

	account := matches[0]
	if account.ResetTimeout == nil || time.Now().After(*account.ResetTimeout) {
		logger.Log.Warn("reset token expired (service)", zap.String("account_id", account.ID))
		return nil, ErrTokenExpired
	}

	hash, err := utils.HashPassword(newRawPassword)
	if err != nil {
		return nil, err
	}

	account.ClearReset()
	account.PasswordHash = hash
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		logger.Log.Error("password reset save failed (service)", zap.String("account_id", account.ID), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("password reset done (service)", zap.String("account_id", account.ID))
	s.notify(account.ID)
	return account, nil
}

// ChangeAccountName renames the login, keeping the uniqueness invariant.
func (s *AccountService) ChangeAccountName(ctx context.Context, id, newName string) (*models.Account, error) {
	newName = strings.TrimSpace(newName)
	logger.Log.Info("account rename (service)", zap.String("account_id", id))

	if newName == "" || !strings.Contains(newName, "@") {
		return nil, fmt.Errorf("account name must be an e-mail address")
	}

	matches, err := s.repo.FindByName(ctx, newName)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.ID != id {
			return nil, ErrAlreadyExists
		}
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	account.AccountName = newName
	account.EmailVerified = false
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}
	s.notify(account.ID)
	return account, nil
}

// ChangePassword re-hashes after verifying the old password.
func (s *AccountService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	logger.Log.Info("password change (service)", zap.String("account_id", id))

	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, account.PasswordHash) {
		logger.Log.Warn("password change with wrong old password (service)", zap.String("account_id", id))
		return ErrUnauthorized
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	account.PasswordHash = hash
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		return err
	}
	logger.Log.Info("password changed (service)", zap.String("account_id", id))
	s.notify(account.ID)
	return nil
}

// AddBoat associates a boat with the account. Adding a boat that is
// already in the set is a no-op, including the listener notification.
func (s *AccountService) AddBoat(ctx context.Context, accountID, boatID string) error {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if account.HasBoat(boatID) {
		return nil
	}
	account.Boats = append(account.Boats, boatID)
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		return err
	}
	logger.Log.Info("boat added to account (service)",
		zap.String("account_id", accountID), zap.String("boat_id", boatID))
	s.notify(accountID)
	return nil
}

// RemoveBoat drops the association. Removing an absent boat is a no-op.
func (s *AccountService) RemoveBoat(ctx context.Context, accountID, boatID string) error {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}
	if !account.HasBoat(boatID) {
		return nil
	}
	boats := account.Boats[:0]
	for _, b := range account.Boats {
		if b != boatID {
			boats = append(boats, b)
		}
	}
	account.Boats = boats
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		return err
	}
	logger.Log.Info("boat removed from account (service)",
		zap.String("account_id", accountID), zap.String("boat_id", boatID))
	s.notify(accountID)
	return nil
}

// DeleteAccount removes the record for good. Later lookups return
// repository.ErrNotFound.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	logger.Log.Info("account delete (service)", zap.String("account_id", id))
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Error("account delete failed (service)", zap.String("account_id", id), zap.Error(err))
		return err
	}
	s.notify(id)
	return nil
}

// SendVerification issues a verification token and mails the confirm
// link. Called after signup and after a rename.
func (s *AccountService) SendVerification(ctx context.Context, accountID string) error {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return err
	}

	expires := time.Now().UTC().Add(s.verifyTTL)
	account.VerifyToken = uuid.New().String()
	account.VerifyTokenExpires = &expires
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		return err
	}
	s.notify(account.ID)

	link := fmt.Sprintf("%s/api/verify-email?token=%s", s.siteURL, account.VerifyToken)
	if err := s.mailer.SendVerification(ctx, account.AccountName, link); err != nil {
		logger.Log.Error("verification mail delivery failed (service)", zap.String("account_id", account.ID), zap.Error(err))
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// ConfirmVerification marks the address as verified and burns the token.
func (s *AccountService) ConfirmVerification(ctx context.Context, token string) error {
	matches, err := s.repo.FindByVerifyToken(ctx, token)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return ErrNotFound
	}
	if len(matches) > 1 {
		return ErrAmbiguous
	}

	account := matches[0]
	if account.VerifyTokenExpires == nil || time.Now().After(*account.VerifyTokenExpires) {
		return ErrTokenExpired
	}

	account.EmailVerified = true
	account.VerifyToken = ""
	account.VerifyTokenExpires = nil
	account.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, account); err != nil {
		return err
	}
	logger.Log.Info("email verified (service)", zap.String("account_id", account.ID))
	s.notify(account.ID)
	return nil
}
