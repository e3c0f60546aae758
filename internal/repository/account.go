package repository

import (
	"context"
	"encoding/json"
	"sailbook/internal/logger"
	"sailbook/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// AccountRepository persists accounts as revisioned documents.
type AccountRepository struct {
	store docStore
}

func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{store: newPgStore(db, "accounts")}
}

// NewMemoryAccountRepository backs the repository with the in-memory
// double (tests, DB_DRIVER=memory).
func NewMemoryAccountRepository() *AccountRepository {
	return &AccountRepository{store: newMemStore()}
}

func decodeAccount(d rawDoc) (*models.Account, error) {
	var a models.Account
	if err := json.Unmarshal(d.data, &a); err != nil {
		return nil, err
	}
	a.ID = d.id
	a.Rev = d.rev
	return &a, nil
}

func (r *AccountRepository) Get(ctx context.Context, id string) (*models.Account, error) {
	d, err := r.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeAccount(d)
}

// Save inserts when the account has never been persisted (rev 0) and
// does a conditional update otherwise. On success the account's Rev is
// advanced to the stored revision.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	var rev int64
	if account.Rev == 0 {
		rev, err = r.store.insert(ctx, account.ID, data)
	} else {
		rev, err = r.store.update(ctx, account.ID, account.Rev, data)
	}
	if err != nil {
		logger.Log.Warn("account save failed (repo)", zap.String("account_id", account.ID), zap.Error(err))
		return err
	}
	account.Rev = rev
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

func (r *AccountRepository) LoadAll(ctx context.Context) ([]*models.Account, error) {
	docs, err := r.store.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	accounts := make([]*models.Account, 0, len(docs))
	for _, d := range docs {
		a, err := decodeAccount(d)
		if err != nil {
			logger.Log.Error("account decode failed (repo)", zap.String("account_id", d.id), zap.Error(err))
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// FindByName matches the login name case-insensitively. More than one
// result means the uniqueness invariant is broken; the service decides
// what to do with that.
func (r *AccountRepository) FindByName(ctx context.Context, name string) ([]*models.Account, error) {
	return r.find(ctx, "account_name", name, true)
}

func (r *AccountRepository) FindByResetTokenHash(ctx context.Context, hash string) ([]*models.Account, error) {
	return r.find(ctx, "reset_token_hash", hash, false)
}

func (r *AccountRepository) FindByVerifyToken(ctx context.Context, token string) ([]*models.Account, error) {
	return r.find(ctx, "verify_token", token, false)
}

func (r *AccountRepository) find(ctx context.Context, field, value string, fold bool) ([]*models.Account, error) {
	docs, err := r.store.findByField(ctx, field, value, fold)
	if err != nil {
		return nil, err
	}
	accounts := make([]*models.Account, 0, len(docs))
	for _, d := range docs {
		a, err := decodeAccount(d)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
