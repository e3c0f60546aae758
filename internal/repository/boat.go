package repository

import (
	"context"
	"encoding/json"
	"sailbook/internal/logger"
	"sailbook/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BoatRepository struct {
	store docStore
}

func NewBoatRepository(db *pgxpool.Pool) *BoatRepository {
	return &BoatRepository{store: newPgStore(db, "boats")}
}

func NewMemoryBoatRepository() *BoatRepository {
	return &BoatRepository{store: newMemStore()}
}

func decodeBoat(d rawDoc) (*models.Boat, error) {
	var b models.Boat
	if err := json.Unmarshal(d.data, &b); err != nil {
		return nil, err
	}
	b.ID = d.id
	b.Rev = d.rev
	return &b, nil
}

func (r *BoatRepository) Get(ctx context.Context, id string) (*models.Boat, error) {
	d, err := r.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeBoat(d)
}

func (r *BoatRepository) Save(ctx context.Context, boat *models.Boat) error {
	data, err := json.Marshal(boat)
	if err != nil {
		return err
	}
	var rev int64
	if boat.Rev == 0 {
		rev, err = r.store.insert(ctx, boat.ID, data)
	} else {
		rev, err = r.store.update(ctx, boat.ID, boat.Rev, data)
	}
	if err != nil {
		logger.Log.Warn("boat save failed (repo)", zap.String("boat_id", boat.ID), zap.Error(err))
		return err
	}
	boat.Rev = rev
	return nil
}

func (r *BoatRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

func (r *BoatRepository) LoadAll(ctx context.Context) ([]*models.Boat, error) {
	docs, err := r.store.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return decodeBoats(docs)
}

func (r *BoatRepository) FindByOwner(ctx context.Context, accountID string) ([]*models.Boat, error) {
	docs, err := r.store.findByField(ctx, "owner", accountID, false)
	if err != nil {
		return nil, err
	}
	return decodeBoats(docs)
}

func decodeBoats(docs []rawDoc) ([]*models.Boat, error) {
	boats := make([]*models.Boat, 0, len(docs))
	for _, d := range docs {
		b, err := decodeBoat(d)
		if err != nil {
			return nil, err
		}
		boats = append(boats, b)
	}
	return boats, nil
}
