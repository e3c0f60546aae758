package repository

import (
	"context"
	"encoding/json"
	"sailbook/internal/logger"
	"sailbook/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type WaypointRepository struct {
	store docStore
}

func NewWaypointRepository(db *pgxpool.Pool) *WaypointRepository {
	return &WaypointRepository{store: newPgStore(db, "waypoints")}
}

func NewMemoryWaypointRepository() *WaypointRepository {
	return &WaypointRepository{store: newMemStore()}
}

func decodeWaypoint(d rawDoc) (*models.Waypoint, error) {
	var w models.Waypoint
	if err := json.Unmarshal(d.data, &w); err != nil {
		return nil, err
	}
	w.ID = d.id
	w.Rev = d.rev
	return &w, nil
}

func (r *WaypointRepository) Get(ctx context.Context, id string) (*models.Waypoint, error) {
	d, err := r.store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeWaypoint(d)
}

func (r *WaypointRepository) Save(ctx context.Context, wp *models.Waypoint) error {
	data, err := json.Marshal(wp)
	if err != nil {
		return err
	}
	var rev int64
	if wp.Rev == 0 {
		rev, err = r.store.insert(ctx, wp.ID, data)
	} else {
		rev, err = r.store.update(ctx, wp.ID, wp.Rev, data)
	}
	if err != nil {
		logger.Log.Warn("waypoint save failed (repo)", zap.String("waypoint_id", wp.ID), zap.Error(err))
		return err
	}
	wp.Rev = rev
	return nil
}

func (r *WaypointRepository) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, id)
}

func (r *WaypointRepository) FindByBoat(ctx context.Context, boatID string) ([]*models.Waypoint, error) {
	docs, err := r.store.findByField(ctx, "boat", boatID, false)
	if err != nil {
		return nil, err
	}
	waypoints := make([]*models.Waypoint, 0, len(docs))
	for _, d := range docs {
		w, err := decodeWaypoint(d)
		if err != nil {
			return nil, err
		}
		waypoints = append(waypoints, w)
	}
	return waypoints, nil
}
