package services

import (
	"context"
	"fmt"
	"time"

	"sailbook/internal/logger"
	"sailbook/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WaypointRepo interface {
	Get(ctx context.Context, id string) (*models.Waypoint, error)
	Save(ctx context.Context, wp *models.Waypoint) error
	Delete(ctx context.Context, id string) error
	FindByBoat(ctx context.Context, boatID string) ([]*models.Waypoint, error)
}

type WaypointService struct {
	repo  WaypointRepo
	boats BoatRepo
}

func NewWaypointService(repo WaypointRepo, boats BoatRepo) *WaypointService {
	return &WaypointService{repo: repo, boats: boats}
}

// ownedBoat loads the boat and enforces ownership.
func (s *WaypointService) ownedBoat(ctx context.Context, callerID, boatID string) (*models.Boat, error) {
	boat, err := s.boats.Get(ctx, boatID)
	if err != nil {
		return nil, err
	}
	if boat.Owner != callerID {
		return nil, ErrNotFound
	}
	return boat, nil
}

func (s *WaypointService) CreateWaypoint(ctx context.Context, callerID string, wp *models.Waypoint) (*models.Waypoint, error) {
	if wp.Name == "" {
		return nil, fmt.Errorf("waypoint name is required")
	}
	if _, err := s.ownedBoat(ctx, callerID, wp.Boat); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wp.ID = uuid.New().String()
	wp.Rev = 0
	if wp.Date.IsZero() {
		wp.Date = now
	}
	wp.CreatedAt = now
	wp.UpdatedAt = now

	if err := s.repo.Save(ctx, wp); err != nil {
		logger.Log.Error("waypoint create failed (service)", zap.String("boat_id", wp.Boat), zap.Error(err))
		return nil, err
	}
	logger.Log.Info("waypoint created (service)", zap.String("waypoint_id", wp.ID), zap.String("boat_id", wp.Boat))
	return wp, nil
}

func (s *WaypointService) GetWaypoint(ctx context.Context, callerID, id string) (*models.Waypoint, error) {
	wp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedBoat(ctx, callerID, wp.Boat); err != nil {
		return nil, err
	}
	return wp, nil
}

func (s *WaypointService) ListByBoat(ctx context.Context, callerID, boatID string) ([]*models.Waypoint, error) {
	if _, err := s.ownedBoat(ctx, callerID, boatID); err != nil {
		return nil, err
	}
	return s.repo.FindByBoat(ctx, boatID)
}

func (s *WaypointService) UpdateWaypoint(ctx context.Context, callerID, id string, input *models.UpdateWaypointRequest) (*models.Waypoint, error) {
	wp, err := s.GetWaypoint(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		wp.Name = *input.Name
	}
	if input.Latitude != nil {
		wp.Latitude = *input.Latitude
	}
	if input.Longitude != nil {
		wp.Longitude = *input.Longitude
	}
	if input.Note != nil {
		wp.Note = *input.Note
	}
	if input.BTM != nil {
		wp.BTM = *input.BTM
	}
	if input.DTM != nil {
		wp.DTM = *input.DTM
	}
	if input.COG != nil {
		wp.COG = *input.COG
	}
	if input.SOG != nil {
		wp.SOG = *input.SOG
	}
	if input.HeadedFor != nil {
		wp.HeadedFor = *input.HeadedFor
	}
	if input.Maneuver != nil {
		wp.Maneuver = *input.Maneuver
	}
	if input.ForeSail != nil {
		wp.ForeSail = *input.ForeSail
	}
	if input.MainSail != nil {
		wp.MainSail = *input.MainSail
	}
	wp.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, wp); err != nil {
		logger.Log.Warn("waypoint update failed (service)", zap.String("waypoint_id", id), zap.Error(err))
		return nil, err
	}
	return wp, nil
}

func (s *WaypointService) DeleteWaypoint(ctx context.Context, callerID, id string) error {
	if _, err := s.GetWaypoint(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Error("waypoint delete failed (service)", zap.String("waypoint_id", id), zap.Error(err))
		return err
	}
	logger.Log.Info("waypoint deleted (service)", zap.String("waypoint_id", id))
	return nil
}
