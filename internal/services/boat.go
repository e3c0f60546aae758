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

type BoatRepo interface {
	Get(ctx context.Context, id string) (*models.Boat, error)
	Save(ctx context.Context, boat *models.Boat) error
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]*models.Boat, error)
	FindByOwner(ctx context.Context, accountID string) ([]*models.Boat, error)
}

// BoatService owns boat CRUD and keeps the owner's boat set in sync via
// the account service.
type BoatService struct {
	repo      BoatRepo
	waypoints WaypointRepo
	accounts  *AccountService
}

func NewBoatService(repo BoatRepo, waypoints WaypointRepo, accounts *AccountService) *BoatService {
	return &BoatService{repo: repo, waypoints: waypoints, accounts: accounts}
}

// CreateBoat persists the boat and adds it to the owner's set.
func (s *BoatService) CreateBoat(ctx context.Context, ownerID string, boat *models.Boat) (*models.Boat, error) {
	if boat.BoatName == "" {
		return nil, fmt.Errorf("boat name is required")
	}

	now := time.Now().UTC()
	boat.ID = uuid.New().String()
	boat.Rev = 0
	boat.Owner = ownerID
	boat.CreatedAt = now
	boat.UpdatedAt = now

	if err := s.repo.Save(ctx, boat); err != nil {
		logger.Log.Error("boat create failed (service)", zap.Error(err))
		return nil, err
	}
	if err := s.accounts.AddBoat(ctx, ownerID, boat.ID); err != nil {
		logger.Log.Error("boat-to-account association failed (service)",
			zap.String("boat_id", boat.ID), zap.String("account_id", ownerID), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("boat created (service)", zap.String("boat_id", boat.ID), zap.String("account_id", ownerID))
	return boat, nil
}

// GetBoat hides other owners' boats behind ErrNotFound so the API does
// not leak which ids exist.
func (s *BoatService) GetBoat(ctx context.Context, callerID, id string) (*models.Boat, error) {
	boat, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if boat.Owner != callerID {
		return nil, ErrNotFound
	}
	return boat, nil
}

func (s *BoatService) ListBoats(ctx context.Context, callerID string) ([]*models.Boat, error) {
	return s.repo.FindByOwner(ctx, callerID)
}

// UpdateBoat applies the non-nil fields and persists with the revision
// the boat was read at, so a concurrent writer surfaces as a conflict.
func (s *BoatService) UpdateBoat(ctx context.Context, callerID, id string, input *models.UpdateBoatRequest) (*models.Boat, error) {
	boat, err := s.GetBoat(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if input.BoatName != nil {
		boat.BoatName = *input.BoatName
	}
	if input.RegisterNr != nil {
		boat.RegisterNr = *input.RegisterNr
	}
	if input.SailSign != nil {
		boat.SailSign = *input.SailSign
	}
	if input.HomePort != nil {
		boat.HomePort = *input.HomePort
	}
	if input.YachtClub != nil {
		boat.YachtClub = *input.YachtClub
	}
	if input.CallSign != nil {
		boat.CallSign = *input.CallSign
	}
	if input.Type != nil {
		boat.Type = *input.Type
	}
	if input.ConstructionYear != nil {
		boat.ConstructionYear = *input.ConstructionYear
	}
	if input.Length != nil {
		boat.Length = *input.Length
	}
	if input.Width != nil {
		boat.Width = *input.Width
	}
	if input.Draft != nil {
		boat.Draft = *input.Draft
	}
	if input.MastHeight != nil {
		boat.MastHeight = *input.MastHeight
	}
	if input.Displacement != nil {
		boat.Displacement = *input.Displacement
	}
	if input.Rigging != nil {
		boat.Rigging = *input.Rigging
	}
	if input.Engine != nil {
		boat.Engine = *input.Engine
	}
	if input.TankSize != nil {
		boat.TankSize = *input.TankSize
	}
	boat.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, boat); err != nil {
		logger.Log.Warn("boat update failed (service)", zap.String("boat_id", id), zap.Error(err))
		return nil, err
	}
	return boat, nil
}

// DeleteBoat removes the boat, its waypoints and the owner association.
func (s *BoatService) DeleteBoat(ctx context.Context, callerID, id string) error {
	boat, err := s.GetBoat(ctx, callerID, id)
	if err != nil {
		return err
	}

	waypoints, err := s.waypoints.FindByBoat(ctx, id)
	if err != nil {
		return err
	}
	for _, wp := range waypoints {
		if err := s.waypoints.Delete(ctx, wp.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Log.Error("boat delete failed (service)", zap.String("boat_id", id), zap.Error(err))
		return err
	}
	if err := s.accounts.RemoveBoat(ctx, boat.Owner, id); err != nil {
		return err
	}

	logger.Log.Info("boat deleted (service)", zap.String("boat_id", id))
	return nil
}
