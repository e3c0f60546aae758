package repository

import (
	"context"
	"errors"
	"testing"

	"sailbook/internal/models"
)

func TestSaveAssignsAndBumpsRevision(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{ID: "id-1", AccountName: "a@x.com"}
	if err := repo.Save(ctx, account); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if account.Rev != 1 {
		t.Fatalf("fresh document must be at rev 1, got %d", account.Rev)
	}

	account.AccountName = "b@x.com"
	if err := repo.Save(ctx, account); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if account.Rev != 2 {
		t.Fatalf("update must bump the revision, got %d", account.Rev)
	}

	stored, err := repo.Get(ctx, "id-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.AccountName != "b@x.com" || stored.Rev != 2 {
		t.Fatalf("stored document out of sync: %+v", stored)
	}
}

func TestStaleSaveConflicts(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, &models.Account{ID: "id-1", AccountName: "a@x.com"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// two readers pick up the same revision
	first, _ := repo.Get(ctx, "id-1")
	second, _ := repo.Get(ctx, "id-1")

	first.AccountName = "first@x.com"
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("first writer must win: %v", err)
	}

	second.AccountName = "second@x.com"
	if err := repo.Save(ctx, second); !errors.Is(err, ErrConflict) {
		t.Fatalf("stale writer must get ErrConflict, got %v", err)
	}

	stored, _ := repo.Get(ctx, "id-1")
	if stored.AccountName != "first@x.com" {
		t.Fatalf("losing write leaked into the store: %q", stored.AccountName)
	}
}

func TestInsertDuplicateIDConflicts(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, &models.Account{ID: "id-1"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Save(ctx, &models.Account{ID: "id-1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("second insert with the same id must conflict, got %v", err)
	}
}

func TestGetUnknownID(t *testing.T) {
	repo := NewMemoryAccountRepository()
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDeletedDocument(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	account := &models.Account{ID: "id-1"}
	if err := repo.Save(ctx, account); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Delete(ctx, "id-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Save(ctx, account); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update of a deleted document must be ErrNotFound, got %v", err)
	}
}

func TestFindByNameFoldsCase(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, &models.Account{ID: "id-1", AccountName: "Skipper@X.com"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Save(ctx, &models.Account{ID: "id-2", AccountName: "other@x.com"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	matches, err := repo.FindByName(ctx, "skipper@x.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != "id-1" {
		t.Fatalf("case-folded lookup broken: %+v", matches)
	}

	matches, err = repo.FindByName(ctx, "nobody@x.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %d", len(matches))
	}
}

func TestFindByResetTokenHashIsExact(t *testing.T) {
	repo := NewMemoryAccountRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, &models.Account{ID: "id-1", ResetTokenHash: "AbC"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	matches, err := repo.FindByResetTokenHash(ctx, "abc")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matches) != 0 {
		t.Fatal("token hash lookup must be case-sensitive")
	}

	matches, err = repo.FindByResetTokenHash(ctx, "AbC")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected exact match, got %d", len(matches))
	}
}

func TestBoatRepositoryFindByOwner(t *testing.T) {
	repo := NewMemoryBoatRepository()
	ctx := context.Background()

	for _, b := range []*models.Boat{
		{ID: "b-1", Owner: "acc-1", BoatName: "Santa Maria"},
		{ID: "b-2", Owner: "acc-1", BoatName: "Pinta"},
		{ID: "b-3", Owner: "acc-2", BoatName: "Nina"},
	} {
		if err := repo.Save(ctx, b); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	boats, err := repo.FindByOwner(ctx, "acc-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(boats) != 2 {
		t.Fatalf("expected 2 boats for acc-1, got %d", len(boats))
	}
}

func TestWaypointRepositoryFindByBoat(t *testing.T) {
	repo := NewMemoryWaypointRepository()
	ctx := context.Background()

	for _, wp := range []*models.Waypoint{
		{ID: "w-1", Boat: "b-1", Name: "harbor"},
		{ID: "w-2", Boat: "b-2", Name: "buoy 3"},
	} {
		if err := repo.Save(ctx, wp); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	waypoints, err := repo.FindByBoat(ctx, "b-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(waypoints) != 1 || waypoints[0].Name != "harbor" {
		t.Fatalf("boat-scoped lookup broken: %+v", waypoints)
	}
}
