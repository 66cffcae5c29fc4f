package repositories

import (
	"context"
	"testing"

	"github.com/vairleon/ai-web-core/domain"
)

func TestAuthorityRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	userRepo := NewUserRepository(db)
	repo := NewAuthorityRepository(db)
	ctx := context.Background()
	owner := seedUser(t, userRepo, 1)

	first := &domain.Authority{FeatureKey: "sd", OwnerID: owner.ID}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected the assigned id to be written back")
	}
	second := &domain.Authority{FeatureKey: "render", OwnerID: owner.ID}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	held, err := repo.ListByOwner(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(held) != 2 {
		t.Fatalf("expected 2 authorities, got %d", len(held))
	}
	keys := map[string]bool{}
	for _, a := range held {
		keys[a.FeatureKey] = true
		if a.OwnerID != owner.ID {
			t.Errorf("authority %d belongs to %d, want %d", a.ID, a.OwnerID, owner.ID)
		}
	}
	if !keys["sd"] || !keys["render"] {
		t.Errorf("unexpected feature keys: %v", keys)
	}

	empty, err := repo.ListByOwner(ctx, 404)
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no authorities for an unknown owner, got %d", len(empty))
	}
}
