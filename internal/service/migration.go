package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scoly/backend/internal/entity"
)

// MigrateGuestCart merges a guest cart into a signed-in user's remote cart.
// It runs once per sign-in, before the client refreshes its view.
//
// The guest lines are claimed atomically first (load-and-delete in one
// step), so two tabs racing the same sign-in cannot both apply them. The
// merge itself is computed as a pure plan and then applied line by line;
// quantities are added to existing rows, never overwritten. A line that
// fails to apply is logged and skipped — sign-in must not be blocked by a
// partial cart.
func (s *CartService) MigrateGuestCart(ctx context.Context, guestKey, userID string) error {
	if guestKey == "" || userID == "" {
		return ErrNoIdentity
	}

	lines, err := s.guestStore.Drain(ctx, guestKey)
	if err != nil {
		return fmt.Errorf("failed to drain guest cart: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	remote, err := s.carts.ListForUser(ctx, userID)
	if err != nil {
		// Nothing has been applied yet; put the lines back so the next
		// sign-in attempt can retry the whole migration.
		if saveErr := s.guestStore.Save(ctx, guestKey, lines); saveErr != nil {
			slog.Error("Failed to restore guest cart after aborted migration",
				"guest_key", guestKey, "err", saveErr)
		}
		return fmt.Errorf("failed to load remote cart: %w", err)
	}

	plan := entity.BuildMergePlan(lines, remote)

	failed := 0
	for _, upd := range plan.Updates {
		if err := s.carts.UpdateQuantity(ctx, upd.RowID, upd.Quantity); err != nil {
			failed++
			slog.Error("Failed to migrate guest cart line",
				"user_id", userID, "product_id", upd.ProductID, "err", err)
		}
	}
	for _, line := range plan.Inserts {
		if _, err := s.carts.Insert(ctx, userID, line.ProductID, line.Quantity); err != nil {
			failed++
			slog.Error("Failed to migrate guest cart line",
				"user_id", userID, "product_id", line.ProductID, "err", err)
		}
	}

	slog.Info("Guest cart migrated",
		"guest_key", guestKey, "user_id", userID, "lines", len(lines), "failed", failed)

	s.publish(ctx, entity.Identity{GuestKey: guestKey, UserID: userID}, entity.CartMigrated{
		GuestKey:   guestKey,
		UserID:     userID,
		Lines:      len(lines),
		Failed:     failed,
		MigratedAt: time.Now(),
	})
	return nil
}
