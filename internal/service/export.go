package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/pantry-tracker/backend/internal/types"
)

// DefaultExportLinkTTL is how long a presigned export link stays valid.
const DefaultExportLinkTTL = 15 * time.Minute

// ExportService uploads pantry snapshots and returns temporary links.
type ExportService struct {
	pantry  IPantryService
	storage ObjectStorage
	linkTTL time.Duration
	now     func() time.Time
}

func NewExportService(pantry IPantryService, storage ObjectStorage) *ExportService {
	return &ExportService{
		pantry:  pantry,
		storage: storage,
		linkTTL: DefaultExportLinkTTL,
		now:     time.Now,
	}
}

func exportKey(userID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("pantry-exports/%s/%d.json", userID, at.Unix())
}

func (s *ExportService) ExportPantry(ctx context.Context, userID uuid.UUID) (*types.ExportResult, error) {
	items, err := s.pantry.GetUserPantry(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.pantry.GetCupboardStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(types.PantryExport{
		UserID:      userID,
		GeneratedAt: now,
		Items:       items,
		Stats:       *stats,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode pantry export: %w", err)
	}

	key := exportKey(userID, now)
	if err := s.storage.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to upload pantry export: %w", err)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, key, s.linkTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to presign pantry export: %w", err)
	}

	log.Printf("[ExportService] Exported %d items for user %s to %s", len(items), userID, key)
	return &types.ExportResult{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.linkTTL),
		ItemCount: len(items),
	}, nil
}
