package application_test

import (
	"context"
	"errors"
	"testing"

	"conductor/contexts/catalog/asset-service/adapters/memory"
	"conductor/contexts/catalog/asset-service/application"
	"conductor/contexts/catalog/asset-service/domain/entities"
	domainerrors "conductor/contexts/catalog/asset-service/domain/errors"
	"conductor/contexts/catalog/asset-service/ports"
)

func newService() (application.Service, *memory.Store) {
	store := memory.NewStore()
	return application.Service{
		Assets:      store,
		Collections: store,
		Clock:       store,
		IDs:         store,
	}, store
}

func TestCreateAssetDefaultsToDraft(t *testing.T) {
	service, _ := newService()

	asset, err := service.CreateAsset(context.Background(), application.CreateAssetInput{
		Title:         "Morning Light",
		ContributorID: "contrib_1",
		Category:      entities.CategoryMusic,
		Details:       entities.MusicDetails{DurationSeconds: 180, BPM: 120},
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.WorkflowState != "draft" {
		t.Fatalf("workflow state = %q, want draft", asset.WorkflowState)
	}
	if asset.AssetID == "" {
		t.Fatal("expected generated asset id")
	}

	got, err := service.GetAsset(context.Background(), asset.AssetID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got.Title != "Morning Light" {
		t.Fatalf("title = %q", got.Title)
	}
}

func TestCreateAssetRejectsMismatchedDetails(t *testing.T) {
	service, _ := newService()

	_, err := service.CreateAsset(context.Background(), application.CreateAssetInput{
		Title:         "Whoosh",
		ContributorID: "contrib_1",
		Category:      entities.CategorySFX,
		Details:       entities.MusicDetails{BPM: 90},
	})
	if !errors.Is(err, domainerrors.ErrDetailsMismatch) {
		t.Fatalf("err = %v, want ErrDetailsMismatch", err)
	}
}

func TestCreateAssetRejectsUnknownCategory(t *testing.T) {
	service, _ := newService()

	_, err := service.CreateAsset(context.Background(), application.CreateAssetInput{
		Title:         "Thing",
		ContributorID: "contrib_1",
		Category:      entities.Category("podcast"),
	})
	if !errors.Is(err, domainerrors.ErrInvalidCategory) {
		t.Fatalf("err = %v, want ErrInvalidCategory", err)
	}
}

func TestUpdateAssetPartial(t *testing.T) {
	service, _ := newService()
	asset := mustCreate(t, service, "Old Title", entities.CategoryLUT, entities.LUTDetails{Format: "cube"})

	updated, err := service.UpdateAsset(context.Background(), application.UpdateAssetInput{
		AssetID: asset.AssetID,
		Title:   "New Title",
	})
	if err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}
	if updated.Title != "New Title" {
		t.Fatalf("title = %q", updated.Title)
	}
	details, ok := updated.Details.(entities.LUTDetails)
	if !ok || details.Format != "cube" {
		t.Fatalf("details = %#v, want original LUT details preserved", updated.Details)
	}
}

func TestUpdateAssetDetailsMustMatchCategory(t *testing.T) {
	service, _ := newService()
	asset := mustCreate(t, service, "Clip", entities.CategoryStockFootage, entities.StockFootageDetails{Resolution: "4k"})

	_, err := service.UpdateAsset(context.Background(), application.UpdateAssetInput{
		AssetID: asset.AssetID,
		Details: entities.SFXDetails{Mood: "dark"},
	})
	if !errors.Is(err, domainerrors.ErrDetailsMismatch) {
		t.Fatalf("err = %v, want ErrDetailsMismatch", err)
	}
}

func TestListAssetsFiltersAndPaginates(t *testing.T) {
	service, _ := newService()
	for i := 0; i < 5; i++ {
		mustCreate(t, service, "Track", entities.CategoryMusic, entities.MusicDetails{})
	}
	mustCreate(t, service, "Whoosh", entities.CategorySFX, entities.SFXDetails{})

	items, total, err := service.ListAssets(context.Background(), ports.AssetListFilter{
		Category: entities.CategoryMusic,
		Limit:    2,
		Offset:   2,
	})
	if err != nil {
		t.Fatalf("ListAssets: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
}

func TestListAssetIDsIsStableAndComplete(t *testing.T) {
	service, _ := newService()
	var want []string
	for i := 0; i < 4; i++ {
		asset := mustCreate(t, service, "Track", entities.CategoryMusic, entities.MusicDetails{})
		want = append(want, asset.AssetID)
	}

	first, err := service.ListAssetIDs(context.Background(), ports.AssetListFilter{Category: entities.CategoryMusic})
	if err != nil {
		t.Fatalf("ListAssetIDs: %v", err)
	}
	second, err := service.ListAssetIDs(context.Background(), ports.AssetListFilter{Category: entities.CategoryMusic})
	if err != nil {
		t.Fatalf("ListAssetIDs: %v", err)
	}
	if len(first) != len(want) {
		t.Fatalf("len = %d, want %d", len(first), len(want))
	}
	for i := range first {
		if first[i] != want[i] || second[i] != first[i] {
			t.Fatalf("ordering unstable at %d: %q vs %q vs %q", i, want[i], first[i], second[i])
		}
	}
}

func TestAssignAssetToCollection(t *testing.T) {
	service, _ := newService()
	asset := mustCreate(t, service, "Clip", entities.CategoryMotionGraphics, entities.MotionGraphicsDetails{})

	collection, err := service.CreateCollection(context.Background(), application.CreateCollectionInput{Name: "Summer Pack"})
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := service.AssignAssetToCollection(context.Background(), asset.AssetID, collection.CollectionID); err != nil {
		t.Fatalf("AssignAssetToCollection: %v", err)
	}

	got, err := service.GetAsset(context.Background(), asset.AssetID)
	if err != nil {
		t.Fatalf("GetAsset: %v", err)
	}
	if got.CollectionID != collection.CollectionID {
		t.Fatalf("collection id = %q, want %q", got.CollectionID, collection.CollectionID)
	}

	err = service.AssignAssetToCollection(context.Background(), asset.AssetID, "missing")
	if !errors.Is(err, domainerrors.ErrCollectionNotFound) {
		t.Fatalf("err = %v, want ErrCollectionNotFound", err)
	}

	if err := service.RemoveAssetFromCollection(context.Background(), asset.AssetID); err != nil {
		t.Fatalf("RemoveAssetFromCollection: %v", err)
	}
	got, err = service.GetAsset(context.Background(), asset.AssetID)
	if err != nil {
		t.Fatalf("GetAsset after removal: %v", err)
	}
	if got.CollectionID != "" {
		t.Fatalf("collection id = %q after removal, want empty", got.CollectionID)
	}
}

func TestDeleteAsset(t *testing.T) {
	service, _ := newService()
	asset := mustCreate(t, service, "Track", entities.CategoryMusic, entities.MusicDetails{})

	if err := service.DeleteAsset(context.Background(), asset.AssetID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	_, err := service.GetAsset(context.Background(), asset.AssetID)
	if !errors.Is(err, domainerrors.ErrAssetNotFound) {
		t.Fatalf("err = %v, want ErrAssetNotFound", err)
	}
}

func mustCreate(t *testing.T, service application.Service, title string, category entities.Category, details entities.Details) entities.Asset {
	t.Helper()
	asset, err := service.CreateAsset(context.Background(), application.CreateAssetInput{
		Title:         title,
		ContributorID: "contrib_1",
		Category:      category,
		Details:       details,
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	return asset
}
