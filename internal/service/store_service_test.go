package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aqua-next/internal/constants"
	"github.com/aqua-next/internal/geo"
	"github.com/aqua-next/internal/models"
	"github.com/aqua-next/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStoreServiceTest(t *testing.T) (*StoreService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:store_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Store{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewStoreService(repository.NewStoreRepository(db)), db
}

func TestCreateStoreDefaultsAndValidation(t *testing.T) {
	svc, _ := setupStoreServiceTest(t)

	store, err := svc.Create(StoreInput{
		Name:    " Aqua Luanda Centro ",
		City:    "Luanda",
		Address: "Rua Amílcar Cabral 12",
		Lat:     -8.8383,
		Lng:     13.2344,
	})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if store.Name != "Aqua Luanda Centro" {
		t.Fatalf("expected trimmed name, got %q", store.Name)
	}
	if store.Status != constants.StoreStatusActive {
		t.Fatalf("expected default active status, got %s", store.Status)
	}

	cases := []StoreInput{
		{Name: "", City: "Luanda", Address: "x", Lat: 0, Lng: 0},
		{Name: "Aqua", City: "Luanda", Address: "x", Lat: 95, Lng: 0},
		{Name: "Aqua", City: "Luanda", Address: "x", Lat: 0, Lng: 200},
		{Name: "Aqua", City: "Luanda", Address: "x", Lat: 0, Lng: 0, Status: "closed"},
	}
	for i, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdateStore(t *testing.T) {
	svc, _ := setupStoreServiceTest(t)

	store, err := svc.Create(StoreInput{
		Name: "Aqua Benguela", City: "Benguela", Address: "Av. Norton de Matos 45",
		Lat: -12.5778, Lng: 13.4077,
	})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	updated, err := svc.Update(store.ID, StoreInput{
		Name: "Aqua Benguela Centro", City: "Benguela", Address: "Av. Norton de Matos 45",
		Lat: -12.5778, Lng: 13.4077, Status: constants.StoreStatusMaintenance, SortOrder: 3,
	})
	if err != nil {
		t.Fatalf("update store failed: %v", err)
	}
	if updated.Name != "Aqua Benguela Centro" || updated.Status != constants.StoreStatusMaintenance {
		t.Fatalf("unexpected updated store: %+v", updated)
	}
	if updated.SortOrder != 3 {
		t.Fatalf("expected sort order 3, got %d", updated.SortOrder)
	}

	if _, err := svc.Update(99999, StoreInput{
		Name: "x", City: "y", Address: "z", Lat: 0, Lng: 0,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteStore(t *testing.T) {
	svc, _ := setupStoreServiceTest(t)

	store, err := svc.Create(StoreInput{
		Name: "Aqua Lobito", City: "Lobito", Address: "Rua Robert Williams 8",
		Lat: -12.3644, Lng: 13.5361,
	})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	if err := svc.Delete(store.ID); err != nil {
		t.Fatalf("delete store failed: %v", err)
	}
	if _, err := svc.Get(store.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(store.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSearchStoresRanksByDistance(t *testing.T) {
	svc, _ := setupStoreServiceTest(t)

	luanda, err := svc.Create(StoreInput{
		Name: "Aqua Luanda Centro", City: "Luanda", Address: "Rua Amílcar Cabral 12",
		Lat: -8.8383, Lng: 13.2344,
	})
	if err != nil {
		t.Fatalf("create luanda failed: %v", err)
	}
	benguela, err := svc.Create(StoreInput{
		Name: "Aqua Benguela", City: "Benguela", Address: "Av. Norton de Matos 45",
		Lat: -12.5778, Lng: 13.4077,
	})
	if err != nil {
		t.Fatalf("create benguela failed: %v", err)
	}

	origin := &geo.Coordinate{Lat: -8.84, Lng: 13.23}
	ranked, err := svc.Search(origin, "")
	if err != nil {
		t.Fatalf("search stores failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(ranked))
	}
	if ranked[0].ID != luanda.ID || ranked[1].ID != benguela.ID {
		t.Fatalf("expected luanda before benguela, got %d %d", ranked[0].ID, ranked[1].ID)
	}
	if ranked[0].DistanceKm == nil || ranked[1].DistanceKm == nil {
		t.Fatalf("expected distances filled when origin given")
	}
	if *ranked[0].DistanceKm >= *ranked[1].DistanceKm {
		t.Fatalf("expected ascending distances, got %v / %v", *ranked[0].DistanceKm, *ranked[1].DistanceKm)
	}
}

func TestSearchStoresKeywordFilter(t *testing.T) {
	svc, _ := setupStoreServiceTest(t)

	if _, err := svc.Create(StoreInput{
		Name: "Aqua Luanda Centro", City: "Luanda", Address: "Rua Amílcar Cabral 12",
		Lat: -8.8383, Lng: 13.2344,
	}); err != nil {
		t.Fatalf("create luanda failed: %v", err)
	}
	benguela, err := svc.Create(StoreInput{
		Name: "Aqua Benguela", City: "Benguela", Address: "Av. Norton de Matos 45",
		Lat: -12.5778, Lng: 13.4077,
	})
	if err != nil {
		t.Fatalf("create benguela failed: %v", err)
	}

	ranked, err := svc.Search(nil, "BENGUELA")
	if err != nil {
		t.Fatalf("search stores failed: %v", err)
	}
	if len(ranked) != 1 || ranked[0].ID != benguela.ID {
		t.Fatalf("expected only benguela, got %+v", ranked)
	}
	if ranked[0].DistanceKm != nil {
		t.Fatalf("expected no distance without origin")
	}
}

func TestSearchStoresRejectInvalidOrigin(t *testing.T) {
	svc, _ := setupStoreServiceTest(t)

	origin := &geo.Coordinate{Lat: 100, Lng: 0}
	if _, err := svc.Search(origin, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for invalid origin, got %v", err)
	}
}
