package loyalty

import (
	"errors"
	"testing"

	"github.com/aqua-next/internal/geo"
)

func testStores() []StoreLocation {
	return []StoreLocation{
		{ID: 1, Name: "Aqua Luanda Centro", City: "Luanda", Address: "Rua Amílcar Cabral 12", Status: "active", Coordinate: geo.Coordinate{Lat: -8.8383, Lng: 13.2344}},
		{ID: 2, Name: "Aqua Benguela", City: "Benguela", Address: "Av. Norton de Matos 45", Status: "active", Coordinate: geo.Coordinate{Lat: -12.5778, Lng: 13.4077}},
		{ID: 3, Name: "Aqua Lobito", City: "Lobito", Address: "Zona da Restinga 8", Status: "maintenance", Coordinate: geo.Coordinate{Lat: -12.3644, Lng: 13.5361}},
		{ID: 4, Name: "Aqua Huambo", City: "Huambo", Address: "Largo do Cristo Rei 3", Status: "active", Coordinate: geo.Coordinate{Lat: -12.7761, Lng: 15.7392}},
		{ID: 5, Name: "Aqua Lubango", City: "Lubango", Address: "Rua Pinheiro Chagas 21", Status: "inactive", Coordinate: geo.Coordinate{Lat: -14.9167, Lng: 13.4925}},
	}
}

func TestRankStoresByDistance(t *testing.T) {
	origin := &geo.Coordinate{Lat: -8.8383, Lng: 13.2344} // 罗安达门店坐标

	ranked, err := RankStores(testStores(), origin, "")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(ranked) != 5 {
		t.Fatalf("expected all 5 stores, got %d", len(ranked))
	}
	if ranked[0].ID != 1 {
		t.Fatalf("expected origin store first, got %d", ranked[0].ID)
	}
	if *ranked[0].DistanceKm != 0 {
		t.Fatalf("expected zero distance at origin store, got %v", *ranked[0].DistanceKm)
	}
	if ranked[1].ID != 2 {
		t.Fatalf("expected Benguela second, got %d", ranked[1].ID)
	}
	if d := *ranked[1].DistanceKm; d < 400 || d > 430 {
		t.Fatalf("expected Benguela around 417km, got %v", d)
	}
	for i := 1; i < len(ranked); i++ {
		if *ranked[i].DistanceKm < *ranked[i-1].DistanceKm {
			t.Fatalf("distances not ascending at position %d", i)
		}
	}
}

func TestRankStoresQueryFilter(t *testing.T) {
	ranked, err := RankStores(testStores(), nil, "benguela")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("expected exactly one match for benguela, got %d", len(ranked))
	}
	if ranked[0].ID != 2 {
		t.Fatalf("expected store 2, got %d", ranked[0].ID)
	}

	// 过滤对带参考点与不带参考点的结果数一致
	origin := &geo.Coordinate{Lat: -10, Lng: 13}
	rankedWithOrigin, err := RankStores(testStores(), origin, "benguela")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	if len(rankedWithOrigin) != len(ranked) {
		t.Fatalf("ranking must not drop filtered stores: %d vs %d", len(rankedWithOrigin), len(ranked))
	}
}

func TestRankStoresWithoutOriginKeepsOrder(t *testing.T) {
	ranked, err := RankStores(testStores(), nil, "")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	for i, store := range ranked {
		if store.ID != uint(i+1) {
			t.Fatalf("expected original order without origin, position %d got %d", i, store.ID)
		}
		if store.DistanceKm != nil {
			t.Fatalf("expected no distance without origin")
		}
	}
}

func TestRankStoresKeepsMaintenanceAndInactive(t *testing.T) {
	ranked, err := RankStores(testStores(), nil, "")
	if err != nil {
		t.Fatalf("rank failed: %v", err)
	}
	statuses := map[string]bool{}
	for _, store := range ranked {
		statuses[store.Status] = true
	}
	if !statuses["maintenance"] || !statuses["inactive"] {
		t.Fatalf("maintenance/inactive stores must stay visible, got %v", statuses)
	}
}

func TestRankStoresRejectsInvalidOrigin(t *testing.T) {
	origin := &geo.Coordinate{Lat: 120, Lng: 0}
	if _, err := RankStores(testStores(), origin, ""); !errors.Is(err, geo.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestRankStoresRejectsInvalidStoreCoordinate(t *testing.T) {
	stores := testStores()
	stores[2].Coordinate = geo.Coordinate{Lat: -12.3644, Lng: 200}
	origin := &geo.Coordinate{Lat: -8.8383, Lng: 13.2344}
	if _, err := RankStores(stores, origin, ""); !errors.Is(err, geo.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange for broken store coordinate, got %v", err)
	}
}
