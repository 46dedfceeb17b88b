package loyalty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aqua-next/internal/geo"
)

// StoreLocation 参与排序的门店快照
// 维护中/停用门店同样返回（可见性不等于可用性），过滤由调用方决定。
type StoreLocation struct {
	ID         uint           `json:"id"`
	Name       string         `json:"name"`
	City       string         `json:"city"`
	Address    string         `json:"address"`
	Status     string         `json:"status"`
	Coordinate geo.Coordinate `json:"coordinate"`
}

// RankedStore 排序结果项，DistanceKm 仅在提供参考点时填充
type RankedStore struct {
	StoreLocation
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// RankStores 按关键词过滤门店并按距参考点距离升序排列
// 空关键词匹配全部；无参考点时保持过滤后的原始顺序；
// 距离相同按门店 ID 升序保证确定性。
func RankStores(stores []StoreLocation, origin *geo.Coordinate, query string) ([]RankedStore, error) {
	if origin != nil {
		if err := origin.Validate(); err != nil {
			return nil, err
		}
	}

	keyword := strings.ToLower(strings.TrimSpace(query))
	matched := make([]RankedStore, 0, len(stores))
	for _, store := range stores {
		if keyword != "" && !storeMatches(store, keyword) {
			continue
		}
		if origin != nil {
			if err := store.Coordinate.Validate(); err != nil {
				return nil, fmt.Errorf("门店 %d 坐标非法: %w", store.ID, err)
			}
			distance := geo.DistanceKm(*origin, store.Coordinate)
			matched = append(matched, RankedStore{StoreLocation: store, DistanceKm: &distance})
			continue
		}
		matched = append(matched, RankedStore{StoreLocation: store})
	}

	if origin != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			if *matched[i].DistanceKm != *matched[j].DistanceKm {
				return *matched[i].DistanceKm < *matched[j].DistanceKm
			}
			return matched[i].ID < matched[j].ID
		})
	}
	return matched, nil
}

func storeMatches(store StoreLocation, keyword string) bool {
	return strings.Contains(strings.ToLower(store.Name), keyword) ||
		strings.Contains(strings.ToLower(store.City), keyword) ||
		strings.Contains(strings.ToLower(store.Address), keyword)
}
