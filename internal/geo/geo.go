package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfRange 坐标超出合法范围
var ErrOutOfRange = errors.New("坐标超出合法范围")

// earthRadiusKm 地球平均半径（球面模型）
const earthRadiusKm = 6371.0

// Coordinate 地理坐标（十进制度）
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate 校验坐标范围
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: lat=%v", ErrOutOfRange, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: lng=%v", ErrOutOfRange, c.Lng)
	}
	return nil
}

// DistanceKm 计算两点间大圆距离（haversine 公式，单位公里）
// 调用方需保证坐标已通过 Validate；相同坐标返回 0。
func DistanceKm(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	latA := toRadians(a.Lat)
	latB := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
