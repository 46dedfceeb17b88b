package geo

import (
	"errors"
	"math"
	"testing"
)

func TestDistanceKmSamePointIsZero(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: -8.8383, Lng: 13.2344},
		{Lat: 89.9, Lng: -179.9},
	}
	for _, p := range points {
		if got := DistanceKm(p, p); got != 0 {
			t.Fatalf("expected zero distance for %+v, got %v", p, got)
		}
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	luanda := Coordinate{Lat: -8.8383, Lng: 13.2344}
	benguela := Coordinate{Lat: -12.5778, Lng: 13.4077}

	ab := DistanceKm(luanda, benguela)
	ba := DistanceKm(benguela, luanda)
	if ab != ba {
		t.Fatalf("expected symmetric distance, got %v vs %v", ab, ba)
	}
	if ab <= 0 {
		t.Fatalf("expected positive distance, got %v", ab)
	}
}

func TestDistanceKmLuandaBenguela(t *testing.T) {
	luanda := Coordinate{Lat: -8.8383, Lng: 13.2344}
	benguela := Coordinate{Lat: -12.5778, Lng: 13.4077}

	got := DistanceKm(luanda, benguela)
	if math.Abs(got-417) > 5 {
		t.Fatalf("expected roughly 417km between Luanda and Benguela, got %v", got)
	}
}

func TestCoordinateValidate(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
	}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Fatalf("expected %+v to be valid, got %v", c, err)
		}
	}

	invalid := []Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -200},
	}
	for _, c := range invalid {
		err := c.Validate()
		if err == nil {
			t.Fatalf("expected %+v to be rejected", c)
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange, got %v", err)
		}
	}
}
