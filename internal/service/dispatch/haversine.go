package dispatch

import (
	"math"

	"dispatch/internal/entities"
)

const earthRadiusKm = 6371.0

func haversineKm(a, b entities.Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// boundingBox грубый прямоугольник вокруг точки для предфильтра в базе.
// Он всегда шире круга радиуса radiusKm. У 180-го меридиана долгота
// переносится на другую сторону и MinLng > MaxLng.
func boundingBox(center entities.Point, radiusKm float64) entities.BoundingBox {
	dLat := radiusKm / earthRadiusKm * 180 / math.Pi

	box := entities.BoundingBox{
		MinLat: math.Max(-90, center.Lat-dLat),
		MaxLat: math.Min(90, center.Lat+dLat),
		MinLng: -180,
		MaxLng: 180,
	}

	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if cosLat <= 1e-6 {
		return box
	}
	dLng := dLat / cosLat
	if dLng >= 180 {
		return box
	}

	box.MinLng = wrapLng(center.Lng - dLng)
	box.MaxLng = wrapLng(center.Lng + dLng)
	return box
}

func wrapLng(lng float64) float64 {
	switch {
	case lng < -180:
		return lng + 360
	case lng > 180:
		return lng - 360
	}
	return lng
}
