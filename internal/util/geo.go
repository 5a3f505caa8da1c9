package util

import (
	"math"

	"organising-events-app/internal/model"
)

const earthRadiusKm = 6371.0088

// LocationSearchBoundaries 以给定坐标为中心、rangeKm 为半径生成搜索包围盒。
// 向正北、正东、正南、正西四个方向沿大圆各走 rangeKm，取落点的纬度和经度
// 作为边界。经度归一化到 [-180, 180] 后，minLongitude 大于 maxLongitude
// 即说明包围盒横跨对向子午线。
func LocationSearchBoundaries(lat, lon, rangeKm float64) model.GeoBoundaries {
	maxLat, _ := destinationPoint(lat, lon, 0, rangeKm)
	_, maxLon := destinationPoint(lat, lon, 90, rangeKm)
	minLat, _ := destinationPoint(lat, lon, 180, rangeKm)
	_, minLon := destinationPoint(lat, lon, 270, rangeKm)
	return model.GeoBoundaries{
		MaxLatitude:  maxLat,
		MinLatitude:  minLat,
		MaxLongitude: maxLon,
		MinLongitude: minLon,
		Wraps:        minLon > maxLon,
	}
}

// destinationPoint 计算从起点沿给定方位角走 distanceKm 后的落点坐标
func destinationPoint(lat, lon, bearingDeg, distanceKm float64) (float64, float64) {
	phi1 := lat * math.Pi / 180
	lambda1 := lon * math.Pi / 180
	theta := bearingDeg * math.Pi / 180
	delta := distanceKm / earthRadiusKm

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	return phi2 * 180 / math.Pi, normalizeLongitude(lambda2 * 180 / math.Pi)
}

// normalizeLongitude 将经度归一化到 [-180, 180]
func normalizeLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
