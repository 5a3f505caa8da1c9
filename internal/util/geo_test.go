package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLocationSearchBoundaries 测试包围盒覆盖中心附近、排除远处
func TestLocationSearchBoundaries(t *testing.T) {
	lat, lon := 49.4, 15.6
	b := LocationSearchBoundaries(lat, lon, 10)

	assert.False(t, b.Wraps)
	assert.Greater(t, b.MaxLatitude, lat)
	assert.Less(t, b.MinLatitude, lat)
	assert.Greater(t, b.MaxLongitude, lon)
	assert.Less(t, b.MinLongitude, lon)

	// 中心点和近处都在包围盒内
	assert.True(t, b.Contains(lat, lon))
	assert.True(t, b.Contains(lat+0.05, lon-0.05))
	// 一千公里外在包围盒外
	assert.False(t, b.Contains(lat+9, lon))

	// 10 公里大致对应 0.09 度纬度
	assert.InDelta(t, 0.09, b.MaxLatitude-lat, 0.01)
}

// TestLocationSearchBoundariesWraps 测试横跨对向子午线的包围盒
func TestLocationSearchBoundariesWraps(t *testing.T) {
	b := LocationSearchBoundaries(0, 179.99, 50)

	assert.True(t, b.Wraps)
	assert.Greater(t, b.MinLongitude, b.MaxLongitude)
	// 子午线两侧的点都算在内
	assert.True(t, b.Contains(0, 179.995))
	assert.True(t, b.Contains(0, -179.9))
	assert.False(t, b.Contains(0, 0))
}

// TestNormalizeLongitude 测试经度归一化
func TestNormalizeLongitude(t *testing.T) {
	assert.InDelta(t, -179.5, normalizeLongitude(180.5), 1e-9)
	assert.InDelta(t, 179.5, normalizeLongitude(-180.5), 1e-9)
	assert.InDelta(t, 15.6, normalizeLongitude(15.6), 1e-9)
}
