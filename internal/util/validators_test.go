package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestValidateLocation 测试经纬度范围校验
func TestValidateLocation(t *testing.T) {
	valid := [][2]float64{
		{0, 0},
		{90, 180},
		{-90, -180},
		{49.4, 15.6},
	}
	for _, c := range valid {
		assert.NoError(t, ValidateLocation(c[0], c[1]))
	}

	invalid := [][2]float64{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, c := range invalid {
		assert.Error(t, ValidateLocation(c[0], c[1]))
	}
}

// TestValidatePictureURL 测试图片链接校验
func TestValidatePictureURL(t *testing.T) {
	assert.NoError(t, ValidatePictureURL("https://example.com/picture.png"))
	assert.NoError(t, ValidatePictureURL("http://example.com/a/b/c.jpg"))
	assert.NoError(t, ValidatePictureURL("https://cdn.example.com/img.gif"))

	assert.Error(t, ValidatePictureURL("https://example.com/picture.bmp"))
	assert.Error(t, ValidatePictureURL("ftp://example.com/picture.png"))
	assert.Error(t, ValidatePictureURL("not a url"))
}

// TestValidateEmail 测试邮箱地址校验
func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("matti@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.example.fi"))

	assert.Error(t, ValidateEmail("matti(at)example.com"))
	assert.Error(t, ValidateEmail("matti@example"))
	assert.Error(t, ValidateEmail(""))
}

// TestValidateStartDatetime 测试开始时间的三条规则：
// 必须在未来、早于结束时间、与结束时间相距不超过一周
func TestValidateStartDatetime(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(24 * time.Hour)

	assert.NoError(t, ValidateStartDatetime(start, start.Add(2*time.Hour)))

	// 开始时间在过去
	assert.Error(t, ValidateStartDatetime(now.Add(-time.Hour), now.Add(time.Hour)))
	// 结束时间不晚于开始时间
	assert.Error(t, ValidateStartDatetime(start, start))
	assert.Error(t, ValidateStartDatetime(start, start.Add(-time.Hour)))
	// 超出一周的窗口
	assert.Error(t, ValidateStartDatetime(start, start.Add(8*24*time.Hour)))
}

// TestValidateEndDatetime 测试结束时间的校验
func TestValidateEndDatetime(t *testing.T) {
	now := time.Now().UTC()
	start := now.Add(-time.Hour)

	assert.NoError(t, ValidateEndDatetime(now.Add(2*time.Hour), start))

	// 结束时间在过去
	assert.Error(t, ValidateEndDatetime(now.Add(-time.Minute), start))
	// 结束时间超出开始后一周
	assert.Error(t, ValidateEndDatetime(start.Add(8*24*time.Hour), start))
}
