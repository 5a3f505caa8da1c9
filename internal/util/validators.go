package util

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"organising-events-app/internal/errors"
)

// MaxEventWindow 事件从开始到结束允许的最大时长
const MaxEventWindow = 7 * 24 * time.Hour

var (
	picturePattern = regexp.MustCompile(`^https?:[/.\w\s\-%?=&]*\.(jpg|gif|png)$`)
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateLocation 校验经纬度是否在合法范围内
func ValidateLocation(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return errors.Newf(errors.ErrValidation, "纬度不合法: %f", lat)
	}
	if lon < -180 || lon > 180 {
		return errors.Newf(errors.ErrValidation, "经度不合法: %f", lon)
	}
	return nil
}

// ValidatePictureURL 校验图片链接，必须是以 jpg|gif|png 结尾的 http(s) 地址
func ValidatePictureURL(imageURL string) error {
	if !picturePattern.MatchString(imageURL) {
		return errors.Newf(errors.ErrValidation, "图片链接不合法: %s", imageURL)
	}
	return nil
}

// ValidateEmail 校验邮箱地址格式
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return errors.Newf(errors.ErrValidation, "邮箱地址不合法: %s", email)
	}
	return nil
}

// ValidateStartDatetime 校验事件开始时间：必须在未来，早于结束时间，
// 且结束时间距开始时间不超过一周
func ValidateStartDatetime(startDatetime, endDatetime time.Time) error {
	if !startDatetime.After(time.Now().UTC()) {
		return errors.Newf(errors.ErrValidation, "start_datetime: %s 必须在未来", startDatetime)
	}
	if !endDatetime.After(startDatetime) {
		return errors.Newf(errors.ErrValidation, "end_datetime: %s 必须晚于 start_datetime: %s",
			endDatetime, startDatetime)
	}
	if !endDatetime.Before(startDatetime.Add(MaxEventWindow)) {
		return errors.Newf(errors.ErrValidation,
			"start_datetime: %s 与 end_datetime: %s 相距过远，最多一周", startDatetime, endDatetime)
	}
	return nil
}

// ValidateEndDatetime 校验事件结束时间，约束与开始时间一致
func ValidateEndDatetime(endDatetime, startDatetime time.Time) error {
	if !endDatetime.After(time.Now().UTC()) {
		return errors.Newf(errors.ErrValidation, "end_datetime: %s 必须在未来", endDatetime)
	}
	if !endDatetime.After(startDatetime) {
		return errors.Newf(errors.ErrValidation, "end_datetime: %s 必须晚于 start_datetime: %s",
			endDatetime, startDatetime)
	}
	if !endDatetime.Before(startDatetime.Add(MaxEventWindow)) {
		return errors.Newf(errors.ErrValidation,
			"end_datetime: %s 过于遥远，最多晚于 start_datetime 一周", endDatetime)
	}
	return nil
}

// ValidateFutureDate 注册到 binding 的校验器，验证日期是否在未来
func ValidateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

// ValidateImageURL 注册到 binding 的校验器，验证字符串是否为图片链接
func ValidateImageURL(fl validator.FieldLevel) bool {
	url, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return ValidatePictureURL(url) == nil
}
