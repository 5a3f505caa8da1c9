package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
)

// TestSearchUsersSingleName 测试单名搜索走文档库的区间查询
func TestSearchUsersSingleName(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service := NewSearchService(mockUserRepo, new(MockEventRepository))

	expectedRange := model.NameRange{Min: "Matti", Max: "Mattj"}
	results := []*model.User{{ID: "uid1"}}
	mockUserRepo.On("SearchByNameRange", expectedRange, "", 10).Return(results, "cursor1", nil)

	users, next, err := service.SearchUsers("matti", "", 10, "")
	assert.NoError(t, err)
	assert.Equal(t, results, users)
	assert.Equal(t, "cursor1", next)
	mockUserRepo.AssertExpectations(t)
}

// TestSearchUsersTwoNames 测试双名搜索取交集，保持第一组顺序
func TestSearchUsersTwoNames(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service := NewSearchService(mockUserRepo, new(MockEventRepository))

	byFirst := []*model.User{{ID: "uid1"}, {ID: "uid2"}, {ID: "uid3"}}
	bySecond := []*model.User{{ID: "uid3"}, {ID: "uid1"}}
	mockUserRepo.On("FetchByNameRange", model.NameRange{Min: "Matti", Max: "Mattj"}).Return(byFirst, nil)
	mockUserRepo.On("FetchByNameRange", model.NameRange{Min: "Maija", Max: "Maijb"}).Return(bySecond, nil)

	users, next, err := service.SearchUsers("matti", "maija", 10, "")
	assert.NoError(t, err)
	assert.Equal(t, "", next)
	assert.Len(t, users, 2)
	assert.Equal(t, "uid1", users[0].ID)
	assert.Equal(t, "uid3", users[1].ID)
}

// TestSearchUsersMissingName 测试缺少第一个名字时报错
func TestSearchUsersMissingName(t *testing.T) {
	service := NewSearchService(new(MockUserRepository), new(MockEventRepository))

	_, _, err := service.SearchUsers("", "", 10, "")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

// TestSearchEventsByLocation 测试位置搜索构造边界框
func TestSearchEventsByLocation(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewSearchService(new(MockUserRepository), mockEventRepo)

	latitude, longitude := 49.4, 15.6
	mockEventRepo.On("Search", mock.MatchedBy(func(filters model.EventFilters) bool {
		if filters.Boundaries == nil || filters.Name != nil {
			return false
		}
		b := filters.Boundaries
		return b.MinLatitude < latitude && latitude < b.MaxLatitude &&
			b.MinLongitude < longitude && longitude < b.MaxLongitude && !b.Wraps
	}), "", 10).Return([]*model.Event{}, "", nil)

	_, _, err := service.SearchEvents(EventSearchParams{Latitude: &latitude, Longitude: &longitude}, 10, "")
	assert.NoError(t, err)
	mockEventRepo.AssertExpectations(t)
}

// TestSearchEventsRangeOutOfBounds 测试显式给出的搜索半径必须落在 (0, 100]，
// 零和负数不回退到默认值
func TestSearchEventsRangeOutOfBounds(t *testing.T) {
	service := NewSearchService(new(MockUserRepository), new(MockEventRepository))

	latitude, longitude := 49.4, 15.6
	for _, rangeKm := range []int{500, 0, -5} {
		r := rangeKm
		_, _, err := service.SearchEvents(EventSearchParams{
			Latitude:  &latitude,
			Longitude: &longitude,
			RangeKm:   &r,
		}, 10, "")
		assert.Error(t, err)
		appErr, ok := err.(*errors.AppError)
		assert.True(t, ok)
		assert.Equal(t, errors.ErrBadRequest, appErr.Code)
	}
}

// TestSearchEventsPartialLocation 测试只给出纬度或经度时报错
func TestSearchEventsPartialLocation(t *testing.T) {
	service := NewSearchService(new(MockUserRepository), new(MockEventRepository))

	latitude := 49.4
	_, _, err := service.SearchEvents(EventSearchParams{Latitude: &latitude}, 10, "")
	assert.Error(t, err)
}

// TestSearchEventsUnknownDay 测试未知的日期过滤被忽略
func TestSearchEventsUnknownDay(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewSearchService(new(MockUserRepository), mockEventRepo)

	mockEventRepo.On("Search", mock.MatchedBy(func(filters model.EventFilters) bool {
		return filters.DayMin.IsZero() && filters.DayMax.IsZero()
	}), "", 10).Return([]*model.Event{}, "", nil)

	_, _, err := service.SearchEvents(EventSearchParams{Day: "2026-09-01"}, 10, "")
	assert.NoError(t, err)
	mockEventRepo.AssertExpectations(t)
}

// TestSearchEventsToday 测试今天的日期窗口过滤
func TestSearchEventsToday(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewSearchService(new(MockUserRepository), mockEventRepo)

	mockEventRepo.On("Search", mock.MatchedBy(func(filters model.EventFilters) bool {
		if filters.DayMin.IsZero() || filters.DayMax.IsZero() {
			return false
		}
		return filters.DayMax.Sub(filters.DayMin) == 24*time.Hour
	}), "", 10).Return([]*model.Event{}, "", nil)

	_, _, err := service.SearchEvents(EventSearchParams{Day: "today"}, 10, "")
	assert.NoError(t, err)
	mockEventRepo.AssertExpectations(t)
}

// TestNameRangeAllZ 测试全z搜索词的区间只有下界
func TestNameRangeAllZ(t *testing.T) {
	r, err := nameRange("zzz")
	assert.NoError(t, err)
	assert.Equal(t, "Zzz", r.Min)
	assert.Equal(t, "", r.Max)
}

// TestFeed 测试事件流直接透传文档库结果
func TestFeed(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewSearchService(new(MockUserRepository), mockEventRepo)

	events := []*model.Event{{ID: primitive.NewObjectID()}}
	mockEventRepo.On("Feed", "", 10).Return(events, "next", nil)

	result, next, err := service.Feed(10, "")
	assert.NoError(t, err)
	assert.Equal(t, events, result)
	assert.Equal(t, "next", next)
}
