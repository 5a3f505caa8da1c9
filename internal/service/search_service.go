package service

import (
	"time"

	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/util"
)

// DefaultLocationRangeKm 未指定搜索半径时使用的默认值
const DefaultLocationRangeKm = 10

// MaxLocationRangeKm 地理搜索允许的最大半径
const MaxLocationRangeKm = 100

// EventSearchParams 汇总事件搜索支持的过滤条件，零值的维度不参与过滤。
// RangeKm 为 nil 表示未给出半径，使用默认值；显式给出的半径必须落在 (0, 100]
type EventSearchParams struct {
	EventName string
	Latitude  *float64
	Longitude *float64
	RangeKm   *int
	Day       string
}

// SearchService 负责用户和事件的前缀搜索、地理搜索以及事件流
type SearchService struct {
	userRepo  interfaces.UserRepository
	eventRepo interfaces.EventRepository
}

func NewSearchService(userRepo interfaces.UserRepository, eventRepo interfaces.EventRepository) *SearchService {
	return &SearchService{userRepo: userRepo, eventRepo: eventRepo}
}

// SearchUsers 按名字前缀搜索用户。给出两个名字时取交集，
// 交集在内存中完成，因此不支持翻页
func (s *SearchService) SearchUsers(name1, name2 string, perPage int, cursor string) ([]*model.User, string, error) {
	if name1 == "" {
		return nil, "", errors.New(errors.ErrBadRequest, "未收到 user_name1")
	}
	range1, err := nameRange(name1)
	if err != nil {
		return nil, "", err
	}
	if name2 == "" {
		return s.userRepo.SearchByNameRange(range1, cursor, perPage)
	}

	range2, err := nameRange(name2)
	if err != nil {
		return nil, "", err
	}
	matched1, err := s.userRepo.FetchByNameRange(range1)
	if err != nil {
		return nil, "", err
	}
	matched2, err := s.userRepo.FetchByNameRange(range2)
	if err != nil {
		return nil, "", err
	}
	return intersectUsers(matched1, matched2), "", nil
}

// SearchEventsByNames 按事件名前缀搜索，规则与用户搜索一致
func (s *SearchService) SearchEventsByNames(name1, name2 string, perPage int, cursor string) ([]*model.Event, string, error) {
	if name1 == "" {
		return nil, "", errors.New(errors.ErrBadRequest, "未收到 event_name1")
	}
	range1, err := nameRange(name1)
	if err != nil {
		return nil, "", err
	}
	if name2 == "" {
		filters := model.EventFilters{Name: &range1}
		return s.eventRepo.Search(filters, cursor, perPage)
	}

	range2, err := nameRange(name2)
	if err != nil {
		return nil, "", err
	}
	matched1, err := s.eventRepo.FetchByNameRange(range1)
	if err != nil {
		return nil, "", err
	}
	matched2, err := s.eventRepo.FetchByNameRange(range2)
	if err != nil {
		return nil, "", err
	}
	return intersectEvents(matched1, matched2), "", nil
}

// SearchEvents 组合名字、位置和日期三个维度搜索事件
func (s *SearchService) SearchEvents(params EventSearchParams, perPage int, cursor string) ([]*model.Event, string, error) {
	filters := model.EventFilters{}

	if params.EventName != "" {
		r, err := nameRange(params.EventName)
		if err != nil {
			return nil, "", err
		}
		filters.Name = &r
	}

	if params.Latitude != nil && params.Longitude != nil {
		latitude, longitude := *params.Latitude, *params.Longitude
		if err := util.ValidateLocation(latitude, longitude); err != nil {
			return nil, "", err
		}
		rangeKm := DefaultLocationRangeKm
		if params.RangeKm != nil {
			rangeKm = *params.RangeKm
		}
		if rangeKm <= 0 || rangeKm > MaxLocationRangeKm {
			return nil, "", errors.Newf(errors.ErrBadRequest,
				"location_range 必须在 0 到 %d 公里之间", MaxLocationRangeKm)
		}
		boundaries := util.LocationSearchBoundaries(latitude, longitude, float64(rangeKm))
		filters.Boundaries = &boundaries
	} else if params.Latitude != nil || params.Longitude != nil {
		return nil, "", errors.New(errors.ErrBadRequest, "位置搜索必须同时提供 latitude 和 longitude")
	}

	switch params.Day {
	case "":
	case "today":
		filters.DayMin, filters.DayMax = dayWindow(time.Now(), 0)
	case "tomorrow":
		filters.DayMin, filters.DayMax = dayWindow(time.Now(), 1)
	default:
		// TODO: 支持按任意日期搜索
		util.Logger.Warn("按任意日期搜索尚未实现，忽略该过滤条件", zap.String("day", params.Day))
	}

	return s.eventRepo.Search(filters, cursor, perPage)
}

// Feed 按开始时间先后返回事件流
func (s *SearchService) Feed(perPage int, cursor string) ([]*model.Event, string, error) {
	return s.eventRepo.Feed(cursor, perPage)
}

// nameRange 把搜索词转换成文档库可用的半开区间 [Min, Max)。
// 搜索词全部由 'z' 组成时没有后继，区间退化成只有下界
func nameRange(name string) (model.NameRange, error) {
	next, ok, err := util.NextName(name)
	if err != nil {
		return model.NameRange{}, err
	}
	r := model.NameRange{Min: util.Capitalize(name)}
	if ok {
		r.Max = next
	}
	return r, nil
}

// dayWindow 返回距今 offsetDays 天的那一天在服务器时区下的起止时刻
func dayWindow(now time.Time, offsetDays int) (time.Time, time.Time) {
	day := now.AddDate(0, 0, offsetDays)
	min := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return min, min.Add(24 * time.Hour)
}

// intersectUsers 保持第一组的顺序，保留同时出现在第二组里的用户
func intersectUsers(first, second []*model.User) []*model.User {
	ids := make(map[string]bool, len(second))
	for _, user := range second {
		ids[user.ID] = true
	}
	var result []*model.User
	for _, user := range first {
		if ids[user.ID] {
			result = append(result, user)
		}
	}
	return result
}

func intersectEvents(first, second []*model.Event) []*model.Event {
	ids := make(map[string]bool, len(second))
	for _, event := range second {
		ids[event.ID.Hex()] = true
	}
	var result []*model.Event
	for _, event := range first {
		if ids[event.ID.Hex()] {
			result = append(result, event)
		}
	}
	return result
}
