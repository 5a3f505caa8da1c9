package service

import (
	"organising-events-app/internal/model"
	"organising-events-app/internal/util"
)

// 事件侧的名单都以物化ID列表保存，分页就是对列表切片后再批量取回实体。
// 返回值依次是当前页、完整列表长度和下一页页码（-1 表示没有下一页）

func (s *EventService) GuestList(eventID string, perPage, cursor int) ([]*model.User, int, int, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedUsers(event.GuestList, perPage, cursor)
}

func (s *EventService) Attendees(eventID string, perPage, cursor int) ([]*model.User, int, int, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedUsers(event.Attendees, perPage, cursor)
}

func (s *EventService) ShowedUp(eventID string, perPage, cursor int) ([]*model.User, int, int, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedUsers(event.ShowedUp, perPage, cursor)
}

func (s *EventService) LeftEarly(eventID string, perPage, cursor int) ([]*model.User, int, int, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedUsers(event.Left, perPage, cursor)
}

func (s *EventService) pagedUsers(ids []string, perPage, cursor int) ([]*model.User, int, int, error) {
	start, end, next, err := util.PageBounds(len(ids), perPage, cursor)
	if err != nil {
		return nil, 0, -1, err
	}
	users, err := s.userRepo.FindByIDs(ids[start:end])
	if err != nil {
		return nil, 0, -1, err
	}
	return users, len(ids), next, nil
}
