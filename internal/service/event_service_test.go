package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/scheduler"
)

func boolPtr(b bool) *bool { return &b }

func newTestUser(id string) *model.User {
	return &model.User{ID: id, UserNames: []string{"Test", "User"}}
}

// TestCreateEvent 测试创建事件：一周内开始的事件要预约状态切换任务
func TestCreateEvent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockUserRepo := new(MockUserRepository)
	mockScheduler := new(MockScheduler)
	service := NewEventService(mockEventRepo, mockUserRepo, mockScheduler, nil)

	start := time.Now().UTC().Add(5 * 24 * time.Hour).Truncate(time.Second)
	input := &model.EventInput{
		EventName:     "Juhannus",
		StartDatetime: start.Format(time.RFC3339),
		Location:      []float64{49.4, 15.6},
		Private:       boolPtr(false),
	}

	mockUserRepo.On("FindByID", "org1").Return(newTestUser("org1"), nil)
	mockEventRepo.On("Create", mock.AnythingOfType("*model.Event")).Return(nil)
	mockScheduler.On("Schedule", scheduler.QueueStatusToPresent, mock.Anything, start, mock.Anything).Return(nil)
	mockUserRepo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

	event, err := service.CreateEvent(input, "org1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusFuture, event.Status)
	assert.Equal(t, start, event.StartDatetime)
	// 未提供结束时间时默认为开始后一天
	assert.Equal(t, start.Add(24*time.Hour), event.EndDatetime)
	assert.Equal(t, model.DefaultEventPictureURL, event.EventPictureURL)
	mockScheduler.AssertExpectations(t)
	mockEventRepo.AssertExpectations(t)
}

// TestCreateEventFarFuture 测试一周后才开始的事件不预约任务
func TestCreateEventFarFuture(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockUserRepo := new(MockUserRepository)
	mockScheduler := new(MockScheduler)
	service := NewEventService(mockEventRepo, mockUserRepo, mockScheduler, nil)

	start := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)
	input := &model.EventInput{
		EventName:     "Vappu",
		StartDatetime: start.Format(time.RFC3339),
		Location:      []float64{60.17, 24.94},
		Private:       boolPtr(true),
	}

	mockUserRepo.On("FindByID", "org1").Return(newTestUser("org1"), nil)
	mockEventRepo.On("Create", mock.AnythingOfType("*model.Event")).Return(nil)
	mockUserRepo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

	_, err := service.CreateEvent(input, "org1")
	assert.NoError(t, err)
	mockScheduler.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestCreateEventMissingFields 测试缺少必填字段时拒绝创建
func TestCreateEventMissingFields(t *testing.T) {
	service := NewEventService(new(MockEventRepository), new(MockUserRepository), new(MockScheduler), nil)

	_, err := service.CreateEvent(&model.EventInput{EventName: "No time"}, "org1")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

// TestEditPastEvent 测试已结束的事件拒绝编辑
func TestEditPastEvent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewEventService(mockEventRepo, new(MockUserRepository), new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Status: model.StatusPast, Organiser: "org1"}
	mockEventRepo.On("FindByID", eventID).Return(event, nil)

	_, err := service.EditEvent(eventID.Hex(), &model.EventPatch{EventName: "New name"}, "org1")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrEventFinished, appErr.Code)
}

// TestEditEventNotOrganiser 测试非组织者编辑被拒绝
func TestEditEventNotOrganiser(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewEventService(mockEventRepo, new(MockUserRepository), new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Status: model.StatusFuture, Organiser: "org1"}
	mockEventRepo.On("FindByID", eventID).Return(event, nil)

	_, err := service.EditEvent(eventID.Hex(), &model.EventPatch{EventName: "New name"}, "intruder")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

// TestEditPresentEvent 测试进行中的事件延后结束时间并重排结束任务
func TestEditPresentEvent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockScheduler := new(MockScheduler)
	service := NewEventService(mockEventRepo, new(MockUserRepository), mockScheduler, nil)

	eventID := primitive.NewObjectID()
	start := time.Now().UTC().Add(-1 * time.Hour).Truncate(time.Second)
	event := &model.Event{
		ID:            eventID,
		Status:        model.StatusPresent,
		Organiser:     "org1",
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
	}
	newEnd := start.Add(4 * time.Hour)

	mockEventRepo.On("FindByID", eventID).Return(event, nil)
	mockEventRepo.On("Update", event).Return(nil)
	mockScheduler.On("Cancel", scheduler.QueueStatusToPast, eventID.Hex()).Return(nil)
	mockScheduler.On("Schedule", scheduler.QueueStatusToPast, eventID.Hex(), newEnd, mock.Anything).Return(nil)

	updated, err := service.EditEvent(eventID.Hex(), &model.EventPatch{
		EndDatetime: newEnd.Format(time.RFC3339),
	}, "org1")
	assert.NoError(t, err)
	assert.Equal(t, newEnd, updated.EndDatetime)
	mockScheduler.AssertExpectations(t)
}

// TestEditPresentEventOtherFields 测试进行中的事件忽略结束时间以外的改动
func TestEditPresentEventOtherFields(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewEventService(mockEventRepo, new(MockUserRepository), new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Status: model.StatusPresent, Organiser: "org1", EventName: "Old"}
	mockEventRepo.On("FindByID", eventID).Return(event, nil)

	updated, err := service.EditEvent(eventID.Hex(), &model.EventPatch{EventName: "New"}, "org1")
	assert.NoError(t, err)
	assert.Equal(t, "Old", updated.EventName)
	mockEventRepo.AssertNotCalled(t, "Update", mock.Anything)
}

// TestAttendEvent 测试报名参加以及重复报名的幂等性
func TestAttendEvent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewEventService(mockEventRepo, mockUserRepo, new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Status: model.StatusFuture, Organiser: "org1"}
	user := newTestUser("guest1")

	mockEventRepo.On("FindByID", eventID).Return(event, nil)
	mockUserRepo.On("FindByID", "guest1").Return(user, nil)
	mockUserRepo.On("Update", user).Return(nil).Once()
	mockEventRepo.On("Update", event).Return(nil).Once()

	updated, err := service.AttendEvent(eventID.Hex(), "guest1")
	assert.NoError(t, err)
	assert.Contains(t, updated.Attendees, "guest1")
	assert.Contains(t, user.AttendingEvents, eventID)

	// 第二次报名不应再触发任何写入
	updated, err = service.AttendEvent(eventID.Hex(), "guest1")
	assert.NoError(t, err)
	assert.Len(t, updated.Attendees, 1)
	mockEventRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

// TestInviteUsers 测试邀请用户加入宾客名单
func TestInviteUsers(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockUserRepo := new(MockUserRepository)
	service := NewEventService(mockEventRepo, mockUserRepo, new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Status: model.StatusFuture, Organiser: "org1", GuestList: []string{"guest1"}}

	mockEventRepo.On("FindByID", eventID).Return(event, nil)
	mockEventRepo.On("Update", event).Return(nil)

	updated, err := service.InviteUsers(eventID.Hex(), []string{"guest1", "guest2"}, "org1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"guest1", "guest2"}, updated.GuestList)

	// 空名单是请求错误
	_, err = service.InviteUsers(eventID.Hex(), nil, "org1")
	assert.Error(t, err)
}

// TestChangeStatusToPresent 测试开始任务回调：推进状态并预约结束任务，
// 重复投递不再改动状态
func TestChangeStatusToPresent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockScheduler := new(MockScheduler)
	service := NewEventService(mockEventRepo, new(MockUserRepository), mockScheduler, nil)

	eventID := primitive.NewObjectID()
	end := time.Now().UTC().Add(3 * time.Hour).Truncate(time.Second)
	event := &model.Event{ID: eventID, Status: model.StatusFuture, EndDatetime: end}

	mockEventRepo.On("FindByID", eventID).Return(event, nil)
	mockEventRepo.On("Update", event).Return(nil).Once()
	mockScheduler.On("Schedule", scheduler.QueueStatusToPast, eventID.Hex(), end, mock.Anything).Return(nil).Once()

	updated, err := service.ChangeStatusToPresent(eventID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPresent, updated.Status)

	updated, err = service.ChangeStatusToPresent(eventID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPresent, updated.Status)
	mockEventRepo.AssertExpectations(t)
	mockScheduler.AssertExpectations(t)
}

// TestChangeStatusToPast 测试结束任务回调的幂等性
func TestChangeStatusToPast(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewEventService(mockEventRepo, new(MockUserRepository), new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Status: model.StatusPresent}

	mockEventRepo.On("FindByID", eventID).Return(event, nil)
	mockEventRepo.On("Update", event).Return(nil).Once()

	updated, err := service.ChangeStatusToPast(eventID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPast, updated.Status)

	updated, err = service.ChangeStatusToPast(eventID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPast, updated.Status)
	mockEventRepo.AssertExpectations(t)
}

// TestDeleteEvent 测试只有组织者能删除事件
func TestDeleteEvent(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	service := NewEventService(mockEventRepo, new(MockUserRepository), new(MockScheduler), nil)

	eventID := primitive.NewObjectID()
	event := &model.Event{ID: eventID, Organiser: "org1"}
	mockEventRepo.On("FindByID", eventID).Return(event, nil)
	mockEventRepo.On("Delete", eventID).Return(nil)

	err := service.DeleteEvent(eventID.Hex(), "intruder")
	assert.Error(t, err)

	err = service.DeleteEvent(eventID.Hex(), "org1")
	assert.NoError(t, err)
	mockEventRepo.AssertExpectations(t)
}

// TestGetEventInvalidID 测试非法的事件ID
func TestGetEventInvalidID(t *testing.T) {
	service := NewEventService(new(MockEventRepository), new(MockUserRepository), new(MockScheduler), nil)

	_, err := service.GetEvent("not-an-id")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}
