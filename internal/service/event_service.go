package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"organising-events-app/config"
	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/scheduler"
	"organising-events-app/internal/util"
)

// EventService 负责事件的生命周期：创建、编辑、参与关系以及状态推进
type EventService struct {
	eventRepo    interfaces.EventRepository
	userRepo     interfaces.UserRepository
	scheduler    scheduler.Scheduler
	emailService *EmailService
}

func NewEventService(eventRepo interfaces.EventRepository, userRepo interfaces.UserRepository, sched scheduler.Scheduler, emailService *EmailService) *EventService {
	return &EventService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		scheduler:    sched,
		emailService: emailService,
	}
}

// CreateEvent 创建一个未来状态的事件并在需要时预约状态切换任务
func (s *EventService) CreateEvent(input *model.EventInput, organiserID string) (*model.Event, error) {
	if input.EventName == "" || input.StartDatetime == "" || len(input.Location) != 2 || input.Private == nil {
		return nil, errors.New(errors.ErrBadRequest, "创建事件所需的信息不完整，必须提供 event_name, start_datetime, location, private")
	}

	pictureURL := input.EventPictureURL
	if pictureURL == "" {
		pictureURL = model.DefaultEventPictureURL
	}
	if err := util.ValidatePictureURL(pictureURL); err != nil {
		return nil, err
	}

	start, err := parseDatetime(input.StartDatetime)
	if err != nil {
		return nil, err
	}
	end := start.Add(24 * time.Hour)
	if input.EndDatetime != "" {
		end, err = parseDatetime(input.EndDatetime)
		if err != nil {
			return nil, err
		}
	}
	if err := util.ValidateStartDatetime(start, end); err != nil {
		return nil, err
	}
	if err := util.ValidateEndDatetime(end, start); err != nil {
		return nil, err
	}

	latitude, longitude := input.Location[0], input.Location[1]
	if err := util.ValidateLocation(latitude, longitude); err != nil {
		return nil, err
	}

	organiser, err := findUser(s.userRepo, organiserID)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		EventName:       input.EventName,
		Status:          model.StatusFuture,
		StartDatetime:   start,
		EndDatetime:     end,
		Latitude:        latitude,
		Longitude:       longitude,
		Location:        model.NewGeoPoint(latitude, longitude),
		EventPictureURL: pictureURL,
		Description:     input.Description,
		Private:         *input.Private,
		Organiser:       organiserID,
		GuestList:       dedupeStrings(input.GuestList),
		Attendees:       []string{},
		ShowedUp:        []string{},
		Left:            []string{},
		Posts:           nil,
	}
	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}

	if err := s.scheduleStatusToPresentIfSoon(event); err != nil {
		return nil, err
	}

	organiser.OrganisedEvents = append(organiser.OrganisedEvents, event.ID)
	if err := s.userRepo.Update(organiser); err != nil {
		return nil, err
	}

	util.Logger.Info("事件创建成功",
		zap.String("event_id", event.ID.Hex()),
		zap.String("organiser", organiserID))
	return event, nil
}

// GetEvent 查询单个事件
func (s *EventService) GetEvent(eventID string) (*model.Event, error) {
	return findEvent(s.eventRepo, eventID)
}

// EditEvent 按事件当前状态分派编辑规则：已结束的事件拒绝任何修改，
// 进行中的事件只允许延后结束时间，未开始的事件允许全量编辑
func (s *EventService) EditEvent(eventID string, patch *model.EventPatch, currentUID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organiser != currentUID {
		return nil, errors.New(errors.ErrForbidden, "当前用户无权执行此操作")
	}

	switch event.Status {
	case model.StatusPast:
		return nil, errors.New(errors.ErrEventFinished, "事件已结束，无法编辑")
	case model.StatusPresent:
		return s.editPresentEvent(event, patch)
	default:
		return s.editFutureEvent(event, patch)
	}
}

func (s *EventService) editPresentEvent(event *model.Event, patch *model.EventPatch) (*model.Event, error) {
	if patch.EndDatetime == "" {
		util.Logger.Warn("进行中的事件只能修改结束时间，没有任何改动被应用",
			zap.String("event_id", event.ID.Hex()))
		return event, nil
	}
	end, err := parseDatetime(patch.EndDatetime)
	if err != nil {
		return nil, err
	}
	if err := util.ValidateEndDatetime(end, event.StartDatetime); err != nil {
		return nil, err
	}
	event.EndDatetime = end
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	// 结束时间变了，旧的结束任务作废，按新时间重新预约
	if err := s.scheduler.Cancel(scheduler.QueueStatusToPast, event.ID.Hex()); err != nil {
		return nil, err
	}
	if err := s.scheduleStatusToPast(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) editFutureEvent(event *model.Event, patch *model.EventPatch) (*model.Event, error) {
	if patch.EventName != "" {
		event.EventName = patch.EventName
	}

	startChanged := false
	switch {
	case patch.StartDatetime != "" && patch.EndDatetime != "":
		start, err := parseDatetime(patch.StartDatetime)
		if err != nil {
			return nil, err
		}
		end, err := parseDatetime(patch.EndDatetime)
		if err != nil {
			return nil, err
		}
		if err := util.ValidateStartDatetime(start, end); err != nil {
			return nil, err
		}
		if err := util.ValidateEndDatetime(end, start); err != nil {
			return nil, err
		}
		event.StartDatetime = start
		event.EndDatetime = end
		startChanged = true
	case patch.StartDatetime != "":
		start, err := parseDatetime(patch.StartDatetime)
		if err != nil {
			return nil, err
		}
		if err := util.ValidateStartDatetime(start, event.EndDatetime); err != nil {
			return nil, err
		}
		event.StartDatetime = start
		startChanged = true
	case patch.EndDatetime != "":
		end, err := parseDatetime(patch.EndDatetime)
		if err != nil {
			return nil, err
		}
		if err := util.ValidateEndDatetime(end, event.StartDatetime); err != nil {
			return nil, err
		}
		event.EndDatetime = end
	}

	if len(patch.Location) == 2 {
		latitude, longitude := patch.Location[0], patch.Location[1]
		if err := util.ValidateLocation(latitude, longitude); err != nil {
			return nil, err
		}
		event.Latitude = latitude
		event.Longitude = longitude
		event.Location = model.NewGeoPoint(latitude, longitude)
	}
	if patch.EventPictureURL != "" {
		if err := util.ValidatePictureURL(patch.EventPictureURL); err != nil {
			return nil, err
		}
		event.EventPictureURL = patch.EventPictureURL
	}
	if patch.Description != "" {
		event.Description = patch.Description
	}
	if patch.Private != nil {
		event.Private = *patch.Private
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	if startChanged {
		// 开始时间变了，先清掉旧任务再按新时间预约
		if err := s.scheduler.Cancel(scheduler.QueueStatusToPresent, event.ID.Hex()); err != nil {
			return nil, err
		}
		if err := s.scheduleStatusToPresentIfSoon(event); err != nil {
			return nil, err
		}
	}
	return event, nil
}

// InviteUsers 把新的受邀人加入宾客名单并异步发送邀请邮件
func (s *EventService) InviteUsers(eventID string, guestList []string, currentUID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organiser != currentUID {
		return nil, errors.New(errors.ErrForbidden, "当前用户无权执行此操作")
	}
	if len(guestList) == 0 {
		return nil, errors.New(errors.ErrBadRequest, "未提供 guest_list")
	}

	var newGuests []string
	for _, uid := range dedupeStrings(guestList) {
		if !containsString(event.GuestList, uid) {
			newGuests = append(newGuests, uid)
		}
	}
	if len(newGuests) == 0 {
		util.Logger.Warn("所有受邀用户都已在宾客名单中", zap.String("event_id", event.ID.Hex()))
		return event, nil
	}

	event.GuestList = append(event.GuestList, newGuests...)
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		guests, err := s.userRepo.FindByIDs(newGuests)
		if err != nil {
			util.Logger.Warn("查询受邀用户失败，跳过邮件通知", zap.Error(err))
		} else {
			organiserName := ""
			if organiser, err := s.userRepo.FindByID(event.Organiser); err == nil && organiser != nil {
				organiserName = organiser.DisplayName()
			}
			s.emailService.SendEventInvitations(event, organiserName, guests)
		}
	}
	return event, nil
}

// AttendEvent 把用户登记为参加者，重复登记是幂等的
func (s *EventService) AttendEvent(eventID string, userID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if containsString(event.Attendees, userID) {
		util.Logger.Warn("用户已在参加名单中，忽略重复登记",
			zap.String("event_id", event.ID.Hex()), zap.String("user_id", userID))
		return event, nil
	}
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !containsObjectID(user.AttendingEvents, event.ID) {
		user.AttendingEvents = append(user.AttendingEvents, event.ID)
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	event.Attendees = append(event.Attendees, userID)
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// CameToEvent 把用户登记为实际到场者
func (s *EventService) CameToEvent(eventID string, userID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if containsString(event.ShowedUp, userID) {
		util.Logger.Warn("用户已在到场名单中，忽略重复登记",
			zap.String("event_id", event.ID.Hex()), zap.String("user_id", userID))
		return event, nil
	}
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if !containsObjectID(user.VisitedEvents, event.ID) {
		user.VisitedEvents = append(user.VisitedEvents, event.ID)
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}
	event.ShowedUp = append(event.ShowedUp, userID)
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeclineEvent 把事件记入用户的拒绝名单，事件一侧不保存拒绝记录
func (s *EventService) DeclineEvent(eventID string, userID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if containsObjectID(user.DeclinedEvents, event.ID) {
		util.Logger.Warn("用户已拒绝过该事件，忽略重复操作",
			zap.String("event_id", event.ID.Hex()), zap.String("user_id", userID))
		return event, nil
	}
	user.DeclinedEvents = append(user.DeclinedEvents, event.ID)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return event, nil
}

// LeaveEvent 把用户登记为中途离场者，只记录在事件一侧
func (s *EventService) LeaveEvent(eventID string, userID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if containsString(event.Left, userID) {
		util.Logger.Warn("用户已在离场名单中，忽略重复登记",
			zap.String("event_id", event.ID.Hex()), zap.String("user_id", userID))
		return event, nil
	}
	if _, err := findUser(s.userRepo, userID); err != nil {
		return nil, err
	}
	event.Left = append(event.Left, userID)
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent 删除事件，只有组织者可以操作
func (s *EventService) DeleteEvent(eventID string, currentUID string) error {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return err
	}
	if event.Organiser != currentUID {
		return errors.New(errors.ErrForbidden, "当前用户无权执行此操作")
	}
	return s.eventRepo.Delete(event.ID)
}

// ChangeStatusToPresent 由任务队列回调触发，把事件推进到进行中并预约结束任务。
// 任务可能被重复投递，状态已经推进过的事件直接忽略
func (s *EventService) ChangeStatusToPresent(eventID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != model.StatusFuture {
		util.Logger.Warn("事件状态已推进，忽略重复投递的状态切换任务",
			zap.String("event_id", event.ID.Hex()), zap.String("status", event.Status))
		return event, nil
	}
	event.Status = model.StatusPresent
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	if err := s.scheduleStatusToPast(event); err != nil {
		return nil, err
	}
	util.Logger.Info("事件进入进行中状态", zap.String("event_id", event.ID.Hex()))
	return event, nil
}

// ChangeStatusToPast 由任务队列回调触发，把事件推进到已结束
func (s *EventService) ChangeStatusToPast(eventID string) (*model.Event, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == model.StatusPast {
		util.Logger.Warn("事件已是结束状态，忽略重复投递的状态切换任务",
			zap.String("event_id", event.ID.Hex()))
		return event, nil
	}
	event.Status = model.StatusPast
	if err := s.eventRepo.Update(event); err != nil {
		return nil, err
	}
	util.Logger.Info("事件进入已结束状态", zap.String("event_id", event.ID.Hex()))
	return event, nil
}

// scheduleStatusToPresentIfSoon 只为七天内开始的事件预约状态切换任务，
// 任务队列不接受过远的预约时间
func (s *EventService) scheduleStatusToPresentIfSoon(event *model.Event) error {
	if event.StartDatetime.After(time.Now().UTC().Add(util.MaxEventWindow)) {
		return nil
	}
	callbackURL := fmt.Sprintf("%s/tasks/change_status_to_present?event_id=%s",
		config.AppConfig.BackendURL, event.ID.Hex())
	return s.scheduler.Schedule(scheduler.QueueStatusToPresent, event.ID.Hex(), event.StartDatetime, callbackURL)
}

func (s *EventService) scheduleStatusToPast(event *model.Event) error {
	callbackURL := fmt.Sprintf("%s/tasks/change_status_to_past?event_id=%s",
		config.AppConfig.BackendURL, event.ID.Hex())
	return s.scheduler.Schedule(scheduler.QueueStatusToPast, event.ID.Hex(), event.EndDatetime, callbackURL)
}

// parseDatetime 解析客户端提交的时间并统一成UTC
func parseDatetime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrBadRequest, "时间格式无效，应为 RFC3339", err)
	}
	return parsed.UTC(), nil
}

func dedupeStrings(list []string) []string {
	seen := make(map[string]bool, len(list))
	var result []string
	for _, item := range list {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		result = append(result, item)
	}
	return result
}
