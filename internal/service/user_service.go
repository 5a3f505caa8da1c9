package service

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/util"
)

// UserService 负责用户档案、关注关系以及用户侧的事件名单
type UserService struct {
	userRepo  interfaces.UserRepository
	eventRepo interfaces.EventRepository
}

func NewUserService(userRepo interfaces.UserRepository, eventRepo interfaces.EventRepository) *UserService {
	return &UserService{userRepo: userRepo, eventRepo: eventRepo}
}

// RegisterUser 根据身份令牌中的信息建档。用户已存在时直接返回现有档案，
// 注册因此可以安全重试。返回值的第二项表示是否新建了档案
func (s *UserService) RegisterUser(identity *model.Identity) (*model.User, bool, error) {
	existing, err := s.userRepo.FindByID(identity.UID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		util.Logger.Info("用户已注册，返回现有档案", zap.String("user_id", identity.UID))
		return existing, false, nil
	}

	names := strings.Fields(identity.DisplayName)
	if len(names) == 0 {
		return nil, false, errors.New(errors.ErrBadRequest, "身份令牌中缺少用户名，无法建档")
	}
	if identity.PhotoURL != "" {
		if err := util.ValidatePictureURL(identity.PhotoURL); err != nil {
			return nil, false, err
		}
	}
	if identity.Email != "" {
		if err := util.ValidateEmail(identity.Email); err != nil {
			return nil, false, err
		}
	}

	user := &model.User{
		ID:                identity.UID,
		UserNames:         names,
		ProfilePictureURL: identity.PhotoURL,
		UserEmail:         identity.Email,
		Followers:         []string{},
		Following:         []string{},
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, false, err
	}
	util.Logger.Info("用户注册成功", zap.String("user_id", user.ID))
	return user, true, nil
}

// GetUser 查询单个用户档案
func (s *UserService) GetUser(userID string) (*model.User, error) {
	return findUser(s.userRepo, userID)
}

// EditUser 更新用户自己的档案字段
func (s *UserService) EditUser(userID string, patch *model.UserPatch, currentUID string) (*model.User, error) {
	if userID != currentUID {
		return nil, errors.New(errors.ErrForbidden, "当前用户无权执行此操作")
	}
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	if patch.UserEmail != "" {
		if err := util.ValidateEmail(patch.UserEmail); err != nil {
			return nil, err
		}
		user.UserEmail = patch.UserEmail
	}
	if patch.ProfilePictureURL != "" {
		if err := util.ValidatePictureURL(patch.ProfilePictureURL); err != nil {
			return nil, err
		}
		user.ProfilePictureURL = patch.ProfilePictureURL
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 把档案归档到已删除集合后再从用户集合中移除
func (s *UserService) DeleteUser(userID string, currentUID string) error {
	if userID != currentUID {
		return errors.New(errors.ErrForbidden, "当前用户无权执行此操作")
	}
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return err
	}
	deleted := &model.DeletedUser{
		ID:                user.ID,
		UserNames:         user.UserNames,
		ProfilePictureURL: user.ProfilePictureURL,
		UserEmail:         user.UserEmail,
		Followers:         user.Followers,
		Following:         user.Following,
		OrganisedEvents:   user.OrganisedEvents,
		AttendingEvents:   user.AttendingEvents,
		DeclinedEvents:    user.DeclinedEvents,
		VisitedEvents:     user.VisitedEvents,
		DeletedAt:         time.Now().UTC(),
	}
	if err := s.userRepo.CreateDeleted(deleted); err != nil {
		return err
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	util.Logger.Info("用户已删除并归档", zap.String("user_id", user.ID))
	return nil
}

// FollowUser 建立双向的关注记录，重复关注是幂等的
func (s *UserService) FollowUser(currentUID, targetID string) (*model.User, error) {
	if currentUID == targetID {
		return nil, errors.New(errors.ErrBadRequest, "用户不能关注自己")
	}
	current, err := findUser(s.userRepo, currentUID)
	if err != nil {
		return nil, err
	}
	target, err := findUser(s.userRepo, targetID)
	if err != nil {
		return nil, err
	}
	if containsString(current.Following, targetID) {
		util.Logger.Warn("已经关注过该用户，忽略重复操作",
			zap.String("user_id", currentUID), zap.String("target_id", targetID))
		return target, nil
	}
	current.Following = append(current.Following, targetID)
	if err := s.userRepo.Update(current); err != nil {
		return nil, err
	}
	target.Followers = append(target.Followers, currentUID)
	if err := s.userRepo.Update(target); err != nil {
		return nil, err
	}
	return target, nil
}

// DisplayNames 批量解析uid到显示名，用于渲染事件和帖子里的人名
func (s *UserService) DisplayNames(uids []string) (map[string]string, error) {
	unique := dedupeStrings(uids)
	if len(unique) == 0 {
		return map[string]string{}, nil
	}
	users, err := s.userRepo.FindByIDs(unique)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, user := range users {
		names[user.ID] = user.DisplayName()
	}
	return names, nil
}

// 用户侧的关注与事件名单，分页方式与事件侧一致

func (s *UserService) Followers(userID string, perPage, cursor int) ([]*model.User, int, int, error) {
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedUsers(user.Followers, perPage, cursor)
}

func (s *UserService) Following(userID string, perPage, cursor int) ([]*model.User, int, int, error) {
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedUsers(user.Following, perPage, cursor)
}

func (s *UserService) OrganisedEvents(userID string, perPage, cursor int) ([]*model.Event, int, int, error) {
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedEvents(user.OrganisedEvents, perPage, cursor)
}

func (s *UserService) AttendingEvents(userID string, perPage, cursor int) ([]*model.Event, int, int, error) {
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedEvents(user.AttendingEvents, perPage, cursor)
}

func (s *UserService) DeclinedEvents(userID string, perPage, cursor int) ([]*model.Event, int, int, error) {
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedEvents(user.DeclinedEvents, perPage, cursor)
}

func (s *UserService) VisitedEvents(userID string, perPage, cursor int) ([]*model.Event, int, int, error) {
	user, err := findUser(s.userRepo, userID)
	if err != nil {
		return nil, 0, -1, err
	}
	return s.pagedEvents(user.VisitedEvents, perPage, cursor)
}

func (s *UserService) pagedUsers(ids []string, perPage, cursor int) ([]*model.User, int, int, error) {
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

func (s *UserService) pagedEvents(ids []primitive.ObjectID, perPage, cursor int) ([]*model.Event, int, int, error) {
	start, end, next, err := util.PageBounds(len(ids), perPage, cursor)
	if err != nil {
		return nil, 0, -1, err
	}
	events, err := s.eventRepo.FindByIDs(ids[start:end])
	if err != nil {
		return nil, 0, -1, err
	}
	return events, len(ids), next, nil
}
