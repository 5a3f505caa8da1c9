package service

import (
	"time"

	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/util"
)

// PostService 负责事件动态墙上的帖子
type PostService struct {
	postRepo  interfaces.PostRepository
	eventRepo interfaces.EventRepository
	userRepo  interfaces.UserRepository
}

func NewPostService(postRepo interfaces.PostRepository, eventRepo interfaces.EventRepository, userRepo interfaces.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, eventRepo: eventRepo, userRepo: userRepo}
}

// CreatePost 在事件的动态墙上发帖并把帖子挂到事件的帖子列表上
func (s *PostService) CreatePost(eventID string, content string, creatorUID string) (*model.Post, *model.Event, error) {
	if content == "" {
		return nil, nil, errors.New(errors.ErrBadRequest, "未提供帖子内容")
	}
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := findUser(s.userRepo, creatorUID); err != nil {
		return nil, nil, err
	}

	post := &model.Post{
		Creator:      creatorUID,
		PostDatetime: time.Now().UTC(),
		Content:      content,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, nil, err
	}
	event.Posts = append(event.Posts, post.ID)
	if err := s.eventRepo.Update(event); err != nil {
		return nil, nil, err
	}

	util.Logger.Info("帖子创建成功",
		zap.String("event_id", event.ID.Hex()), zap.String("post_id", post.ID.Hex()))
	return post, event, nil
}

// EventPosts 分页取回事件动态墙上的帖子
func (s *PostService) EventPosts(eventID string, perPage, cursor int) ([]*model.Post, int, int, error) {
	event, err := findEvent(s.eventRepo, eventID)
	if err != nil {
		return nil, 0, -1, err
	}
	start, end, next, err := util.PageBounds(len(event.Posts), perPage, cursor)
	if err != nil {
		return nil, 0, -1, err
	}
	posts, err := s.postRepo.FindByIDs(event.Posts[start:end])
	if err != nil {
		return nil, 0, -1, err
	}
	return posts, len(event.Posts), next, nil
}
