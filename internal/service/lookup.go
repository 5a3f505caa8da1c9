package service

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
)

// findEvent 按十六进制ID取回事件，ID非法返回 400，事件不存在返回 404
func findEvent(repo interfaces.EventRepository, eventID string) (*model.Event, error) {
	id, err := primitive.ObjectIDFromHex(eventID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrBadRequest, "无效的事件ID", err)
	}
	event, err := repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.New(errors.ErrEventNotFound, "事件不存在")
	}
	return event, nil
}

// findUser 按uid取回用户，用户不存在返回 404
func findUser(repo interfaces.UserRepository, userID string) (*model.User, error) {
	user, err := repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

func containsObjectID(list []primitive.ObjectID, value primitive.ObjectID) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
