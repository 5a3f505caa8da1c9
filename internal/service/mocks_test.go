package service

import (
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"organising-events-app/internal/model"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ids []string) ([]*model.User, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockUserRepository) CreateDeleted(user *model.DeletedUser) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) SearchByNameRange(nameRange model.NameRange, cursor string, perPage int) ([]*model.User, string, error) {
	args := m.Called(nameRange, cursor, perPage)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*model.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) FetchByNameRange(nameRange model.NameRange) ([]*model.User, error) {
	args := m.Called(nameRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

// MockEventRepository 是 EventRepository 接口的模拟实现
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(event *model.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(id primitive.ObjectID) (*model.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByIDs(ids []primitive.ObjectID) ([]*model.Event, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventRepository) Update(event *model.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(id primitive.ObjectID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockEventRepository) Search(filters model.EventFilters, cursor string, perPage int) ([]*model.Event, string, error) {
	args := m.Called(filters, cursor, perPage)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*model.Event), args.String(1), args.Error(2)
}

func (m *MockEventRepository) FetchByNameRange(nameRange model.NameRange) ([]*model.Event, error) {
	args := m.Called(nameRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventRepository) Feed(cursor string, perPage int) ([]*model.Event, string, error) {
	args := m.Called(cursor, perPage)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]*model.Event), args.String(1), args.Error(2)
}

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByIDs(ids []primitive.ObjectID) ([]*model.Post, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

// MockScheduler 是 Scheduler 接口的模拟实现
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(queue, taskName string, eta time.Time, callbackURL string) error {
	args := m.Called(queue, taskName, eta, callbackURL)
	return args.Error(0)
}

func (m *MockScheduler) Cancel(queue, taskName string) error {
	args := m.Called(queue, taskName)
	return args.Error(0)
}
