package interfaces

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"organising-events-app/internal/model"
)

// EventRepository 定义了事件相关的文档库操作接口
type EventRepository interface {
	Create(event *model.Event) error
	FindByID(id primitive.ObjectID) (*model.Event, error)
	FindByIDs(ids []primitive.ObjectID) ([]*model.Event, error)
	Update(event *model.Event) error
	Delete(id primitive.ObjectID) error
	// Search 按组合过滤条件查询并做游标分页
	Search(filters model.EventFilters, cursor string, perPage int) ([]*model.Event, string, error)
	// FetchByNameRange 按名称区间取回全部结果，双名搜索在客户端求交集时使用
	FetchByNameRange(nameRange model.NameRange) ([]*model.Event, error)
	// Feed 按开始时间排序返回全部事件，游标分页
	Feed(cursor string, perPage int) ([]*model.Event, string, error)
}

// PostRepository 定义了帖子相关的文档库操作接口
type PostRepository interface {
	Create(post *model.Post) error
	FindByIDs(ids []primitive.ObjectID) ([]*model.Post, error)
}
