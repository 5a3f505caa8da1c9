package interfaces

import "organising-events-app/internal/model"

// UserRepository 定义了用户相关的文档库操作接口
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id string) (*model.User, error)
	FindByIDs(ids []string) ([]*model.User, error)
	Update(user *model.User) error
	Delete(id string) error
	CreateDeleted(user *model.DeletedUser) error
	// SearchByNameRange 按名称区间过滤并做游标分页
	SearchByNameRange(nameRange model.NameRange, cursor string, perPage int) ([]*model.User, string, error)
	// FetchByNameRange 按名称区间取回全部结果，双名搜索在客户端求交集时使用
	FetchByNameRange(nameRange model.NameRange) ([]*model.User, error)
}
