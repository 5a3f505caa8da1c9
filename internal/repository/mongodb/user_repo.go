package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/util"
)

const opTimeout = 5 * time.Second

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	users   *mongo.Collection
	deleted *mongo.Collection
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *mongo.Database) interfaces.UserRepository {
	return &userRepository{
		users:   db.Collection("users"),
		deleted: db.Collection("deleted_users"),
	}
}

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}
	util.Logger.Info("用户创建成功", zap.String("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户，不存在时返回 nil
func (r *userRepository) FindByID(id string) (*model.User, error) {
	ctx, cancel := opContext()
	defer cancel()

	var user model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查找用户失败", err)
	}
	return &user, nil
}

// FindByIDs 批量查找用户并保持传入顺序，缺失的ID会被跳过
func (r *userRepository) FindByIDs(ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "批量查找用户失败", err)
	}
	var found []*model.User
	if err := cur.All(ctx, &found); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取用户结果失败", err)
	}

	byID := make(map[string]*model.User, len(found))
	for _, user := range found {
		byID[user.ID] = user
	}
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := byID[id]; ok {
			users = append(users, user)
		} else {
			util.Logger.Warn("引用的用户不存在，已跳过", zap.String("user_id", id))
		}
	}
	return users, nil
}

// Update 以整文档替换的方式更新用户
func (r *userRepository) Update(user *model.User) error {
	ctx, cancel := opContext()
	defer cancel()

	_, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新用户失败", err)
	}
	return nil
}

// Delete 删除用户
func (r *userRepository) Delete(id string) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除用户失败", err)
	}
	util.Logger.Info("用户已删除", zap.String("user_id", id))
	return nil
}

// CreateDeleted 把被删除用户的副本写入 deleted_users 集合
func (r *userRepository) CreateDeleted(user *model.DeletedUser) error {
	ctx, cancel := opContext()
	defer cancel()

	if _, err := r.deleted.InsertOne(ctx, user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "归档已删除用户失败", err)
	}
	return nil
}

// SearchByNameRange 按名称区间过滤用户并做游标分页。
// user_names 是数组字段，任一名字落在 [Min, Max) 区间即命中。
func (r *userRepository) SearchByNameRange(nameRange model.NameRange, cursor string, perPage int) ([]*model.User, string, error) {
	filter := bson.M{"user_names": nameRangeCondition(nameRange)}
	if cursor != "" {
		if last, err := decodeStringCursor(cursor); err == nil {
			filter["_id"] = bson.M{"$gt": last}
		} else {
			util.Logger.Warn("游标格式错误，返回第一页", zap.String("cursor", cursor))
		}
	}

	ctx, cancel := opContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(perPage) + 1)
	cur, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "按名称搜索用户失败", err)
	}
	var users []*model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, "", errors.Wrap(errors.ErrDatabase, "读取用户结果失败", err)
	}

	next := ""
	if len(users) > perPage {
		users = users[:perPage]
		next = encodeStringCursor(users[len(users)-1].ID)
	}
	return users, next, nil
}

// FetchByNameRange 按名称区间取回全部用户
func (r *userRepository) FetchByNameRange(nameRange model.NameRange) ([]*model.User, error) {
	ctx, cancel := opContext()
	defer cancel()

	filter := bson.M{"user_names": nameRangeCondition(nameRange)}
	cur, err := r.users.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "按名称搜索用户失败", err)
	}
	var users []*model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取用户结果失败", err)
	}
	return users, nil
}

// nameRangeCondition 把半开区间 [Min, Max) 转成查询条件，Max 为空表示无上界
func nameRangeCondition(nameRange model.NameRange) bson.M {
	cond := bson.M{"$gte": nameRange.Min}
	if nameRange.Max != "" {
		cond["$lt"] = nameRange.Max
	}
	return cond
}
