package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/repository/interfaces"
	"organising-events-app/internal/util"
)

// postRepository 实现了 PostRepository 接口
type postRepository struct {
	posts *mongo.Collection
}

// NewPostRepository 创建一个新的 postRepository 实例
func NewPostRepository(db *mongo.Database) interfaces.PostRepository {
	return &postRepository{posts: db.Collection("posts")}
}

// Create 创建一个新帖子并回填生成的ID
func (r *postRepository) Create(post *model.Post) error {
	ctx, cancel := opContext()
	defer cancel()

	res, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}
	post.ID = res.InsertedID.(primitive.ObjectID)
	util.Logger.Info("帖子创建成功", zap.String("post_id", post.ID.Hex()))
	return nil
}

// FindByIDs 批量查找帖子并保持传入顺序，缺失的ID会被跳过
func (r *postRepository) FindByIDs(ids []primitive.ObjectID) ([]*model.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := opContext()
	defer cancel()

	cur, err := r.posts.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "批量查找帖子失败", err)
	}
	var found []*model.Post
	if err := cur.All(ctx, &found); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取帖子结果失败", err)
	}

	byID := make(map[primitive.ObjectID]*model.Post, len(found))
	for _, post := range found {
		byID[post.ID] = post
	}
	posts := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if post, ok := byID[id]; ok {
			posts = append(posts, post)
		} else {
			util.Logger.Warn("引用的帖子不存在，已跳过", zap.String("post_id", id.Hex()))
		}
	}
	return posts, nil
}
