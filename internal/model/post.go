package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post 结构体表示事件上的帖子，创建后不可修改
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"post_id"`
	Creator      string             `bson:"creator" json:"-"`
	PostDatetime time.Time          `bson:"post_datetime" json:"post_datetime"`
	Content      string             `bson:"content" json:"content"`
}
