package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 结构体表示用户模型，_id 为身份提供方返回的 uid
type User struct {
	ID                string               `bson:"_id" json:"user_id"`
	UserNames         []string             `bson:"user_names" json:"user_names"`
	ProfilePictureURL string               `bson:"profile_picture_url" json:"profile_picture_url"`
	UserEmail         string               `bson:"user_email" json:"user_email"`
	Followers         []string             `bson:"followers" json:"-"`
	Following         []string             `bson:"following" json:"-"`
	OrganisedEvents   []primitive.ObjectID `bson:"organised_events" json:"-"`
	AttendingEvents   []primitive.ObjectID `bson:"attending_events" json:"-"`
	DeclinedEvents    []primitive.ObjectID `bson:"declined_events" json:"-"`
	VisitedEvents     []primitive.ObjectID `bson:"visited_events" json:"-"`
}

// DisplayName 返回拼接后的用户姓名
func (u *User) DisplayName() string {
	return strings.Join(u.UserNames, " ")
}

// DeletedUser 保存被删除用户的副本，历史记录不做硬删除
type DeletedUser struct {
	ID                string               `bson:"_id" json:"user_id"`
	UserNames         []string             `bson:"user_names" json:"user_names"`
	ProfilePictureURL string               `bson:"profile_picture_url" json:"profile_picture_url"`
	UserEmail         string               `bson:"user_email" json:"user_email"`
	Followers         []string             `bson:"followers" json:"-"`
	Following         []string             `bson:"following" json:"-"`
	OrganisedEvents   []primitive.ObjectID `bson:"organised_events" json:"-"`
	AttendingEvents   []primitive.ObjectID `bson:"attending_events" json:"-"`
	DeclinedEvents    []primitive.ObjectID `bson:"declined_events" json:"-"`
	VisitedEvents     []primitive.ObjectID `bson:"visited_events" json:"-"`
	DeletedAt         time.Time            `bson:"deleted_at" json:"-"`
}

// Identity 是身份提供方解码令牌后暴露的用户信息
type Identity struct {
	UID         string
	DisplayName string
	Email       string
	PhotoURL    string
}

// UserPatch 包含编辑用户资料时允许修改的字段
type UserPatch struct {
	UserEmail         string `json:"user_email"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
