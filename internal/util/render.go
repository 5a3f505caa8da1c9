package util

import (
	"time"

	"github.com/gin-gonic/gin"

	"organising-events-app/internal/model"
)

// ISODatetime 按 UTC 无时区的 ISO8601 形式格式化时间
func ISODatetime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}

// EventJSON 返回单个事件的响应视图
func EventJSON(event *model.Event, organiserName string) gin.H {
	return gin.H{
		"event_name":        event.EventName,
		"event_id":          event.ID.Hex(),
		"event_status":      event.Status,
		"start_datetime":    ISODatetime(event.StartDatetime),
		"end_datetime":      ISODatetime(event.EndDatetime),
		"location":          []float64{event.Latitude, event.Longitude},
		"event_picture_url": event.EventPictureURL,
		"description":       event.Description,
		"private":           event.Private,
		"organiser":         organiserName,
	}
}

// UserJSON 返回单个用户的响应视图
func UserJSON(user *model.User) gin.H {
	return gin.H{
		"user_names":          user.DisplayName(),
		"user_id":             user.ID,
		"profile_picture_url": user.ProfilePictureURL,
		"user_email":          user.UserEmail,
	}
}

// UsersPageJSON 返回带分页信息的用户列表，next_page 为 false 时是最后一页，
// list_len 为 false 时总长度不可知
func UsersPageJSON(users []*model.User, listLen, nextPage interface{}) gin.H {
	userList := make([]gin.H, 0, len(users))
	for _, user := range users {
		userList = append(userList, UserJSON(user))
	}
	return gin.H{
		"users":     userList,
		"next_page": nextPage,
		"list_len":  listLen,
	}
}

// EventsPageJSON 返回带分页信息的事件列表，organisers 为 uid 到姓名的映射
func EventsPageJSON(events []*model.Event, organisers map[string]string, listLen, nextPage interface{}) gin.H {
	eventList := make([]gin.H, 0, len(events))
	for _, event := range events {
		eventList = append(eventList, EventJSON(event, organisers[event.Organiser]))
	}
	return gin.H{
		"events":    eventList,
		"next_page": nextPage,
		"list_len":  listLen,
	}
}

// PostsPageJSON 返回带分页信息的帖子列表，creators 为 uid 到姓名的映射
func PostsPageJSON(posts []*model.Post, creators map[string]string, listLen, nextPage interface{}) gin.H {
	postList := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		postList = append(postList, gin.H{
			"post_id":       post.ID.Hex(),
			"creator":       creators[post.Creator],
			"post_datetime": ISODatetime(post.PostDatetime),
			"content":       post.Content,
		})
	}
	return gin.H{
		"posts":     postList,
		"next_page": nextPage,
		"list_len":  listLen,
	}
}
