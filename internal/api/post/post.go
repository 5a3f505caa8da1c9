package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/middleware"
	"organising-events-app/internal/service"
	"organising-events-app/internal/util"
)

// PostHandler 处理事件动态墙相关的请求
type PostHandler struct {
	postService *service.PostService
	userService *service.UserService
}

func NewPostHandler(postService *service.PostService, userService *service.UserService) *PostHandler {
	return &PostHandler{postService: postService, userService: userService}
}

type createPostRequest struct {
	Content string `json:"content"`
}

// CreatePost 在事件的动态墙上发帖
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请求体格式错误", err))
		return
	}
	post, _, err := h.postService.CreatePost(c.Param("event_id"), req.Content, middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	names, err := h.userService.DisplayNames([]string{post.Creator})
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"post_id":       post.ID.Hex(),
		"creator":       names[post.Creator],
		"post_datetime": util.ISODatetime(post.PostDatetime),
		"content":       post.Content,
	})
}

// EventPosts 分页返回事件动态墙上的帖子
func (h *PostHandler) EventPosts(c *gin.Context) {
	posts, listLen, next, err := h.postService.EventPosts(
		c.Param("event_id"), util.PerPage(c), util.PageCursor(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if listLen == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	creatorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		creatorIDs = append(creatorIDs, p.Creator)
	}
	names, err := h.userService.DisplayNames(creatorIDs)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.PostsPageJSON(posts, names, listLen, util.NextPageValue(next)))
}
