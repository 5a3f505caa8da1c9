package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/middleware"
	"organising-events-app/internal/model"
	"organising-events-app/internal/service"
	"organising-events-app/internal/storage"
	"organising-events-app/internal/util"
)

// UserHandler 处理用户档案和关注关系相关的请求
type UserHandler struct {
	userService *service.UserService
	storage     storage.FileStorage
}

func NewUserHandler(userService *service.UserService, storage storage.FileStorage) *UserHandler {
	return &UserHandler{userService: userService, storage: storage}
}

// Register 用身份令牌中的信息建档，重复注册返回现有档案
func (h *UserHandler) Register(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		errors.HandleError(c, errors.New(errors.ErrUnauthorized, "缺少身份信息"))
		return
	}
	user, created, err := h.userService.RegisterUser(identity)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, util.UserJSON(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Param("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.UserJSON(user))
}

func (h *UserHandler) EditUser(c *gin.Context) {
	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请求体格式错误", err))
		return
	}
	user, err := h.userService.EditUser(c.Param("user_id"), &patch, middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.UserJSON(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Param("user_id"), middleware.CurrentUID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// FollowUser 关注另一个用户，返回被关注者的档案
func (h *UserHandler) FollowUser(c *gin.Context) {
	target, err := h.userService.FollowUser(middleware.CurrentUID(c), c.Param("user_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.UserJSON(target))
}

func (h *UserHandler) Followers(c *gin.Context) {
	users, listLen, next, err := h.userService.Followers(
		c.Param("user_id"), util.PerPage(c), util.PageCursor(c))
	h.renderUserList(c, users, listLen, next, err)
}

func (h *UserHandler) Following(c *gin.Context) {
	users, listLen, next, err := h.userService.Following(
		c.Param("user_id"), util.PerPage(c), util.PageCursor(c))
	h.renderUserList(c, users, listLen, next, err)
}

func (h *UserHandler) OrganisedEvents(c *gin.Context) {
	events, listLen, next, err := h.userService.OrganisedEvents(
		c.Param("user_id"), util.PerPage(c), util.PageCursor(c))
	h.renderEventList(c, events, listLen, next, err)
}

func (h *UserHandler) AttendingEvents(c *gin.Context) {
	events, listLen, next, err := h.userService.AttendingEvents(
		c.Param("user_id"), util.PerPage(c), util.PageCursor(c))
	h.renderEventList(c, events, listLen, next, err)
}

func (h *UserHandler) DeclinedEvents(c *gin.Context) {
	events, listLen, next, err := h.userService.DeclinedEvents(
		c.Param("user_id"), util.PerPage(c), util.PageCursor(c))
	h.renderEventList(c, events, listLen, next, err)
}

func (h *UserHandler) VisitedEvents(c *gin.Context) {
	events, listLen, next, err := h.userService.VisitedEvents(
		c.Param("user_id"), util.PerPage(c), util.PageCursor(c))
	h.renderEventList(c, events, listLen, next, err)
}

// UploadProfilePicture 上传头像并更新用户档案
func (h *UserHandler) UploadProfilePicture(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "未提供图片文件", err))
		return
	}
	path := "profiles/" + util.GenerateUniqueFilename(file.Filename)
	pictureURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}
	uid := middleware.CurrentUID(c)
	user, err := h.userService.EditUser(uid, &model.UserPatch{ProfilePictureURL: pictureURL}, uid)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.UserJSON(user))
}

func (h *UserHandler) renderUserList(c *gin.Context, users []*model.User, listLen, next int, err error) {
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if listLen == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, util.UsersPageJSON(users, listLen, util.NextPageValue(next)))
}

func (h *UserHandler) renderEventList(c *gin.Context, events []*model.Event, listLen, next int, err error) {
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if listLen == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	organisers := make([]string, 0, len(events))
	for _, event := range events {
		organisers = append(organisers, event.Organiser)
	}
	names, err := h.userService.DisplayNames(organisers)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.EventsPageJSON(events, names, listLen, util.NextPageValue(next)))
}
