package event

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

// EventHandler 处理事件生命周期和参与关系相关的请求
type EventHandler struct {
	eventService *service.EventService
	userService  *service.UserService
	storage      storage.FileStorage
}

func NewEventHandler(eventService *service.EventService, userService *service.UserService, storage storage.FileStorage) *EventHandler {
	return &EventHandler{eventService: eventService, userService: userService, storage: storage}
}

// CreateEvent 创建事件，organiser 取当前登录用户
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var input model.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请求体格式错误", err))
		return
	}
	event, err := h.eventService.CreateEvent(&input, middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusCreated)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventService.GetEvent(c.Param("event_id"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) EditEvent(c *gin.Context) {
	var patch model.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请求体格式错误", err))
		return
	}
	event, err := h.eventService.EditEvent(c.Param("event_id"), &patch, middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventService.DeleteEvent(c.Param("event_id"), middleware.CurrentUID(c)); err != nil {
		errors.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type inviteRequest struct {
	GuestList []string `json:"guest_list"`
}

// InviteUsers 把新的受邀人加入宾客名单
func (h *EventHandler) InviteUsers(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请求体格式错误", err))
		return
	}
	event, err := h.eventService.InviteUsers(c.Param("event_id"), req.GuestList, middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) AttendEvent(c *gin.Context) {
	event, err := h.eventService.AttendEvent(c.Param("event_id"), middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) DeclineEvent(c *gin.Context) {
	event, err := h.eventService.DeclineEvent(c.Param("event_id"), middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) CameToEvent(c *gin.Context) {
	event, err := h.eventService.CameToEvent(c.Param("event_id"), middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) LeaveEvent(c *gin.Context) {
	event, err := h.eventService.LeaveEvent(c.Param("event_id"), middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) GuestList(c *gin.Context) {
	users, listLen, next, err := h.eventService.GuestList(
		c.Param("event_id"), util.PerPage(c), util.PageCursor(c))
	h.renderUserList(c, users, listLen, next, err)
}

func (h *EventHandler) Attendees(c *gin.Context) {
	users, listLen, next, err := h.eventService.Attendees(
		c.Param("event_id"), util.PerPage(c), util.PageCursor(c))
	h.renderUserList(c, users, listLen, next, err)
}

func (h *EventHandler) ShowedUp(c *gin.Context) {
	users, listLen, next, err := h.eventService.ShowedUp(
		c.Param("event_id"), util.PerPage(c), util.PageCursor(c))
	h.renderUserList(c, users, listLen, next, err)
}

func (h *EventHandler) LeftEarly(c *gin.Context) {
	users, listLen, next, err := h.eventService.LeftEarly(
		c.Param("event_id"), util.PerPage(c), util.PageCursor(c))
	h.renderUserList(c, users, listLen, next, err)
}

// UploadEventPicture 上传事件配图，编辑规则与普通编辑一致
func (h *EventHandler) UploadEventPicture(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "未提供图片文件", err))
		return
	}
	path := "events/" + util.GenerateUniqueFilename(file.Filename)
	pictureURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "图片上传失败", err))
		return
	}
	event, err := h.eventService.EditEvent(c.Param("event_id"),
		&model.EventPatch{EventPictureURL: pictureURL}, middleware.CurrentUID(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	h.renderEvent(c, event, http.StatusOK)
}

func (h *EventHandler) renderEvent(c *gin.Context, event *model.Event, status int) {
	names, err := h.userService.DisplayNames([]string{event.Organiser})
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(status, util.EventJSON(event, names[event.Organiser]))
}

func (h *EventHandler) renderUserList(c *gin.Context, users []*model.User, listLen, next int, err error) {
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
