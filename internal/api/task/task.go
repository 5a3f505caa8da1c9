package task

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organising-events-app/config"
	"organising-events-app/internal/errors"
	"organising-events-app/internal/service"
	"organising-events-app/internal/util"
)

// TaskHandler 处理任务队列的状态切换回调。
// 回调用共享令牌鉴权，不走用户身份中间件
type TaskHandler struct {
	eventService *service.EventService
}

func NewTaskHandler(eventService *service.EventService) *TaskHandler {
	return &TaskHandler{eventService: eventService}
}

// VerifyToken 校验任务队列回调携带的共享令牌
func (h *TaskHandler) VerifyToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := config.AppConfig.TaskQueueToken
		if expected != "" && c.GetHeader("X-Task-Queue-Token") != expected {
			util.Logger.Warn("任务回调令牌校验失败", zap.String("path", c.Request.URL.Path))
			errors.HandleError(c, errors.New(errors.ErrUnauthorized, "任务令牌无效"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ChangeStatusToPresent 在事件开始时刻由任务队列回调，推进事件到进行中
func (h *TaskHandler) ChangeStatusToPresent(c *gin.Context) {
	eventID := c.Query("event_id")
	if eventID == "" {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "未提供 event_id"))
		return
	}
	event, err := h.eventService.ChangeStatusToPresent(eventID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": event.ID.Hex(), "event_status": event.Status})
}

// ChangeStatusToPast 在事件结束时刻由任务队列回调，推进事件到已结束
func (h *TaskHandler) ChangeStatusToPast(c *gin.Context) {
	eventID := c.Query("event_id")
	if eventID == "" {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "未提供 event_id"))
		return
	}
	event, err := h.eventService.ChangeStatusToPast(eventID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": event.ID.Hex(), "event_status": event.Status})
}
