package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/service"
	"organising-events-app/internal/util"
)

// FeedHandler 处理事件流请求
type FeedHandler struct {
	searchService *service.SearchService
	userService   *service.UserService
}

func NewFeedHandler(searchService *service.SearchService, userService *service.UserService) *FeedHandler {
	return &FeedHandler{searchService: searchService, userService: userService}
}

// Feed 按开始时间先后返回事件流，查询游标翻页
func (h *FeedHandler) Feed(c *gin.Context) {
	events, nextCursor, err := h.searchService.Feed(util.PerPage(c), c.Query("cursor"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if len(events) == 0 {
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
	c.JSON(http.StatusOK, util.EventsPageJSON(events, names, false, util.NextCursorValue(nextCursor)))
}
