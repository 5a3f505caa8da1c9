package search

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/model"
	"organising-events-app/internal/service"
	"organising-events-app/internal/util"
)

// SearchHandler 处理用户和事件的搜索请求
type SearchHandler struct {
	searchService *service.SearchService
	userService   *service.UserService
}

func NewSearchHandler(searchService *service.SearchService, userService *service.UserService) *SearchHandler {
	return &SearchHandler{searchService: searchService, userService: userService}
}

// SearchUsers 按名字前缀搜索用户。单名搜索用查询游标翻页，
// 双名搜索在内存求交集，一次性返回
func (h *SearchHandler) SearchUsers(c *gin.Context) {
	name1 := c.Query("user_name1")
	name2 := c.Query("user_name2")
	users, nextCursor, err := h.searchService.SearchUsers(name1, name2, util.PerPage(c), c.Query("cursor"))
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if len(users) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	var listLen interface{} = false
	if name2 != "" {
		listLen = len(users)
	}
	c.JSON(http.StatusOK, util.UsersPageJSON(users, listLen, util.NextCursorValue(nextCursor)))
}

// SearchEvents 搜索事件。给出两个事件名时走双名交集，
// 否则按名字、位置、日期的组合过滤
func (h *SearchHandler) SearchEvents(c *gin.Context) {
	name1 := c.Query("event_name1")
	name2 := c.Query("event_name2")

	var (
		events     []*model.Event
		nextCursor string
		err        error
	)
	if name2 != "" {
		events, nextCursor, err = h.searchService.SearchEventsByNames(name1, name2, util.PerPage(c), c.Query("cursor"))
	} else {
		var params service.EventSearchParams
		params, err = h.parseSearchParams(c, name1)
		if err == nil {
			events, nextCursor, err = h.searchService.SearchEvents(params, util.PerPage(c), c.Query("cursor"))
		}
	}
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	if len(events) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	var listLen interface{} = false
	if name2 != "" {
		listLen = len(events)
	}
	h.renderEvents(c, events, listLen, util.NextCursorValue(nextCursor))
}

func (h *SearchHandler) parseSearchParams(c *gin.Context, name string) (service.EventSearchParams, error) {
	params := service.EventSearchParams{
		EventName: name,
		Day:       c.Query("day"),
	}
	if raw := c.Query("latitude"); raw != "" {
		latitude, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, errors.Wrap(errors.ErrBadRequest, "latitude 参数格式错误", err)
		}
		params.Latitude = &latitude
	}
	if raw := c.Query("longitude"); raw != "" {
		longitude, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, errors.Wrap(errors.ErrBadRequest, "longitude 参数格式错误", err)
		}
		params.Longitude = &longitude
	}
	if raw := c.Query("location_range"); raw != "" {
		rangeKm, err := strconv.Atoi(raw)
		if err != nil {
			return params, errors.Wrap(errors.ErrBadRequest, "location_range 参数格式错误", err)
		}
		params.RangeKm = &rangeKm
	}
	return params, nil
}

func (h *SearchHandler) renderEvents(c *gin.Context, events []*model.Event, listLen, nextPage interface{}) {
	organisers := make([]string, 0, len(events))
	for _, event := range events {
		organisers = append(organisers, event.Organiser)
	}
	names, err := h.userService.DisplayNames(organisers)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.EventsPageJSON(events, names, listLen, nextPage))
}
