package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"organising-events-app/internal/errors"
)

// DefaultPerPage 未指定 per_page 参数时每页返回的数量
const DefaultPerPage = 10

// PerPage 提取 per_page 参数，缺失或格式错误时返回默认值
func PerPage(c *gin.Context) int {
	raw := c.Query("per_page")
	if raw == "" {
		return DefaultPerPage
	}
	perPage, err := strconv.Atoi(raw)
	if err != nil || perPage <= 0 {
		Logger.Warn("per_page 参数格式错误，使用默认值", zap.String("per_page", raw))
		return DefaultPerPage
	}
	return perPage
}

// PageCursor 提取列表分页的 cursor 参数（页序号），缺失或格式错误时取第 0 页
func PageCursor(c *gin.Context) int {
	raw := c.Query("cursor")
	if raw == "" {
		return 0
	}
	cursor, err := strconv.Atoi(raw)
	if err != nil {
		Logger.Warn("cursor 参数格式错误，取第一页", zap.String("cursor", raw))
		return 0
	}
	return cursor
}

// PageBounds 计算第 cursor 页在已物化列表中的区间 [start, end)。
// next 为下一页序号，没有下一页时为 -1。cursor 超出范围返回 BadRequest。
func PageBounds(listLen, perPage, cursor int) (start, end, next int, err error) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if cursor < 0 {
		return 0, 0, -1, errors.New(errors.ErrBadRequest, "cursor 超出范围")
	}
	start = cursor * perPage
	if start >= listLen {
		if listLen == 0 && cursor == 0 {
			return 0, 0, -1, nil
		}
		return 0, 0, -1, errors.New(errors.ErrBadRequest, "cursor 超出范围")
	}
	end = start + perPage
	if end > listLen {
		end = listLen
	}
	next = cursor + 1
	if end == listLen {
		next = -1
	}
	return start, end, next, nil
}

// NextPageValue 把下一页序号转换为响应中的 next_page 值，最后一页为 false
func NextPageValue(next int) interface{} {
	if next < 0 {
		return false
	}
	return next
}

// NextCursorValue 把查询游标转换为响应中的 next_page 值，空游标表示最后一页
func NextCursorValue(cursor string) interface{} {
	if cursor == "" {
		return false
	}
	return cursor
}
