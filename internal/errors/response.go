package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义返回客户端的错误信封
type ErrorResponse struct {
	ErrorMessage   string `json:"error_message"`
	SourceFunction string `json:"source_function,omitempty"`
	SourceFile     string `json:"source_file,omitempty"`
	Code           int    `json:"code"`
	Title          string `json:"title"`
}

// 错误码与HTTP状态码映射
var errorStatusMap = map[ErrorCode]int{
	// 系统错误 (1000-1999)
	ErrInternal:  http.StatusInternalServerError,
	ErrDatabase:  http.StatusInternalServerError,
	ErrScheduler: http.StatusInternalServerError,
	ErrTimeout:   http.StatusRequestTimeout,

	// 认证错误 (2000-2999)
	ErrUnauthorized: http.StatusUnauthorized,
	ErrForbidden:    http.StatusForbidden,
	ErrInvalidToken: http.StatusUnauthorized,
	ErrTokenExpired: http.StatusUnauthorized,

	// 请求错误 (3000-3999)
	ErrBadRequest:       http.StatusBadRequest,
	ErrValidation:       http.StatusBadRequest,
	ErrResourceNotFound: http.StatusNotFound,

	// 业务错误 (4000-4999)
	ErrUserNotFound:  http.StatusNotFound,
	ErrEventNotFound: http.StatusNotFound,
	ErrPostNotFound:  http.StatusNotFound,
	ErrEventFinished: http.StatusBadRequest,
}

// HTTP状态码对应的错误标题
var statusTitleMap = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusUnauthorized:        "Unauthorized",
	http.StatusForbidden:           "Forbidden",
	http.StatusNotFound:            "Not Found",
	http.StatusMethodNotAllowed:    "Method Not Allowed",
	http.StatusRequestTimeout:      "Request Timeout",
	http.StatusInternalServerError: "Server Error",
}

// HandleError 统一处理错误响应，是错误信封唯一的出口
func HandleError(c *gin.Context, err error) {
	if appErr, ok := err.(*AppError); ok {
		status := errorStatusMap[appErr.Code]
		if status == 0 {
			status = http.StatusInternalServerError
		}

		resp := ErrorResponse{
			ErrorMessage:   appErr.Message,
			SourceFunction: appErr.SourceFunction,
			SourceFile:     appErr.SourceFile,
			Code:           status,
			Title:          statusTitleMap[status],
		}
		c.Error(appErr)
		c.JSON(status, resp)
		return
	}

	// 处理非 AppError 类型的错误
	c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorMessage: err.Error(),
		Code:         http.StatusInternalServerError,
		Title:        statusTitleMap[http.StatusInternalServerError],
	})
}
