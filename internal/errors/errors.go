package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// ErrorCode 定义错误码类型
type ErrorCode int

// 定义系统级错误码 (1000-1999)
const (
	ErrInternal ErrorCode = 1000 + iota
	ErrDatabase
	ErrScheduler
	ErrTimeout
)

// 定义认证相关错误码 (2000-2999)
const (
	ErrUnauthorized ErrorCode = 2000 + iota
	ErrForbidden
	ErrInvalidToken
	ErrTokenExpired
)

// 定义请求相关错误码 (3000-3999)
const (
	ErrBadRequest ErrorCode = 3000 + iota
	ErrValidation
	ErrResourceNotFound
)

// 定义业务相关错误码 (4000-4999)
const (
	ErrUserNotFound ErrorCode = 4000 + iota
	ErrEventNotFound
	ErrPostNotFound
	ErrEventFinished
)

// AppError 定义应用错误结构，创建时记录抛出位置
type AppError struct {
	Code           ErrorCode
	Message        string
	Err            error
	SourceFunction string
	SourceFile     string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	fn, file := callerInfo(2)
	return &AppError{
		Code:           code,
		Message:        message,
		SourceFunction: fn,
		SourceFile:     file,
	}
}

// Wrap 包装已有错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		// 已经是应用错误时保留最初的错误码和抛出位置
		return appErr
	}
	fn, file := callerInfo(2)
	return &AppError{
		Code:           code,
		Message:        message,
		Err:            err,
		SourceFunction: fn,
		SourceFile:     file,
	}
}

// Newf 创建带格式化消息的应用错误
func Newf(code ErrorCode, format string, args ...interface{}) *AppError {
	fn, file := callerInfo(2)
	return &AppError{
		Code:           code,
		Message:        fmt.Sprintf(format, args...),
		SourceFunction: fn,
		SourceFile:     file,
	}
}

// callerInfo 提取抛出错误的函数名和文件名
func callerInfo(skip int) (string, string) {
	pc, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "", ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", filepath.Base(file)
	}
	return filepath.Base(fn.Name()), filepath.Base(file)
}
