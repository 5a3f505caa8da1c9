package scheduler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"organising-events-app/internal/errors"
	"organising-events-app/internal/util"
)

// 事件状态切换使用的两个任务队列
const (
	QueueStatusToPresent = "events-status-to-present"
	QueueStatusToPast    = "events-status-to-past"
)

// Scheduler 是外部任务队列的边界。任务按名称入队，
// 到达 eta 时任务队列回调 callbackURL；同名任务可以被取消后重新入队。
type Scheduler interface {
	Schedule(queue, taskName string, eta time.Time, callbackURL string) error
	Cancel(queue, taskName string) error
}

// HTTPScheduler 通过 HTTP 调用外部任务队列服务
type HTTPScheduler struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewHTTPScheduler 创建任务队列客户端
func NewHTTPScheduler(baseURL, token string) *HTTPScheduler {
	return &HTTPScheduler{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type scheduleRequest struct {
	Queue       string    `json:"queue"`
	TaskName    string    `json:"task_name"`
	ETA         time.Time `json:"eta"`
	Method      string    `json:"method"`
	CallbackURL string    `json:"callback_url"`
}

// Schedule 在指定队列中创建一个到 eta 时触发回调的命名任务
func (s *HTTPScheduler) Schedule(queue, taskName string, eta time.Time, callbackURL string) error {
	body, err := json.Marshal(scheduleRequest{
		Queue:       queue,
		TaskName:    taskName,
		ETA:         eta,
		Method:      http.MethodGet,
		CallbackURL: callbackURL,
	})
	if err != nil {
		return errors.Wrap(errors.ErrScheduler, "序列化任务失败", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/tasks", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(errors.ErrScheduler, "构造任务请求失败", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrScheduler, "任务入队失败", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return errors.Newf(errors.ErrScheduler, "任务入队失败，状态码 %d", resp.StatusCode)
	}

	util.Logger.Info("任务已入队",
		zap.String("queue", queue),
		zap.String("task_name", taskName),
		zap.Time("eta", eta))
	return nil
}

// Cancel 按名称取消队列中的任务，任务不存在时视为成功
func (s *HTTPScheduler) Cancel(queue, taskName string) error {
	endpoint := fmt.Sprintf("%s/tasks/%s/%s", s.baseURL, url.PathEscape(queue), url.PathEscape(taskName))
	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return errors.Wrap(errors.ErrScheduler, "构造取消请求失败", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrScheduler, "取消任务失败", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusNotFound {
		return errors.Newf(errors.ErrScheduler, "取消任务失败，状态码 %d", resp.StatusCode)
	}

	util.Logger.Info("任务已取消",
		zap.String("queue", queue),
		zap.String("task_name", taskName))
	return nil
}
