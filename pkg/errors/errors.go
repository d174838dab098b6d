package errors

import (
	"errors"
	"net/http"
	"time"

	"github.com/echoapp/echo-sync-service/internal/middleware"
	"github.com/echoapp/echo-sync-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// AppError 统一应用错误结构体
// 包含错误码、消息、详情、追踪ID和时间戳
type AppError struct {
	// Code 错误码
	Code int `json:"code"`
	// Status 始终为 false
	Status bool `json:"status"`
	// Message 错误消息
	Message string `json:"message"`
	// Details 错误详情（可选）
	Details []string `json:"details,omitempty"`
	// Data 附加数据（可选），例如同步中止时的进度
	Data interface{} `json:"data,omitempty"`
	// TraceID 请求追踪ID
	TraceID string `json:"traceId,omitempty"`
	// Cause 原始错误（不序列化到JSON）
	Cause error `json:"-"`
	// Timestamp 错误发生时间
	Timestamp time.Time `json:"timestamp"`
}

// DataCarrier is implemented by errors that expose structured data to the client
// DataCarrier 由需要向客户端返回结构化数据的错误实现
type DataCarrier interface {
	ResponseData() interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError 从 Code 对象创建 AppError
func NewAppError(c *code.Code, cause error) *AppError {
	return &AppError{
		Code:      c.Code(),
		Message:   c.Msg(),
		Details:   c.Details(),
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// WithTraceID 设置 TraceID 并返回自身（链式调用）
func (e *AppError) WithTraceID(traceID string) *AppError {
	e.TraceID = traceID
	return e
}

// FromError converts any error into an AppError; unknown errors become ErrorServerInternal
// FromError 将任意错误转换为 AppError，未知错误转换为 ErrorServerInternal
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	resp := &AppError{Cause: err, Timestamp: time.Now()}

	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		resp.Code = codeErr.Code()
		resp.Message = codeErr.Msg()
		resp.Details = codeErr.Details()
		if codeErr.HaveData() {
			resp.Data = codeErr.Data()
		}
	} else {
		resp.Code = code.ErrorServerInternal.Code()
		resp.Message = code.ErrorServerInternal.Msg()
	}

	var carrier DataCarrier
	if errors.As(err, &carrier) {
		resp.Data = carrier.ResponseData()
	}
	return resp
}

// ErrorResponse 统一错误响应处理
// 从 gin.Context 获取 TraceID，将错误转换为 AppError 并返回 JSON 响应
func ErrorResponse(c *gin.Context, err error) {
	resp := FromError(err)
	resp.TraceID = middleware.GetTraceIDFromGin(c)
	c.Set("status_code", http.StatusOK)
	c.JSON(http.StatusOK, resp)
}

// IsAppError 检查错误是否为 AppError 类型
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}
