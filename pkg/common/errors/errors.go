package errors

import (
	"errors"
	"fmt"
)

// Kind 稳定的错误类别标识，客户端依赖该值做分支处理
type Kind string

const (
	KindValidation      Kind = "VALIDATION_ERROR" // 字段级校验失败，可由用户修正
	KindUnauthenticated Kind = "UNAUTHENTICATED"  // 缺失/格式错误/无效/过期的令牌
	KindForbidden       Kind = "FORBIDDEN"        // 已认证但无权限（如删除他人帖子）
	KindNotFound        Kind = "NOT_FOUND"        // 引用的实体不存在
	KindConflict        Kind = "CONFLICT"         // 唯一性冲突（如用户名已存在）
	KindInternal        Kind = "INTERNAL"         // 底层存储等不可预期错误，对外不透出细节
)

// Error 业务错误的统一载体：类别 + 消息 + 可选的字段错误表
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // 仅校验类错误携带，key为字段名
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New 构造不携带底层原因的业务错误
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidation 构造字段级校验错误
func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewConflict 构造带字段提示的冲突错误（注册重名时前端需要内联展示）
func NewConflict(message string, fields map[string]string) *Error {
	return &Error{Kind: KindConflict, Message: message, Fields: fields}
}

// Wrap 包装底层错误并归类；Message对外展示，cause仅用于日志
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf 提取错误类别，未归类的一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FieldsOf 提取字段错误表，非字段级错误返回nil
func FieldsOf(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// MessageOf 提取对外消息；内部错误统一替换为不泄露细节的文案
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus 错误类别到HTTP状态码的映射
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return 400
	case KindUnauthenticated:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	default:
		return 500
	}
}
