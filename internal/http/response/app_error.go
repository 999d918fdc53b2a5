package response

import "fmt"

// AppError 接口错误：信封中的 status_code、对外提示与内部原因
// Err 只进日志，不会写入响应体。
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WrapError 包装内部错误，code 为空时按 500 处理
func WrapError(code int, message string, err error) *AppError {
	if code == 0 {
		code = CodeInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}
