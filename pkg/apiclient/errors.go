package apiclient

import (
	"errors"
	"fmt"
)

// Error возвращается при любой неудаче: ошибки транспорта, статусы не 2xx и
// конверты с кодом не CodeOK сводятся к этому типу.
type Error struct {
	Endpoint string
	Status   int    // HTTP status, 0 on transport failure
	Code     int    // envelope code when one was decoded
	Message  string // server message, may be empty
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("backend %s: %v", e.Endpoint, e.Err)
	case e.Message != "":
		return fmt.Sprintf("backend %s: code %d: %s", e.Endpoint, e.Code, e.Message)
	default:
		return fmt.Sprintf("backend %s: status %d code %d", e.Endpoint, e.Status, e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage возвращает сообщение сервера для пользователя или "", если нужен
// общий локализованный текст.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsNotFound сообщает, ответил ли бэкенд 404 статусом или кодом конверта.
func IsNotFound(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == 404 || apiErr.Code == 404
}
