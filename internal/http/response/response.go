// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, мягких отказов и сообщений валидации в едином формате.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Success — исход операции. Поле Message — текст для пользователя.
// Redirect и User заполняются только там, где это предусмотрено контрактом
// конкретной конечной точки.
type Response struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	User     any    `json:"user,omitempty"`
	Data     any    `json:"data,omitempty"`
}

// Unauthorized — фиксированный ответ шлюза аутентификации.
// Его формирует только RequireAuth, больше никто.
type Unauthorized struct {
	Error string `json:"error" example:"authentication required"`
}

// OK возвращает успешный Response с сообщением.
func OK(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// OKWithRedirect возвращает успешный Response с сообщением и адресом перехода.
func OKWithRedirect(msg, redirect string) Response {
	return Response{
		Success:  true,
		Message:  msg,
		Redirect: redirect,
	}
}

// OKWithUser возвращает успешный Response с данными пользователя.
func OKWithUser(user any) Response {
	return Response{
		Success: true,
		User:    user,
	}
}

// OKWithData возвращает успешный Response с произвольными данными.
func OKWithData(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// Fail возвращает мягкий отказ: операция не удалась, но это не ошибка сервера.
func Fail(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// ValidationError формирует мягкий отказ на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "datetime=2006-01-02":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only date in format 2006-01-02", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: strings.Join(errsMsgs, ", "),
	}
}
