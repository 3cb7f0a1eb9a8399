// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков: успехи, ошибки, ошибки
// валидации, неавторизованный доступ с адресом входа и not-found
// с путём возврата к списку.
package response

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON-ответа сервера.
type Response struct {
	Status string `json:"status"`          // "OK" или "Error"
	Error  string `json:"error,omitempty"` // Текст ошибки при неуспехе
	Data   any    `json:"data,omitempty"`  // Данные ответа при успехе
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Маршрут экрана входа, на который отправляется неавторизованный посетитель.
const LoginPath = "/login"

// Маршрут по умолчанию после входа, если return_to не был сохранён.
const DefaultLandingPath = "/dashboard"

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// Unauthorized формирует ответ для неавторизованного запроса.
// В login_url сохраняется исходный путь, чтобы экран входа мог вернуть
// посетителя обратно после успешного входа.
func Unauthorized(requestedPath string) Response {
	loginURL := LoginPath
	if requestedPath != "" && strings.HasPrefix(requestedPath, "/") {
		loginURL = LoginPath + "?return_to=" + url.QueryEscape(requestedPath)
	}
	return Response{
		Status: StatusError,
		Error:  "authentication required",
		Data:   map[string]any{"login_url": loginURL},
	}
}

// NotFound формирует ответ для отсутствующей записи с путём возврата
// к родительскому списку.
func NotFound(msg, backPath string) Response {
	return Response{
		Status: StatusError,
		Error:  msg,
		Data:   map[string]any{"back_url": backPath},
	}
}

// SanitizeReturnTo возвращает return_to, если это относительный путь,
// иначе — маршрут по умолчанию. Абсолютные адреса отбрасываются,
// чтобы исключить открытый редирект.
func SanitizeReturnTo(returnTo string) string {
	if returnTo == "" || !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") {
		return DefaultLandingPath
	}
	return returnTo
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение преобразуется в человеко-читаемый текст.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s has an unsupported value", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
