package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/i18n"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	lang := GetLangFromCtx(c.Request().Context())

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, &HTTPResponse{Status: false, Message: httpErr.Message, Body: httpErr.Details})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{
			Status:  false,
			Message: ValidationMessage(lang, validationErrors),
		})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return c.JSON(echoErr.Code, &HTTPResponse{Status: false, Message: fmt.Sprint(echoErr.Message)})
	}

	switch {
	case errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrInvalidSigningMethod),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenNotYetValid),
		errors.Is(err, apperrors.ErrTokenIsNotAccess),
		errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrClaimsNotFoundInContext):
		return c.JSON(http.StatusUnauthorized, &HTTPResponse{Status: false, Message: i18n.T(lang, i18n.MsgUnauthorized)})
	case errors.Is(err, apperrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, &HTTPResponse{Status: false, Message: i18n.T(lang, i18n.MsgForbidden)})
	case errors.Is(err, apperrors.ErrViewNotFound):
		return c.JSON(http.StatusNotFound, &HTTPResponse{Status: false, Message: i18n.T(lang, i18n.MsgViewNotFound)})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.JSON(http.StatusNotFound, &HTTPResponse{Status: false, Message: err.Error()})
	case errors.Is(err, apperrors.ErrBadRequest), errors.Is(err, apperrors.ErrUnknownViewKind):
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: err.Error()})
	}

	var invalid *apperrors.InvalidInputError
	if errors.As(err, &invalid) {
		return c.JSON(http.StatusBadRequest, &HTTPResponse{Status: false, Message: invalid.Message})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, &HTTPResponse{Status: false, Message: i18n.T(lang, i18n.MsgInternal)})
}

// ValidationMessage перечисляет ошибочные поля после локализованного "неверный запрос".
func ValidationMessage(lang language.Tag, errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", e.Field(), e.Tag()))
	}
	return i18n.T(lang, i18n.MsgInvalidRequest) + ": " + strings.Join(msgs, "; ")
}
