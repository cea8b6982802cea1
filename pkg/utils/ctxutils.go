package utils

import (
	"context"

	"golang.org/x/text/language"

	"bus-admin/pkg/contextkeys"
	apperrors "bus-admin/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrClaimsNotFoundInContext
	}
	return userID, nil
}

func GetRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrClaimsNotFoundInContext
	}
	return role, nil
}

// GetLangFromCtx возвращает выбранный язык UI, английский по умолчанию.
func GetLangFromCtx(ctx context.Context) language.Tag {
	if lang, ok := ctx.Value(contextkeys.LangKey).(language.Tag); ok {
		return lang
	}
	return language.English
}

func WithLang(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, contextkeys.LangKey, lang)
}
