package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"bus-admin/internal/authz"
	"bus-admin/internal/dto"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/utils"
)

func menuKeys(items []dto.MenuItemDTO) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	return keys
}

func TestBuildMenuPerRole(t *testing.T) {
	cache, _ := newRateCache(t)
	svc := NewMenuService(cache, zap.NewNop(), time.Minute)

	tests := []struct {
		role string
		want []string
	}{
		{authz.RoleStaff, []string{"dashboard", "tickets", "bookings"}},
		{authz.RoleManager, []string{"dashboard", "tickets", "bookings", "reviews", "revenue", "notifications"}},
		{authz.RoleAdmin, []string{"dashboard", "tickets", "bookings", "reviews", "revenue", "notifications", "management"}},
		{"guest", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			menu, err := svc.BuildMenu(context.Background(), tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.role, menu.Role)
			assert.Equal(t, tt.want, menuKeys(menu.Items))
		})
	}
}

func TestBuildMenuGroupsKeepVisibleChildren(t *testing.T) {
	cache, _ := newRateCache(t)
	svc := NewMenuService(cache, zap.NewNop(), time.Minute)

	menu, err := svc.BuildMenu(context.Background(), authz.RoleAdmin)
	require.NoError(t, err)

	management := menu.Items[len(menu.Items)-1]
	assert.Equal(t, "Management", management.Title)
	assert.Equal(t, []string{"settings"}, menuKeys(management.Children))
}

func TestBuildMenuIsCachedPerLanguage(t *testing.T) {
	cache, mr := newRateCache(t)
	svc := NewMenuService(cache, zap.NewNop(), time.Minute)

	en, err := svc.BuildMenu(context.Background(), authz.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", en.Items[0].Title)
	assert.True(t, mr.Exists("menu:role:staff:en"))

	ru, err := svc.BuildMenu(utils.WithLang(context.Background(), language.Russian), authz.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "Дашборд", ru.Items[0].Title)
	assert.True(t, mr.Exists("menu:role:staff:ru"))

	require.NoError(t, mr.Set("menu:role:staff:en", `{"role":"staff","items":[{"key":"cached","title":"Cached"}]}`))
	cached, err := svc.BuildMenu(context.Background(), authz.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, menuKeys(cached.Items))
}

func TestBuildMenuIgnoresCorruptCache(t *testing.T) {
	cache, mr := newRateCache(t)
	svc := NewMenuService(cache, zap.NewNop(), time.Minute)
	require.NoError(t, mr.Set("menu:role:staff:en", "{not json"))

	menu, err := svc.BuildMenu(context.Background(), authz.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "tickets", "bookings"}, menuKeys(menu.Items))
}

func TestInvalidateMenu(t *testing.T) {
	cache, mr := newRateCache(t)
	svc := NewMenuService(cache, zap.NewNop(), time.Minute)

	_, err := svc.BuildMenu(context.Background(), authz.RoleManager)
	require.NoError(t, err)
	require.True(t, mr.Exists("menu:role:manager:en"))

	require.NoError(t, svc.InvalidateMenu(context.Background(), authz.RoleManager))
	assert.False(t, mr.Exists("menu:role:manager:en"))

	err = svc.InvalidateMenu(context.Background(), "guest")
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
