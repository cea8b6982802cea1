package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"bus-admin/internal/authz"
	"bus-admin/internal/dto"
	"bus-admin/internal/entities"
	"bus-admin/internal/repositories"
	apperrors "bus-admin/pkg/errors"
	"bus-admin/pkg/i18n"
	"bus-admin/pkg/utils"
)

var menuTree = []entities.MenuItem{
	{Key: "dashboard", TitleKey: i18n.MenuDashboard, Path: "/dashboard", Icon: "dashboard", Permission: authz.DashboardView},
	{Key: "tickets", TitleKey: i18n.MenuTickets, Path: "/tickets", Icon: "ticket", Permission: authz.ViewsTickets},
	{Key: "bookings", TitleKey: i18n.MenuBookings, Path: "/bookings", Icon: "calendar", Permission: authz.ViewsBookings},
	{Key: "reviews", TitleKey: i18n.MenuReviews, Path: "/reviews", Icon: "star", Permission: authz.ViewsReviews},
	{Key: "revenue", TitleKey: i18n.MenuRevenue, Path: "/revenue", Icon: "chart", Permission: authz.RevenueView},
	{Key: "notifications", TitleKey: i18n.MenuNotifications, Path: "/notifications", Icon: "mail", Permission: authz.NotificationsSend},
	{Key: "management", TitleKey: i18n.MenuManagement, Icon: "settings", Children: []entities.MenuItem{
		{Key: "settings", TitleKey: i18n.MenuSettings, Path: "/settings", Icon: "sliders", Permission: authz.MenuManage},
	}},
}

type MenuServiceInterface interface {
	BuildMenu(ctx context.Context, role string) (*dto.MenuDTO, error)
	InvalidateMenu(ctx context.Context, role string) error
}

type MenuService struct {
	cacheRepo repositories.CacheRepositoryInterface
	logger    *zap.Logger
	cacheTTL  time.Duration
}

func NewMenuService(cacheRepo repositories.CacheRepositoryInterface, logger *zap.Logger, cacheTTL time.Duration) MenuServiceInterface {
	return &MenuService{cacheRepo: cacheRepo, logger: logger.Named("menu"), cacheTTL: cacheTTL}
}

func menuCacheKey(role string, lang language.Tag) string {
	return fmt.Sprintf("menu:role:%s:%s", role, lang)
}

// BuildMenu возвращает меню, доступное роли, с подписями на языке запроса.
func (s *MenuService) BuildMenu(ctx context.Context, role string) (*dto.MenuDTO, error) {
	lang := utils.GetLangFromCtx(ctx)
	cacheKey := menuCacheKey(role, lang)

	cached, errGet := s.cacheRepo.Get(ctx, cacheKey)
	if errGet == nil {
		var menu dto.MenuDTO
		if err := json.Unmarshal([]byte(cached), &menu); err == nil {
			s.logger.Debug("Меню получено из кеша", zap.String("role", role), zap.String("lang", lang.String()))
			return &menu, nil
		} else {
			s.logger.Warn("Повреждённая запись меню в кеше", zap.String("key", cacheKey), zap.Error(err))
		}
	} else if !errors.Is(errGet, repositories.ErrCacheMiss) {
		s.logger.Warn("Кеш меню недоступен", zap.String("key", cacheKey), zap.Error(errGet))
	}

	menu := &dto.MenuDTO{Role: role, Items: filterMenu(menuTree, role, lang)}

	payload, err := json.Marshal(menu)
	if err != nil {
		s.logger.Error("Не удалось сериализовать меню", zap.String("role", role), zap.Error(err))
		return menu, nil
	}
	if err := s.cacheRepo.Set(ctx, cacheKey, string(payload), s.cacheTTL); err != nil {
		s.logger.Error("Не удалось закешировать меню", zap.String("role", role), zap.Error(err))
	}
	return menu, nil
}

// InvalidateMenu удаляет закешированные меню роли на всех языках.
func (s *MenuService) InvalidateMenu(ctx context.Context, role string) error {
	known := false
	for _, r := range authz.Roles() {
		known = known || r == role
	}
	if !known {
		return apperrors.NewNotFoundError(fmt.Sprintf("unknown role '%s'", role))
	}

	langs := i18n.Supported()
	keys := make([]string, 0, len(langs))
	for _, lang := range langs {
		keys = append(keys, menuCacheKey(role, lang))
	}
	if err := s.cacheRepo.Del(ctx, keys...); err != nil {
		s.logger.Error("Не удалось очистить кеш меню", zap.String("role", role), zap.Error(err))
		return err
	}
	s.logger.Info("Кеш меню очищен", zap.String("role", role))
	return nil
}

// filterMenu оставляет пункты, доступные роли. Группа без пути остаётся, только если
// остался хотя бы один дочерний пункт.
func filterMenu(items []entities.MenuItem, role string, lang language.Tag) []dto.MenuItemDTO {
	out := make([]dto.MenuItemDTO, 0, len(items))
	for _, item := range items {
		if !authz.Can(role, item.Permission) {
			continue
		}
		entry := dto.MenuItemDTO{
			Key:   item.Key,
			Title: i18n.T(lang, item.TitleKey),
			Path:  item.Path,
			Icon:  item.Icon,
		}
		if len(item.Children) > 0 {
			entry.Children = filterMenu(item.Children, role, lang)
			if len(entry.Children) == 0 && item.Path == "" {
				continue
			}
		}
		out = append(out, entry)
	}
	return out
}
