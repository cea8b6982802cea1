// Package i18n хранит тексты консоли для пользователя.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

const (
	MsgBackendUnavailable = "backend.unavailable"
	MsgNoCriteria         = "criteria.empty"
	MsgSuperseded         = "request.superseded"
	MsgViewNotFound       = "view.not_found"
	MsgInvalidRequest     = "request.invalid"
	MsgForbidden          = "auth.forbidden"
	MsgUnauthorized       = "auth.unauthorized"
	MsgNoRecipients       = "email.no_recipients"
	MsgInternal           = "internal"

	MsgViewMounted   = "view.mounted"
	MsgViewUnmounted = "view.unmounted"
	MsgStateLoaded   = "view.state"
	MsgDetailLoaded  = "view.detail"
	MsgDashboard     = "dashboard.loaded"
	MsgRevenue       = "revenue.loaded"
	MsgMenu          = "menu.loaded"
	MsgMenuReset     = "menu.reset"
	MsgEmailSent     = "email.sent"
	MsgRateLimited   = "email.rate_limited"
	MsgDuplicateSend = "email.duplicate"
	MsgTrendChange   = "trend.change"
	MsgTrendFlat     = "trend.flat"

	MenuDashboard     = "menu.dashboard"
	MenuTickets       = "menu.tickets"
	MenuBookings      = "menu.bookings"
	MenuReviews       = "menu.reviews"
	MenuRevenue       = "menu.revenue"
	MenuNotifications = "menu.notifications"
	MenuManagement    = "menu.management"
	MenuSettings      = "menu.settings"
)

var supported = []language.Tag{
	language.English,
	language.Russian,
	language.Vietnamese,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		MsgRateLimited:        "Too many email batches, try again later",
		MsgDuplicateSend:      "This email is already being sent",
		MsgTrendChange:        "%s%.0f%% vs previous period",
		MsgTrendFlat:          "no change",
		MsgBackendUnavailable: "Unable to load data, please try again",
		MsgNoCriteria:         "Enter at least one search criterion",
		MsgSuperseded:         "A newer request replaced this one",
		MsgViewNotFound:       "View not found or expired",
		MsgInvalidRequest:     "Invalid request",
		MsgForbidden:          "Access denied",
		MsgUnauthorized:       "Authorization required",
		MsgNoRecipients:       "At least one recipient is required",
		MsgInternal:           "Internal server error",
		MsgViewMounted:        "View created",
		MsgViewUnmounted:      "View closed",
		MsgStateLoaded:        "View state",
		MsgDetailLoaded:       "Details loaded",
		MsgDashboard:          "Dashboard statistics loaded",
		MsgRevenue:            "Revenue series loaded",
		MsgMenu:               "Menu loaded",
		MsgMenuReset:          "Menu cache cleared",
		MsgEmailSent:          "Emails sent",
		MenuDashboard:         "Dashboard",
		MenuTickets:           "Tickets",
		MenuBookings:          "Bookings",
		MenuReviews:           "Reviews",
		MenuRevenue:           "Revenue",
		MenuNotifications:     "Email notifications",
		MenuManagement:        "Management",
		MenuSettings:          "Settings",
	},
	language.Russian: {
		MsgRateLimited:        "Слишком много рассылок, попробуйте позже",
		MsgDuplicateSend:      "Это письмо уже отправляется",
		MsgTrendChange:        "%s%.0f%% к прошлому периоду",
		MsgTrendFlat:          "без изменений",
		MsgBackendUnavailable: "Не удалось загрузить данные, попробуйте ещё раз",
		MsgNoCriteria:         "Укажите хотя бы один критерий поиска",
		MsgSuperseded:         "Запрос заменён более новым",
		MsgViewNotFound:       "Представление не найдено или устарело",
		MsgInvalidRequest:     "Неверный запрос",
		MsgForbidden:          "Доступ запрещён",
		MsgUnauthorized:       "Требуется авторизация",
		MsgNoRecipients:       "Нужен хотя бы один получатель",
		MsgInternal:           "Внутренняя ошибка сервера",
		MsgViewMounted:        "Представление создано",
		MsgViewUnmounted:      "Представление закрыто",
		MsgStateLoaded:        "Состояние представления",
		MsgDetailLoaded:       "Детали загружены",
		MsgDashboard:          "Статистика для дашборда получена",
		MsgRevenue:            "Данные о выручке получены",
		MsgMenu:               "Меню получено",
		MsgMenuReset:          "Кеш меню очищен",
		MsgEmailSent:          "Письма отправлены",
		MenuDashboard:         "Дашборд",
		MenuTickets:           "Билеты",
		MenuBookings:          "Бронирования",
		MenuReviews:           "Отзывы",
		MenuRevenue:           "Выручка",
		MenuNotifications:     "Email-рассылка",
		MenuManagement:        "Управление",
		MenuSettings:          "Настройки",
	},
	language.Vietnamese: {
		MsgRateLimited:        "Gửi quá nhiều lần, vui lòng thử lại sau",
		MsgDuplicateSend:      "Email này đang được gửi",
		MsgTrendChange:        "%s%.0f%% so với kỳ trước",
		MsgTrendFlat:          "không đổi",
		MsgBackendUnavailable: "Không thể tải dữ liệu, vui lòng thử lại",
		MsgNoCriteria:         "Vui lòng nhập ít nhất một tiêu chí tìm kiếm",
		MsgSuperseded:         "Yêu cầu đã được thay thế bởi yêu cầu mới hơn",
		MsgViewNotFound:       "Không tìm thấy màn hình hoặc đã hết hạn",
		MsgInvalidRequest:     "Yêu cầu không hợp lệ",
		MsgForbidden:          "Không có quyền truy cập",
		MsgUnauthorized:       "Cần đăng nhập",
		MsgNoRecipients:       "Cần ít nhất một người nhận",
		MsgInternal:           "Lỗi máy chủ nội bộ",
		MsgViewMounted:        "Đã tạo màn hình",
		MsgViewUnmounted:      "Đã đóng màn hình",
		MsgStateLoaded:        "Trạng thái màn hình",
		MsgDetailLoaded:       "Đã tải chi tiết",
		MsgDashboard:          "Đã tải thống kê",
		MsgRevenue:            "Đã tải doanh thu",
		MsgMenu:               "Đã tải menu",
		MsgMenuReset:          "Đã xoá bộ nhớ đệm menu",
		MsgEmailSent:          "Đã gửi email",
		MenuDashboard:         "Tổng quan",
		MenuTickets:           "Vé",
		MenuBookings:          "Đặt chỗ",
		MenuReviews:           "Đánh giá",
		MenuRevenue:           "Doanh thu",
		MenuNotifications:     "Gửi email",
		MenuManagement:        "Quản lý",
		MenuSettings:          "Cài đặt",
	},
}

// Match выбирает поддерживаемый язык, ближайший к заголовку Accept-Language.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, _ := matcher.Match(tags...)
	return supported[index]
}

// T возвращает сообщение по key, иначе английское, иначе сам key.
func T(lang language.Tag, key string, args ...interface{}) string {
	msg, ok := catalog[lang][key]
	if !ok {
		msg, ok = catalog[language.English][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Supported перечисляет языки с каталогом.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}
