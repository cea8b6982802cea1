package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"bus-admin/internal/authz"
	"bus-admin/internal/controllers"
	"bus-admin/internal/entities"
	"bus-admin/internal/integrations"
	"bus-admin/internal/repositories"
	"bus-admin/internal/services"
	"bus-admin/pkg/apiclient"
	"bus-admin/pkg/config"
	"bus-admin/pkg/customvalidator"
	"bus-admin/pkg/eventbus"
	"bus-admin/pkg/service"
	"bus-admin/pkg/utils"
	"bus-admin/pkg/websocket"
)

const testSecret = "test-secret"

type apiResponse struct {
	Status  bool            `json:"status"`
	Body    json.RawMessage `json:"body"`
	Message string          `json:"message"`
}

type RouterTestSuite struct {
	suite.Suite
	Echo    *echo.Echo
	Backend *httptest.Server
	Redis   *miniredis.Miniredis
	Views   *services.ViewService
}

func envelope(w http.ResponseWriter, status, code int, message string, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": code, "message": message, "result": result})
}

func fakeBackend() http.Handler {
	ticket := map[string]interface{}{
		"ticketCode": "TICKET123", "passengerName": "Nguyen Van A", "email": "a@example.com",
		"price": "150000", "status": "PAID",
	}
	page := func(items ...interface{}) map[string]interface{} {
		if items == nil {
			items = []interface{}{}
		}
		return map[string]interface{}{"items": items, "currentPage": 1, "totalPages": 1, "pageSize": 20}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, 200, "ok", page(ticket))
	})
	mux.HandleFunc("/tickets/search", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ticketCode") == "TICKET123" {
			envelope(w, http.StatusOK, 200, "ok", page(ticket))
			return
		}
		envelope(w, http.StatusOK, 200, "ok", page())
	})
	mux.HandleFunc("/tickets/filter", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusInternalServerError, 500, "database down", nil)
	})
	mux.HandleFunc("/tickets/TICKET123", func(w http.ResponseWriter, r *http.Request) {
		detail := map[string]interface{}{"ticketCode": "TICKET123", "paymentMethod": "card"}
		envelope(w, http.StatusOK, 200, "ok", detail)
	})
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, 200, "ok", page(map[string]interface{}{"bookingCode": "BK1"}))
	})
	mux.HandleFunc("/dashboard/summary", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, 200, "ok", map[string]interface{}{"totalTickets": 10, "previousTickets": 5})
	})
	mux.HandleFunc("/revenue", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, 200, "ok", map[string]interface{}{"points": []interface{}{}})
	})
	return mux
}

func (s *RouterTestSuite) SetupTest() {
	s.Backend = httptest.NewServer(fakeBackend())
	s.Redis = miniredis.RunT(s.T())

	logger := zap.NewNop()
	cfg := &config.Config{
		Server:  config.ServerConfig{AllowedOrigins: []string{"*"}},
		Backend: config.BackendConfig{BaseURL: s.Backend.URL, Timeout: 2 * time.Second},
		Views:   config.ViewConfig{PageSize: 20, IdleTTL: time.Hour},
		Menu:    config.MenuConfig{CacheTTL: time.Minute},
		Email:   config.EmailConfig{Provider: "noop", Concurrency: 2, HourlyLimit: 5},
	}

	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	redisClient := redis.NewClient(&redis.Options{Addr: s.Redis.Addr()})
	cache := repositories.NewRedisCacheRepository(redisClient)

	backend := apiclient.New(cfg.Backend, logger)
	bookings := apiclient.NewCollection[entities.Booking, entities.BookingDetail](backend, "/bookings")
	bus := eventbus.New(logger)
	registry, err := integrations.NewEmailRegistry(cfg.Email, logger)
	s.Require().NoError(err)

	s.Views = services.NewViewService(services.ViewSources{
		Tickets:  apiclient.NewCollection[entities.Ticket, entities.TicketDetail](backend, "/tickets"),
		Reviews:  apiclient.NewCollection[entities.Review, entities.ReviewDetail](backend, "/reviews"),
		Bookings: bookings,
	}, cfg.Views, bus, logger)

	svc := &Services{
		Views:         s.Views,
		Dashboard:     services.NewDashboardService(backend, bookings, logger),
		Menu:          services.NewMenuService(cache, logger, cfg.Menu.CacheTTL),
		Notifications: services.NewNotificationService(registry, s.Views, cache, bus, cfg.Email, logger),
		Reports:       services.NewReportService(logger),
	}
	loggers := &Loggers{Main: logger, Auth: logger, Views: logger, Email: logger}
	checks := map[string]controllers.Pinger{}

	InitRouter(e, svc, websocket.NewHub(logger), service.NewJWTService(testSecret, logger), checks, loggers, cfg)
	s.Echo = e
}

func (s *RouterTestSuite) TearDownTest() {
	s.Views.Close()
	s.Backend.Close()
}

func token(userID uint64, role string) string {
	claims := service.JwtCustomClaim{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

func (s *RouterTestSuite) do(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) decode(rec *httptest.ResponseRecorder) apiResponse {
	var resp apiResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func (s *RouterTestSuite) mount(bearer, kind string) string {
	rec := s.do(http.MethodPost, "/api/views", bearer, map[string]string{"kind": kind})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var mounted struct {
		ViewID string `json:"viewId"`
	}
	s.Require().NoError(json.Unmarshal(s.decode(rec).Body, &mounted))
	return mounted.ViewID
}

type viewBody struct {
	State struct {
		Items       []entities.Ticket `json:"items"`
		HasSearched bool              `json:"hasSearched"`
		Error       string            `json:"error"`
		Warning     string            `json:"warning"`
	} `json:"state"`
	Detail struct {
		Record *entities.TicketDetail `json:"record"`
	} `json:"detail"`
}

func (s *RouterTestSuite) viewState(rec *httptest.ResponseRecorder) viewBody {
	var body viewBody
	s.Require().NoError(json.Unmarshal(s.decode(rec).Body, &body), rec.Body.String())
	return body
}

func (s *RouterTestSuite) TestRequiresToken() {
	rec := s.do(http.MethodGet, "/api/menu", "", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RouterTestSuite) TestStaffCannotMountReviews() {
	rec := s.do(http.MethodPost, "/api/views", token(1, authz.RoleStaff), map[string]string{"kind": "reviews"})
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *RouterTestSuite) TestTicketViewFlow() {
	bearer := token(1, authz.RoleManager)
	id := s.mount(bearer, "tickets")
	base := "/api/views/" + id

	rec := s.do(http.MethodPost, base+"/load", bearer, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	state := s.viewState(rec)
	s.Len(state.State.Items, 1)
	s.False(state.State.HasSearched)

	rec = s.do(http.MethodPost, base+"/search", bearer, map[string]string{})
	s.Equal(http.StatusBadRequest, rec.Code)
	state = s.viewState(rec)
	s.NotEmpty(state.State.Warning)
	s.Len(state.State.Items, 1, "rows survive a rejected search")

	rec = s.do(http.MethodPost, base+"/search", bearer, map[string]string{"phone": "not a phone"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, base+"/search", bearer, map[string]string{"ticketCode": "NOPE"})
	s.Require().Equal(http.StatusOK, rec.Code)
	state = s.viewState(rec)
	s.Empty(state.State.Items)
	s.True(state.State.HasSearched)

	rec = s.do(http.MethodPost, base+"/filter", bearer, map[string]string{"status": "PAID"})
	s.Equal(http.StatusBadGateway, rec.Code)
	resp := s.decode(rec)
	s.Equal("database down", resp.Message)

	rec = s.do(http.MethodGet, base+"/detail/TICKET123", bearer, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	state = s.viewState(rec)
	s.Require().NotNil(state.Detail.Record)
	s.Equal("card", state.Detail.Record.PaymentMethod)

	rec = s.do(http.MethodPost, base+"/reset", bearer, nil)
	s.Equal(http.StatusOK, rec.Code)
	s.False(s.viewState(rec).State.HasSearched)

	rec = s.do(http.MethodPost, base+"/page", bearer, map[string]int{"page": 2})
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, base, token(2, authz.RoleManager), nil)
	s.Equal(http.StatusNotFound, rec.Code, "views belong to the user who mounted them")

	rec = s.do(http.MethodDelete, base, bearer, nil)
	s.Equal(http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, base, bearer, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestExportView() {
	bearer := token(1, authz.RoleManager)
	id := s.mount(bearer, "tickets")
	s.Require().Equal(http.StatusOK, s.do(http.MethodPost, "/api/views/"+id+"/load", bearer, nil).Code)

	rec := s.do(http.MethodGet, "/api/views/"+id+"/export", bearer, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(strings.HasPrefix(rec.Header().Get(echo.HeaderContentDisposition), "attachment; filename=tickets_"))

	f, err := excelize.OpenReader(rec.Body)
	s.Require().NoError(err)
	defer f.Close()
	code, err := f.GetCellValue("Tickets", "A2")
	s.Require().NoError(err)
	s.Equal("TICKET123", code)

	staff := token(3, authz.RoleStaff)
	staffView := s.mount(staff, "tickets")
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/views/"+staffView+"/export", staff, nil).Code)
}

func (s *RouterTestSuite) TestDashboard() {
	rec := s.do(http.MethodGet, "/api/dashboard?from=2024-03-01&to=2024-03-07", token(1, authz.RoleStaff), nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var stats struct {
		KPIs struct {
			TotalTickets struct {
				Current  float64 `json:"current"`
				TrendPct float64 `json:"trend_pct"`
			} `json:"total_tickets"`
		} `json:"kpis"`
		Revenue []json.RawMessage `json:"revenue"`
	}
	s.Require().NoError(json.Unmarshal(s.decode(rec).Body, &stats))
	s.Equal(float64(10), stats.KPIs.TotalTickets.Current)
	s.Equal(float64(100), stats.KPIs.TotalTickets.TrendPct)
	s.Len(stats.Revenue, 7)

	rec = s.do(http.MethodGet, "/api/dashboard/revenue", token(1, authz.RoleStaff), nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/api/dashboard/revenue?groupBy=week", token(1, authz.RoleManager), nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/dashboard?from=yesterday", token(1, authz.RoleManager), nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestMenu() {
	rec := s.do(http.MethodGet, "/api/menu", token(1, authz.RoleStaff), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(s.Redis.Exists("menu:role:staff:en"))

	rec = s.do(http.MethodDelete, "/api/menu/cache/staff", token(1, authz.RoleStaff), nil)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/menu/cache/staff", token(1, authz.RoleAdmin), nil)
	s.Equal(http.StatusOK, rec.Code)
	s.False(s.Redis.Exists("menu:role:staff:en"))
}

func (s *RouterTestSuite) TestBulkEmail() {
	req := map[string]interface{}{
		"subject":    "Schedule change",
		"body":       "Departure moved to **09:00**",
		"recipients": []string{"a@example.com", "b@example.com"},
	}

	rec := s.do(http.MethodPost, "/api/notifications/email", token(1, authz.RoleStaff), req)
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/notifications/email", token(1, authz.RoleManager), req)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Sent int `json:"sent"`
	}
	s.Require().NoError(json.Unmarshal(s.decode(rec).Body, &result))
	s.Equal(2, result.Sent)

	rec = s.do(http.MethodPost, "/api/notifications/email", token(1, authz.RoleManager), req)
	s.Equal(http.StatusConflict, rec.Code, "double submit")

	req["recipients"] = []string{"not-an-email"}
	rec = s.do(http.MethodPost, "/api/notifications/email", token(1, authz.RoleManager), req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestHealthAndMetrics() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)
	rec := s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "go_goroutines")
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
