package router_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/router"
	"github.com/iliyamo/hotel-booking/internal/service"
	"github.com/iliyamo/hotel-booking/internal/testutil"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

const cookieName = "token"

func buildTestApp(t *testing.T) (*echo.Echo, *sql.DB, testutil.Fixture) {
	t.Helper()
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db)
	log := zap.NewNop()
	cfg := config.Config{JWTSecret: "router-secret", CookieName: cookieName, AccessTTLMin: 60, BcryptCost: 4}

	e := echo.New()
	e.Validator = utils.NewRequestValidator()
	catalog := service.NewCatalogService(repository.NewHotelRepo(db), repository.NewRoomRepo(db), repository.NewRoomTypeRepo(db))
	auth := service.NewAuthService(repository.NewUserRepo(db), cfg.JWTSecret, cfg.AccessTTL(), cfg.BcryptCost, log)
	bookings := service.NewBookingService(db, service.NopPublisher{}, log)
	payments := service.NewPaymentService(db, service.NopPublisher{}, log)

	sess := router.Session{Secret: cfg.JWTSecret, CookieName: cfg.CookieName, Roles: auth}
	noCache := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, auth), sess)
	router.RegisterCatalog(e, handler.NewCatalogHandler(catalog), noCache)
	router.RegisterBookings(e, handler.NewBookingHandler(bookings), handler.NewPaymentHandler(payments), sess)
	return e, db, f
}

func do(app *echo.Echo, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func login(t *testing.T, app *echo.Echo, path, email string) *http.Cookie {
	t.Helper()
	resp := do(app, http.MethodPost, path, `{"email":"`+email+`","password":"secret123"}`, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, resp.Code, resp.Body.String())
	}
	for _, ck := range resp.Result().Cookies() {
		if ck.Name == cookieName && ck.Value != "" {
			if !ck.HttpOnly {
				t.Error("session cookie is not HttpOnly")
			}
			return ck
		}
	}
	t.Fatalf("login %s set no session cookie", email)
	return nil
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", resp.Body.String(), err)
	}
}

func TestRegisterLoginAndBook(t *testing.T) {
	app, db, f := buildTestApp(t)

	resp := do(app, http.MethodPost, "/api/auth/register", `{"name":"Frank","email":"frank@example.com","password":"pw-frank"}`, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", resp.Code, resp.Body.String())
	}
	resp = do(app, http.MethodPost, "/api/auth/register", `{"name":"Frank","email":"frank@example.com","password":"pw-frank"}`, nil)
	if resp.Code != http.StatusConflict {
		t.Fatalf("duplicate register: %d", resp.Code)
	}

	resp = do(app, http.MethodPost, "/api/auth/login", `{"email":"frank@example.com","password":"pw-frank"}`, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("login: %d %s", resp.Code, resp.Body.String())
	}
	var sess struct {
		User  model.PublicUser `json:"user"`
		Token string           `json:"token"`
	}
	decode(t, resp, &sess)
	ck := &http.Cookie{Name: cookieName, Value: sess.Token}

	body := `{"room_id":` + strconv.FormatUint(f.RoomID, 10) + `,"check_in_date":"2024-08-01","check_out_date":"2024-08-03"}`
	resp = do(app, http.MethodPost, "/api/bookings", body, ck)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create booking: %d %s", resp.Code, resp.Body.String())
	}
	var b model.Booking
	decode(t, resp, &b)
	if b.UserID != sess.User.ID || b.PaymentStatus != model.PaymentUnpaid {
		t.Errorf("booking = %+v", b)
	}

	resp = do(app, http.MethodPost, "/api/bookings", body, ck)
	if resp.Code != http.StatusConflict || !strings.Contains(resp.Body.String(), "Room is already booked") {
		t.Errorf("second booking: %d %s", resp.Code, resp.Body.String())
	}

	pay := `{"booking_id":` + strconv.FormatUint(b.ID, 10) + `,"amount":200,"payment_date":"2024-07-20"}`
	resp = do(app, http.MethodPost, "/api/payments", pay, ck)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"payment_status":"paid"`) {
		t.Errorf("payment: %d %s", resp.Code, resp.Body.String())
	}
	resp = do(app, http.MethodGet, "/api/payments/booking/"+strconv.FormatUint(b.ID, 10), "", ck)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"paid"`) {
		t.Errorf("payment status: %d %s", resp.Code, resp.Body.String())
	}

	resp = do(app, http.MethodGet, "/api/bookings", "", ck)
	var mine []model.UserBooking
	decode(t, resp, &mine)
	if len(mine) != 1 || mine[0].ID != b.ID {
		t.Errorf("own bookings = %+v", mine)
	}

	resp = do(app, http.MethodDelete, "/api/bookings/"+strconv.FormatUint(b.ID, 10), "", ck)
	if resp.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", resp.Code, resp.Body.String())
	}
	if got := testutil.Availability(t, db, f.RoomID); got != model.RoomAvailable {
		t.Errorf("availability after cancel = %s", got)
	}
}

func TestAccessControl(t *testing.T) {
	app, _, f := buildTestApp(t)
	user := login(t, app, "/api/auth/login", "alice@example.com")
	admin := login(t, app, "/api/auth/admin/login", "admin@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		cookie *http.Cookie
		want   int
	}{
		{name: "Given no session When listing bookings Then 401", method: http.MethodGet, path: "/api/bookings", want: http.StatusUnauthorized},
		{name: "Given no session When booking Then 401", method: http.MethodPost, path: "/api/bookings", body: `{"room_id":1,"check_in_date":"2024-01-01","check_out_date":"2024-01-02"}`, want: http.StatusUnauthorized},
		{name: "Given a user When reading stats Then 403", method: http.MethodGet, path: "/api/bookings/stats", cookie: user, want: http.StatusForbidden},
		{name: "Given a user When reading the admin list Then 403", method: http.MethodGet, path: "/api/bookings/admin", cookie: user, want: http.StatusForbidden},
		{name: "Given a user When listing users Then 403", method: http.MethodGet, path: "/api/auth/admin/users", cookie: user, want: http.StatusForbidden},
		{name: "Given a user When listing another user's bookings Then 403", method: http.MethodGet, path: "/api/bookings/user/" + strconv.FormatUint(f.AdminID, 10), cookie: user, want: http.StatusForbidden},
		{name: "Given a user When booking for someone else Then 403", method: http.MethodPost, path: "/api/bookings", cookie: user,
			body: `{"user_id":` + strconv.FormatUint(f.AdminID, 10) + `,"room_id":1,"check_in_date":"2024-01-01","check_out_date":"2024-01-02"}`, want: http.StatusForbidden},
		{name: "Given an admin When reading stats Then 200", method: http.MethodGet, path: "/api/bookings/stats", cookie: admin, want: http.StatusOK},
		{name: "Given an admin When listing users Then 200", method: http.MethodGet, path: "/api/auth/admin/users", cookie: admin, want: http.StatusOK},
		{name: "Given a user When listing own bookings Then 200", method: http.MethodGet, path: "/api/bookings/user/" + strconv.FormatUint(f.UserID, 10), cookie: user, want: http.StatusOK},
		{name: "Given a user When reading me Then 200", method: http.MethodGet, path: "/api/auth/me", cookie: user, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(app, tt.method, tt.path, tt.body, tt.cookie)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
		})
	}

	resp := do(app, http.MethodPost, "/api/auth/admin/login", `{"email":"alice@example.com","password":"secret123"}`, nil)
	if resp.Code != http.StatusUnauthorized || !strings.Contains(resp.Body.String(), "Invalid admin credentials") {
		t.Errorf("non-admin admin login: %d %s", resp.Code, resp.Body.String())
	}
}

func TestBookingOwnership(t *testing.T) {
	app, db, f := buildTestApp(t)
	alice := login(t, app, "/api/auth/login", "alice@example.com")
	admin := login(t, app, "/api/auth/admin/login", "admin@example.com")

	adminBooking := testutil.SeedBooking(t, db, f.AdminID, f.RoomID, "2024-09-01", "2024-09-03")
	aliceBooking := testutil.SeedBooking(t, db, f.UserID, f.Room2ID, "2024-09-01", "2024-09-02")
	other := strconv.FormatUint(adminBooking, 10)
	own := strconv.FormatUint(aliceBooking, 10)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		cookie *http.Cookie
		want   int
	}{
		{name: "Given another guest's booking When cancelling Then 403", method: http.MethodDelete, path: "/api/bookings/" + other, cookie: alice, want: http.StatusForbidden},
		{name: "Given another guest's booking When paying Then 403", method: http.MethodPost, path: "/api/payments", cookie: alice,
			body: `{"booking_id":` + other + `,"amount":10,"payment_date":"2024-08-01"}`, want: http.StatusForbidden},
		{name: "Given another guest's booking When reading payment status Then 403", method: http.MethodGet, path: "/api/payments/booking/" + other, cookie: alice, want: http.StatusForbidden},
		{name: "Given an own booking When paying Then 200", method: http.MethodPost, path: "/api/payments", cookie: alice,
			body: `{"booking_id":` + own + `,"amount":10,"payment_date":"2024-08-01"}`, want: http.StatusOK},
		{name: "Given an admin When reading a guest's payment status Then 200", method: http.MethodGet, path: "/api/payments/booking/" + own, cookie: admin, want: http.StatusOK},
		{name: "Given an admin When cancelling a guest's booking Then 200", method: http.MethodDelete, path: "/api/bookings/" + own, cookie: admin, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(app, tt.method, tt.path, tt.body, tt.cookie)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
		})
	}

	if n := testutil.Count(t, db, "booking", "booking_id = ?", adminBooking); n != 1 {
		t.Errorf("forbidden cancel removed the booking")
	}
	if n := testutil.Count(t, db, "payment", "booking_id = ?", adminBooking); n != 0 {
		t.Errorf("forbidden payment stored %d rows", n)
	}
}

func TestDemotedAdminLosesAccess(t *testing.T) {
	app, db, f := buildTestApp(t)
	admin := login(t, app, "/api/auth/admin/login", "admin@example.com")

	if resp := do(app, http.MethodGet, "/api/bookings/stats", "", admin); resp.Code != http.StatusOK {
		t.Fatalf("stats before demotion: %d %s", resp.Code, resp.Body.String())
	}
	if _, err := db.Exec(`UPDATE users SET role = 'user' WHERE user_id = ?`, f.AdminID); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"/api/bookings/stats", "/api/bookings/admin", "/api/auth/admin/users"} {
		if resp := do(app, http.MethodGet, path, "", admin); resp.Code != http.StatusForbidden {
			t.Errorf("%s after demotion: %d %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestErrorResponses(t *testing.T) {
	app, _, _ := buildTestApp(t)
	user := login(t, app, "/api/auth/login", "alice@example.com")

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		want    int
		wantErr string
	}{
		{name: "Given an unknown booking When cancelling Then 404", method: http.MethodDelete, path: "/api/bookings/999", want: http.StatusNotFound, wantErr: "Booking not found"},
		{name: "Given an unknown room When booking Then 404", method: http.MethodPost, path: "/api/bookings", body: `{"room_id":999,"check_in_date":"2024-01-01","check_out_date":"2024-01-02"}`, want: http.StatusNotFound, wantErr: "Room not found"},
		{name: "Given a malformed date When booking Then 400", method: http.MethodPost, path: "/api/bookings", body: `{"room_id":1,"check_in_date":"01/01/2024","check_out_date":"2024-01-02"}`, want: http.StatusBadRequest, wantErr: "YYYY-MM-DD"},
		{name: "Given reversed dates When booking Then 400", method: http.MethodPost, path: "/api/bookings", body: `{"room_id":1,"check_in_date":"2024-01-05","check_out_date":"2024-01-02"}`, want: http.StatusBadRequest, wantErr: "check_out_date must not be before check_in_date"},
		{name: "Given broken JSON When booking Then 400", method: http.MethodPost, path: "/api/bookings", body: `{"room_id":`, want: http.StatusBadRequest, wantErr: "Invalid request body"},
		{name: "Given a non-numeric id When cancelling Then 400", method: http.MethodDelete, path: "/api/bookings/abc", want: http.StatusBadRequest},
		{name: "Given an unknown booking When paying Then 404", method: http.MethodPost, path: "/api/payments", body: `{"booking_id":999,"amount":10,"payment_date":"2024-01-01"}`, want: http.StatusNotFound, wantErr: "Booking not found"},
		{name: "Given a sub-cent amount When paying Then 400", method: http.MethodPost, path: "/api/payments", body: `{"booking_id":1,"amount":0.001,"payment_date":"2024-01-01"}`, want: http.StatusBadRequest, wantErr: "amount must be at least 0.01"},
		{name: "Given an amount beyond the column When paying Then 400", method: http.MethodPost, path: "/api/payments", body: `{"booking_id":1,"amount":100000000,"payment_date":"2024-01-01"}`, want: http.StatusBadRequest, wantErr: "amount must be at most 99999999.99"},
		{name: "Given a negative amount When paying Then 400", method: http.MethodPost, path: "/api/payments", body: `{"booking_id":1,"amount":-10,"payment_date":"2024-01-01"}`, want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(app, tt.method, tt.path, tt.body, user)
			if resp.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, resp.Code, resp.Body.String())
			}
			var body map[string]any
			decode(t, resp, &body)
			msg, _ := body["error"].(string)
			if msg == "" || !strings.Contains(msg, tt.wantErr) {
				t.Errorf("error = %q, want containing %q", msg, tt.wantErr)
			}
		})
	}
}

func TestCatalogRoutes(t *testing.T) {
	app, _, f := buildTestApp(t)

	resp := do(app, http.MethodGet, "/api/hotels", "", nil)
	var hotels []model.Hotel
	decode(t, resp, &hotels)
	if resp.Code != http.StatusOK || len(hotels) != 1 {
		t.Fatalf("hotels: %d %s", resp.Code, resp.Body.String())
	}

	hotel := strconv.FormatUint(f.HotelID, 10)
	for _, path := range []string{"/api/hotels/" + hotel + "/rooms", "/api/rooms/hotel/" + hotel} {
		resp = do(app, http.MethodGet, path, "", nil)
		var rooms []model.Room
		decode(t, resp, &rooms)
		if len(rooms) != 2 {
			t.Errorf("%s returned %d rooms", path, len(rooms))
		}
	}

	resp = do(app, http.MethodGet, "/api/room-types/"+strconv.FormatUint(f.RoomTypeID, 10), "", nil)
	var rt model.RoomType
	decode(t, resp, &rt)
	if len(rt.Amenities) != 2 {
		t.Errorf("room type = %+v", rt)
	}

	for path, msg := range map[string]string{
		"/api/hotels/77":     "Hotel not found",
		"/api/rooms/77":      "Room not found",
		"/api/room-types/77": "Room type not found",
	} {
		resp = do(app, http.MethodGet, path, "", nil)
		if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), msg) {
			t.Errorf("%s: %d %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestHealthAndLogout(t *testing.T) {
	app, db, _ := buildTestApp(t)

	resp := do(app, http.MethodGet, "/healthz", "", nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "ok" {
		t.Errorf("healthz: %d %q", resp.Code, resp.Body.String())
	}

	resp = do(app, http.MethodPost, "/api/auth/logout", "", nil)
	if resp.Code != http.StatusNoContent {
		t.Errorf("logout: %d", resp.Code)
	}
	cleared := false
	for _, ck := range resp.Result().Cookies() {
		if ck.Name == cookieName && ck.Value == "" && (ck.MaxAge < 0 || ck.Expires.Before(time.Now())) {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not clear the session cookie")
	}

	_ = db.Close()
	resp = do(app, http.MethodGet, "/healthz", "", nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Errorf("healthz with closed db: %d", resp.Code)
	}
}
