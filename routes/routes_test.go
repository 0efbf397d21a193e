package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotelfood/configs"
	"hotelfood/entity"
	"hotelfood/middlewares"
	"hotelfood/pkg/cartstore"
	"hotelfood/pkg/logger"
	"hotelfood/pkg/metrics"
	"hotelfood/pkg/testutil"
)

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type harness struct {
	t     *testing.T
	db    *gorm.DB
	r     *gin.Engine
	carts *cartstore.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	carts := cartstore.NewMemoryStore(time.Hour)
	cfg := &configs.Config{
		JWTSecret:       "route-secret",
		JWTTTL:          time.Hour,
		LoginRatePerMin: 1000,
		LoginBurst:      1000,
		CORSOrigins:     []string{"*"},
	}
	r := NewRouter(Deps{
		DB:      db,
		Config:  cfg,
		Carts:   carts,
		Metrics: metrics.New(),
		Log:     logger.Discard(),
	})
	return &harness{t: t, db: db, r: r, carts: carts}
}

// do sends a form post (or GET when form is nil) with the session cookie.
func (h *harness) do(method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.r.ServeHTTP(rec, req)
	return rec
}

func (h *harness) decode(rec *httptest.ResponseRecorder, out any) envelope {
	h.t.Helper()
	var env envelope
	require.NoError(h.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if out != nil {
		require.NoError(h.t, json.Unmarshal(env.Data, out))
	}
	return env
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middlewares.CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", middlewares.CookieName)
	return nil
}

func (h *harness) customer() *http.Cookie {
	h.t.Helper()
	rec := h.do(http.MethodPost, "/", url.Values{"role": {"customer"}}, nil)
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(h.t, rec)
}

func (h *harness) staff(username, role string) *http.Cookie {
	h.t.Helper()
	_, err := configs.UpsertStaff(h.db, username, "pw-"+username, role)
	require.NoError(h.t, err)

	rec := h.do(http.MethodPost, "/admin_login", url.Values{"username": {username}, "password": {"pw-" + username}}, nil)
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(h.t, rec)
}

func (h *harness) status(id uint) entity.OrderStatus {
	h.t.Helper()
	var o entity.Order
	require.NoError(h.t, h.db.First(&o, id).Error)
	return o.Status
}

type cartOut struct {
	Items []entity.CartEntry `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

func TestOrderingFlow(t *testing.T) {
	h := newHarness(t)
	a := testutil.SeedItem(t, h.db, "Main Course", "Paneer Butter Masala", "100.00", true)
	b := testutil.SeedItem(t, h.db, "Appetizers", "Samosa", "50.00", true)

	cust := h.customer()

	for _, id := range []uint{a.ID, a.ID, b.ID} {
		rec := h.do(http.MethodPost, fmt.Sprintf("/customer/add_to_cart/%d/", id), url.Values{}, cust)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := h.do(http.MethodPost, fmt.Sprintf("/customer/update_cart/%d/", b.ID), url.Values{"action": {"increment"}}, cust)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = h.do(http.MethodPost, fmt.Sprintf("/customer/update_cart/%d/", b.ID), url.Values{"action": {"decrement"}}, cust)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart cartOut
	h.decode(rec, &cart)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(250)), "cart total %s", cart.Total)

	rec = h.do(http.MethodPost, "/customer/place_order/", url.Values{"table_no": {"5"}}, cust)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var placed struct {
		Order struct {
			ID    uint            `json:"id"`
			Total decimal.Decimal `json:"total"`
		} `json:"order"`
		Next string `json:"next"`
	}
	h.decode(rec, &placed)
	orderID := placed.Order.ID
	require.NotZero(t, orderID)
	assert.True(t, placed.Order.Total.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, fmt.Sprintf("/customer/?order_placed=%d", orderID), placed.Next)

	rec = h.do(http.MethodGet, placed.Next, nil, cust)
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Menu struct {
			Items []entity.MenuItem  `json:"items"`
			Cart  []entity.CartEntry `json:"cart"`
		} `json:"menu"`
		OrderPlaced uint `json:"orderPlaced"`
	}
	h.decode(rec, &page)
	assert.Empty(t, page.Menu.Cart)
	assert.Len(t, page.Menu.Items, 2)
	assert.Equal(t, orderID, page.OrderPlaced)

	// kitchen moves it along
	kitchen := h.staff("chef", entity.RoleKitchen)
	rec = h.do(http.MethodGet, "/kitchen/", nil, kitchen)
	require.Equal(t, http.StatusOK, rec.Code)
	var board struct {
		Orders []entity.Order `json:"orders"`
	}
	h.decode(rec, &board)
	require.Len(t, board.Orders, 1)
	assert.Len(t, board.Orders[0].Items, 2)
	assert.NotEmpty(t, board.Orders[0].Items[0].MenuItem.Name)

	path := fmt.Sprintf("/kitchen/update_status/%d/", orderID)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, path, url.Values{}, kitchen).Code)
	assert.Equal(t, entity.StatusPreparing, h.status(orderID))
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, path, url.Values{}, kitchen).Code)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, path, url.Values{}, kitchen).Code)
	assert.Equal(t, entity.StatusReady, h.status(orderID))

	// admin delivers and sees the sale
	admin := h.staff("boss", entity.RoleAdmin)
	rec = h.do(http.MethodPost, fmt.Sprintf("/dashboard/order/update_status/%d/", orderID), url.Values{"status": {"Delivered"}}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(http.MethodGet, "/dashboard/", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var dash struct {
		TotalSales  decimal.Decimal `json:"totalSales"`
		TotalOrders int64           `json:"totalOrders"`
	}
	h.decode(rec, &dash)
	assert.True(t, dash.TotalSales.Equal(decimal.NewFromInt(250)), "sales %s", dash.TotalSales)
	assert.Equal(t, int64(1), dash.TotalOrders)

	rec = h.do(http.MethodGet, "/kitchen/", nil, kitchen)
	h.decode(rec, &board)
	assert.Empty(t, board.Orders)
}

func TestRoleGateRedirectsWithoutMutation(t *testing.T) {
	h := newHarness(t)
	a := testutil.SeedItem(t, h.db, "Desserts", "Gulab Jamun", "80.00", true)
	o := &entity.Order{Status: entity.StatusPending, Total: decimal.NewFromInt(80)}
	require.NoError(t, h.db.Create(o).Error)

	cust := h.customer()
	kitchen := h.staff("chef", entity.RoleKitchen)

	cases := []struct {
		name   string
		path   string
		form   url.Values
		cookie *http.Cookie
	}{
		{"anonymous add to cart", fmt.Sprintf("/customer/add_to_cart/%d/", a.ID), url.Values{}, nil},
		{"kitchen add to cart", fmt.Sprintf("/customer/add_to_cart/%d/", a.ID), url.Values{}, kitchen},
		{"customer advances order", fmt.Sprintf("/kitchen/update_status/%d/", o.ID), url.Values{}, cust},
		{"kitchen overrides status", fmt.Sprintf("/dashboard/order/update_status/%d/", o.ID), url.Values{"status": {"Delivered"}}, kitchen},
		{"customer deletes dish", fmt.Sprintf("/dashboard/menu/delete/%d/", a.ID), url.Values{}, cust},
		{"bogus cookie", fmt.Sprintf("/kitchen/update_status/%d/", o.ID), url.Values{}, &http.Cookie{Name: middlewares.CookieName, Value: "x.y.z"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := h.do(http.MethodPost, tc.path, tc.form, tc.cookie)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/", rec.Header().Get("Location"))
		})
	}

	assert.Equal(t, entity.StatusPending, h.status(o.ID))
	var n int64
	require.NoError(t, h.db.Model(&entity.MenuItem{}).Where("id = ?", a.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	rec := h.do(http.MethodGet, "/customer/", nil, cust)
	var page struct {
		Menu struct {
			Cart []entity.CartEntry `json:"cart"`
		} `json:"menu"`
	}
	h.decode(rec, &page)
	assert.Empty(t, page.Menu.Cart)
}

func TestSelectRole(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/", url.Values{"role": {"admin"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin_login", rec.Header().Get("Location"))
	assert.Empty(t, rec.Result().Cookies())

	rec = h.do(http.MethodPost, "/", url.Values{"role": {"kitchen"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = h.do(http.MethodPost, "/", url.Values{"role": {"chef"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	before := h.carts.Len()
	h.customer()
	assert.Equal(t, before+1, h.carts.Len())
}

func TestStaffLoginRejectsBadPassword(t *testing.T) {
	h := newHarness(t)
	h.staff("chef", entity.RoleKitchen)

	rec := h.do(http.MethodPost, "/admin_login", url.Values{"username": {"chef"}, "password": {"nope"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := h.decode(rec, nil)
	assert.False(t, env.OK)
}

func TestLogoutClearsCart(t *testing.T) {
	h := newHarness(t)
	cust := h.customer()
	require.Equal(t, 1, h.carts.Len())

	rec := h.do(http.MethodGet, "/logout/", nil, cust)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, h.carts.Len())

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
}

func TestCustomerErrors(t *testing.T) {
	h := newHarness(t)
	off := testutil.SeedItem(t, h.db, "Desserts", "Kulfi", "60.00", false)
	cust := h.customer()

	rec := h.do(http.MethodPost, "/customer/place_order/", url.Values{}, cust)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cart is empty", h.decode(rec, nil).Error)
	var n int64
	require.NoError(t, h.db.Model(&entity.Order{}).Count(&n).Error)
	assert.Zero(t, n)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/customer/add_to_cart/999/", url.Values{}, cust).Code)
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, fmt.Sprintf("/customer/add_to_cart/%d/", off.ID), url.Values{}, cust).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/customer/add_to_cart/abc/", url.Values{}, cust).Code)
	assert.Equal(t, http.StatusBadRequest,
		h.do(http.MethodPost, fmt.Sprintf("/customer/update_cart/%d/", off.ID), url.Values{"action": {"explode"}}, cust).Code)
}

func TestPlaceOrderTableNumber(t *testing.T) {
	h := newHarness(t)
	dish := testutil.SeedItem(t, h.db, "Beverages", "Masala Chai", "40.00", true)
	cust := h.customer()

	place := func(form url.Values) *httptest.ResponseRecorder {
		t.Helper()
		rec := h.do(http.MethodPost, fmt.Sprintf("/customer/add_to_cart/%d/", dish.ID), url.Values{}, cust)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return h.do(http.MethodPost, "/customer/place_order/", form, cust)
	}
	lastOrder := func() entity.Order {
		t.Helper()
		var o entity.Order
		require.NoError(t, h.db.Order("id DESC").First(&o).Error)
		return o
	}

	// empty input from an HTML form means no table
	for _, blank := range []string{"", "   "} {
		rec := place(url.Values{"table_no": {blank}})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Nil(t, lastOrder().TableNo)
	}

	rec := place(url.Values{"table_no": {" 12 "}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, lastOrder().TableNo)
	assert.Equal(t, 12, *lastOrder().TableNo)

	for _, bad := range []string{"0", "-3", "twelve"} {
		rec := place(url.Values{"table_no": {bad}})
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}

	req := httptest.NewRequest(http.MethodPost, "/customer/place_order/", strings.NewReader(`{"tableNo":7}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cust)
	rec = httptest.NewRecorder()
	h.r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, lastOrder().TableNo)
	assert.Equal(t, 7, *lastOrder().TableNo)

	var n int64
	require.NoError(t, h.db.Model(&entity.Order{}).Count(&n).Error)
	assert.Equal(t, int64(4), n)
}

func TestAdminMenuManagement(t *testing.T) {
	h := newHarness(t)
	admin := h.staff("boss", entity.RoleAdmin)

	rec := h.do(http.MethodPost, "/dashboard/menu/add/", url.Values{
		"name": {"Veg Biryani"}, "category": {"Main Course"}, "price": {"220.50"},
		"description": {"Fragrant basmati rice"}, "available": {"on"},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item entity.MenuItem
	h.decode(rec, &item)
	assert.True(t, item.Available)
	assert.Equal(t, entity.DefaultMenuImage, item.Image)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("220.50")))

	rec = h.do(http.MethodPost, "/dashboard/menu/add/", url.Values{
		"name": {"Bad"}, "category": {"Main Course"}, "price": {"-5"},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodGet, fmt.Sprintf("/dashboard/menu/edit/%d/", item.ID), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var form struct {
		Action     string            `json:"action"`
		Categories []entity.Category `json:"categories"`
	}
	h.decode(rec, &form)
	assert.Equal(t, fmt.Sprintf("/dashboard/menu/edit/%d/", item.ID), form.Action)
	assert.Len(t, form.Categories, 1)

	rec = h.do(http.MethodPost, fmt.Sprintf("/dashboard/menu/edit/%d/", item.ID), url.Values{
		"name": {"Veg Biryani"}, "category": {"Rice"}, "price": {"240"},
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h.decode(rec, &item)
	assert.False(t, item.Available, "unchecked box clears availability")
	assert.Equal(t, "Rice", item.Category.Name)

	rec = h.do(http.MethodPost, fmt.Sprintf("/dashboard/order/update_status/%d/", 1), url.Values{"status": {"Lost"}}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, fmt.Sprintf("/dashboard/menu/delete/%d/", item.ID), url.Values{}, admin).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, fmt.Sprintf("/dashboard/menu/delete/%d/", item.ID), url.Values{}, admin).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, fmt.Sprintf("/dashboard/menu/edit/%d/", item.ID), nil, admin).Code)
}

func TestHealthAndMetrics(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/health", nil, nil).Code)

	rec := h.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
