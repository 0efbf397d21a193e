package controllers

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hotelfood/pkg/resp"
	"hotelfood/repository"
	"hotelfood/services"
	"hotelfood/utils"
)

type UpdateCartRequest struct {
	Action string `form:"action" json:"action" binding:"required"`
}
type PlaceOrderRequest struct {
	TableNo      *int   `form:"-" json:"tableNo"`
	// form input ส่ง "" มาเมื่อไม่กรอกเลขโต๊ะ
	TableNoField string `form:"table_no" json:"-"`
}

// tableNo returns nil when no table number was given.
func (r *PlaceOrderRequest) tableNo() (*int, error) {
	if r.TableNo != nil {
		return r.TableNo, nil
	}
	v := strings.TrimSpace(r.TableNoField)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("table number: %w", services.ErrInvalidInput)
	}
	return &n, nil
}

type CustomerController struct {
	Menu   *services.MenuService
	Carts  *services.CartService
	Orders *services.OrderService
}

func NewCustomerController(menu *services.MenuService, carts *services.CartService, orders *services.OrderService) *CustomerController {
	return &CustomerController{Menu: menu, Carts: carts, Orders: orders}
}

// GET /customer/?category=&search=&order_placed=
func (h *CustomerController) Index(c *gin.Context) {
	ctx := c.Request.Context()

	cart, err := h.Carts.Get(ctx, utils.CurrentSessionID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	filter := repository.MenuFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	page, err := h.Menu.CustomerListing(ctx, filter, cart)
	if err != nil {
		handleError(c, err)
		return
	}

	out := gin.H{"menu": page}
	if v := c.Query("order_placed"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			out["orderPlaced"] = id
		} else {
			out["orderPlaced"] = v
		}
	}
	resp.OK(c, out)
}

// POST /customer/add_to_cart/:id/
func (h *CustomerController) AddToCart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cart, err := h.Carts.Add(c.Request.Context(), utils.CurrentSessionID(c), id)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /customer/update_cart/:id/
func (h *CustomerController) UpdateCart(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateCartRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cart, err := h.Carts.Update(c.Request.Context(), utils.CurrentSessionID(c), id, req.Action)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /customer/place_order/
func (h *CustomerController) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	// body เป็น optional ทั้งก้อน
	if err := c.ShouldBind(&req); err != nil && !errors.Is(err, io.EOF) {
		resp.BadRequest(c, err.Error())
		return
	}

	tableNo, err := req.tableNo()
	if err != nil {
		handleError(c, err)
		return
	}

	out, err := h.Orders.PlaceOrder(c.Request.Context(), utils.CurrentSessionID(c), tableNo)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.Created(c, gin.H{
		"order": out,
		"next":  "/customer/?order_placed=" + strconv.FormatUint(uint64(out.ID), 10),
	})
}
