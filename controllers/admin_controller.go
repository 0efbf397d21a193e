package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"hotelfood/pkg/resp"
	"hotelfood/services"
)

type OrderStatusRequest struct {
	Status string `form:"status" json:"status"`
}

type AdminController struct {
	Dashboard *services.DashboardService
	Menu      *services.MenuService
	Orders    *services.OrderService
}

func NewAdminController(dash *services.DashboardService, menu *services.MenuService, orders *services.OrderService) *AdminController {
	return &AdminController{Dashboard: dash, Menu: menu, Orders: orders}
}

// GET /dashboard/
func (h *AdminController) Index(c *gin.Context) {
	d, err := h.Dashboard.Load(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /dashboard/menu/add/
func (h *AdminController) MenuAddForm(c *gin.Context) {
	cats, err := h.Menu.Categories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, gin.H{"categories": cats, "action": "/dashboard/menu/add/"})
}

// POST /dashboard/menu/add/
func (h *AdminController) MenuAdd(c *gin.Context) {
	var in services.MenuItemIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Menu.Create(c.Request.Context(), &in)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.Created(c, item)
}

// GET /dashboard/menu/edit/:id/
func (h *AdminController) MenuEditForm(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	item, err := h.Menu.Get(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}
	cats, err := h.Menu.Categories(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, gin.H{
		"item":       item,
		"categories": cats,
		"action":     fmt.Sprintf("/dashboard/menu/edit/%d/", item.ID),
	})
}

// POST /dashboard/menu/edit/:id/
func (h *AdminController) MenuEdit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.MenuItemIn
	if err := c.ShouldBind(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	item, err := h.Menu.Update(c.Request.Context(), id, &in)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, item)
}

// POST /dashboard/menu/delete/:id/
func (h *AdminController) MenuDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Menu.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "deleted": true})
}

// POST /dashboard/order/update_status/:id/
func (h *AdminController) OrderUpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	status, err := h.Orders.AdminSetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "status": status})
}
