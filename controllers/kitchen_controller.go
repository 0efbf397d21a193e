// controllers/kitchen_controller.go
package controllers

import (
	"github.com/gin-gonic/gin"

	"hotelfood/pkg/resp"
	"hotelfood/services"
)

type KitchenController struct {
	Orders *services.OrderService
}

func NewKitchenController(orders *services.OrderService) *KitchenController {
	return &KitchenController{Orders: orders}
}

// GET /kitchen/
func (ctl *KitchenController) List(c *gin.Context) {
	orders, err := ctl.Orders.ActiveOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

// POST /kitchen/update_status/:order_id/
func (ctl *KitchenController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "order_id")
	if !ok {
		return
	}
	status, err := ctl.Orders.KitchenAdvance(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	resp.OK(c, gin.H{"id": id, "status": status})
}
