// Package order (api) exposes the order use cases over HTTP. Controllers
// parse and delegate; no business logic lives here.
package order

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ddd-order/api/response"
	apporder "ddd-order/application/order"
	apperrors "ddd-order/pkg/errors"
)

type Controller struct {
	service *apporder.ApplicationService
	logger  *zap.Logger
}

func NewController(service *apporder.ApplicationService, logger *zap.Logger) *Controller {
	return &Controller{service: service, logger: logger}
}

// RegisterRoutes mounts the order endpoints on the given group.
func (ctl *Controller) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", ctl.placeOrder)
		orders.GET("/:id", ctl.getOrder)
		orders.GET("/customer/:customerId", ctl.getCustomerOrders)
		orders.POST("/:id/confirm", ctl.confirmOrder)
		orders.POST("/:id/ship", ctl.shipOrder)
		orders.POST("/:id/cancel", ctl.cancelOrder)
		orders.DELETE("/:id", ctl.deleteOrder)
	}
}

func (ctl *Controller) placeOrder(c *gin.Context) {
	var req apporder.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, ctl.logger, apperrors.Wrap(apperrors.CodeValidation, err.Error(), err))
		return
	}

	resp, err := ctl.service.PlaceOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.Created(c, resp)
}

func (ctl *Controller) getOrder(c *gin.Context) {
	resp, err := ctl.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.OK(c, resp)
}

func (ctl *Controller) getCustomerOrders(c *gin.Context) {
	resp, err := ctl.service.GetCustomerOrders(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.OK(c, resp)
}

func (ctl *Controller) confirmOrder(c *gin.Context) {
	resp, err := ctl.service.ConfirmOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.OK(c, resp)
}

func (ctl *Controller) shipOrder(c *gin.Context) {
	resp, err := ctl.service.ShipOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.OK(c, resp)
}

func (ctl *Controller) cancelOrder(c *gin.Context) {
	// The body is optional; an absent body means no reason given.
	var req apporder.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, ctl.logger, apperrors.Wrap(apperrors.CodeValidation, err.Error(), err))
		return
	}

	resp, err := ctl.service.CancelOrder(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.OK(c, resp)
}

func (ctl *Controller) deleteOrder(c *gin.Context) {
	if err := ctl.service.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, ctl.logger, err)
		return
	}
	response.NoContent(c)
}
