package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"arts-admin/backend/internal/dto"
	"arts-admin/backend/internal/service"
	"arts-admin/backend/pkg/response"
)

// OrderHandler 报名订单模块 HTTP 处理器
type OrderHandler struct {
	orderSvc service.OrderService
}

// NewOrderHandler 创建 OrderHandler
func NewOrderHandler(orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc}
}

// Create 创建报名订单
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.orderSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID 订单详情
// GET /api/v1/orders/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	result, err := h.orderSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, result)
}

// List 订单列表
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	list, total, err := h.orderSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update 更新订单
// PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "参数校验失败")
		return
	}

	result, err := h.orderSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除订单
// DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleOrderError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *OrderHandler) handleOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, response.CodeOrderNotFound, "订单不存在")
	case errors.Is(err, service.ErrOrderStudentInvalid):
		response.BadRequest(c, response.CodeOrderRefBad, "学员不存在")
	case errors.Is(err, service.ErrOrderCourseInvalid):
		response.BadRequest(c, response.CodeOrderRefBad, "课程不存在")
	case errors.Is(err, service.ErrOrderDuplicate):
		response.BadRequest(c, response.CodeOrderDuplicate, "该学员已报名此课程")
	case errors.Is(err, service.ErrOrderPayTimeInvalid):
		response.BadRequest(c, response.CodeInvalidParams, "支付时间格式无效")
	default:
		response.InternalError(c)
	}
}
