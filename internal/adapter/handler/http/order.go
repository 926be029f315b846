package http

import (
	"net/http"
	"time"

	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/aliantdev/orderflow/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type OrderRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type OrderResp struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      jsonDecimal `json:"amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func newOrderResp(o *domain.Order) OrderResp {
	return OrderResp{
		ID:          o.ID,
		Description: o.Description,
		Amount:      jsonDecimal(o.Amount),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderReq := OrderRequest{}
	err := ctx.ShouldBindBodyWithJSON(&orderReq)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	amount, err := decimal.NewFromFloat64(orderReq.Amount)
	if err != nil {
		oh.handleValidationError(ctx, domain.ErrBadRequest)
		return
	}

	order, err := oh.service.CreateOrder(ctx, userID, orderReq.Description, amount)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := newOrderResp(order)
	oh.handleSuccessWithStatus(ctx, resp, http.StatusCreated)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrder(ctx, userID, ctx.Param("order"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccess(ctx, newOrderResp(order))
}

func (oh *OrderHandler) ListOrdersByOwner(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	status := domain.OrderStatus(ctx.Query("status"))
	if status != "" &&
		status != domain.OrderStatusPending &&
		status != domain.OrderStatusProcessed {
		oh.handleError(ctx, domain.ErrOrderBadStatus)
		return
	}

	list, err := oh.service.GetOrdersByOwner(ctx, userID, status)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, newOrderResp(o))
	}

	oh.handleSuccess(ctx, result)
}
