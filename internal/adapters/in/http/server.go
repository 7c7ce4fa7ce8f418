package http

import (
	"context"
	"log/slog"
	"net/http"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type SubmitOrderHandler interface {
	Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (commands.SubmitOrderResult, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitOrderHandler SubmitOrderHandler

	// Query handlers
	listOrdersHandler ListOrdersHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	submitOrderHandler SubmitOrderHandler,
	listOrdersHandler ListOrdersHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		submitOrderHandler: submitOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		logger:             logger.With("component", "http-server"),
	}
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// SubmitOrder handles POST /orders - accepts an order for the calling tenant.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.NewOrder
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSubmitOrderCommand(
		principal,
		string(body.CutType),
		body.Weight,
		body.PricePerUnit,
		body.Quantity,
		body.DeliveryCharge,
		order.Delivery{
			Address:      deref(body.Location),
			PostalCode:   deref(body.PostalCode),
			Instructions: deref(body.DeliveryInstructions),
		},
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.submitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.OrderAccepted{
		OrderId:  result.OrderID.Bytes(),
		Subtotal: result.Subtotal.String(),
		Delivery: result.DeliveryCharge.String(),
		Total:    result.Total.String(),
	})
}

// ListOrders handles GET /orders - the caller's orders, newest first.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	principal, err := PrincipalFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var status string
	if params.Status != nil {
		status = string(*params.Status)
	}

	query, err := queries.NewListOrdersQuery(principal.TenantID(), status)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := servers.OrderList{
		Count:  result.Count,
		Orders: make([]servers.Order, len(result.Orders)),
	}
	for i, o := range result.Orders {
		response.Orders[i] = servers.Order{
			OrderId:              o.OrderID.Bytes(),
			Status:               servers.OrderStatus(o.Status),
			CutType:              servers.CutType(o.CutType),
			Weight:               o.Weight.String(),
			PricePerUnit:         o.PricePerUnit.String(),
			Quantity:             o.Quantity,
			Subtotal:             o.Subtotal.String(),
			DeliveryCharge:       o.DeliveryCharge.String(),
			Total:                o.Total.String(),
			OrderedAt:            o.OrderedAt,
			Email:                o.Email,
			Location:             optional(o.DeliveryAddress),
			PostalCode:           optional(o.PostalCode),
			DeliveryInstructions: optional(o.DeliveryInstructions),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
