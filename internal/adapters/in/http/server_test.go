package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSubmitOrderHandler struct {
	mock.Mock
}

func (m *MockSubmitOrderHandler) Handle(ctx context.Context, cmd commands.SubmitOrderCommand) (commands.SubmitOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SubmitOrderResult), args.Error(1)
}

type MockListOrdersHandler struct {
	mock.Mock
}

func (m *MockListOrdersHandler) Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.ListOrdersResponse), args.Error(1)
}

const validBody = `{
	"cutType": "CURRY_CUT",
	"weight": 1.5,
	"pricePerUnit": 299.99,
	"quantity": 2,
	"deliveryCharge": 0,
	"location": "12 Main St",
	"postalCode": "339914",
	"deliveryInstructions": "ring twice"
}`

type ServerSuite struct {
	suite.Suite

	submit *MockSubmitOrderHandler
	list   *MockListOrdersHandler
	router *echo.Echo
	token  string
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.submit = new(MockSubmitOrderHandler)
	s.list = new(MockListOrdersHandler)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth, err := orderhttp.NewJWTAuthenticator(testSecret, testIssuer)
	s.Require().NoError(err)

	s.router, err = orderhttp.NewRouter(orderhttp.NewServer(s.submit, s.list, logger), auth, logger)
	s.Require().NoError(err)
	s.token = validToken(s.T())
}

func (s *ServerSuite) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decodeError(rec *httptest.ResponseRecorder) servers.Error {
	var e servers.Error
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func (s *ServerSuite) TestSubmitOrder_Created() {
	orderID := kernel.NewUUID()
	s.submit.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SubmitOrderCommand) bool {
		p := cmd.Pricing()
		return cmd.Principal().TenantID().String() == "tenant-1" &&
			cmd.CutType() == order.CutCurry &&
			p.Weight().Equal(decimal.RequireFromString("1.5")) &&
			p.PricePerUnit().Equal(decimal.RequireFromString("299.99")) &&
			p.Quantity() == 2 &&
			cmd.Delivery().Address == "12 Main St" &&
			cmd.Delivery().Instructions == "ring twice"
	})).Return(commands.SubmitOrderResult{
		OrderID:        orderID,
		Status:         order.PendingPayment,
		Subtotal:       decimal.RequireFromString("899.97"),
		DeliveryCharge: decimal.Zero,
		Total:          decimal.RequireFromString("899.97"),
	}, nil).Once()

	rec := s.do(http.MethodPost, "/orders", validBody, s.token)

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.JSONEq(`{"orderId":"`+orderID.String()+`","subtotal":"899.97","delivery":"0","total":"899.97"}`, rec.Body.String())
	s.submit.AssertExpectations(s.T())
}

func (s *ServerSuite) TestSubmitOrder_Unauthenticated() {
	rec := s.do(http.MethodPost, "/orders", validBody, "")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
	s.submit.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerSuite) TestSubmitOrder_RejectedBeforeAnyWrite() {
	tests := map[string]string{
		"unknown cut type":  strings.Replace(validBody, "CURRY_CUT", "DRAGON_WING", 1),
		"missing weight":    `{"cutType":"WHOLE","pricePerUnit":10,"quantity":1,"deliveryCharge":0}`,
		"negative weight":   strings.Replace(validBody, `"weight": 1.5`, `"weight": -1.5`, 1),
		"zero quantity":     strings.Replace(validBody, `"quantity": 2`, `"quantity": 0`, 1),
		"fraction quantity": strings.Replace(validBody, `"quantity": 2`, `"quantity": 1.5`, 1),
		"malformed json":    `{"cutType":`,
		"long postal code":  strings.Replace(validBody, `"339914"`, `"`+strings.Repeat("9", 17)+`"`, 1),
	}

	for name, body := range tests {
		s.Run(name, func() {
			rec := s.do(http.MethodPost, "/orders", body, s.token)

			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
			s.Equal(http.StatusBadRequest, s.decodeError(rec).Code)
		})
	}
	s.submit.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerSuite) TestSubmitOrder_FailuresAreGeneric() {
	tests := map[string]error{
		"storage":        errs.NewStorageErrorWithCause("add order", errors.New("pq: connection refused")),
		"workflow start": errs.NewExecutionFailureErrorWithCause("start fulfillment", errors.New("frontend down")),
		"unexpected":     errors.New("boom"),
	}

	for name, failure := range tests {
		s.Run(name, func() {
			s.SetupTest()
			s.submit.On("Handle", mock.Anything, mock.Anything).Return(commands.SubmitOrderResult{}, failure).Once()

			rec := s.do(http.MethodPost, "/orders", validBody, s.token)

			s.Equal(http.StatusInternalServerError, rec.Code)
			body := s.decodeError(rec)
			s.Equal("Internal server error", body.Message)
			s.NotContains(rec.Body.String(), "pq:")
		})
	}
}

func (s *ServerSuite) TestListOrders_FilteredByStatus() {
	views := []queries.OrderView{
		{
			OrderID:        kernel.NewUUID(),
			Status:         order.Paid,
			CutType:        order.CutWhole,
			Weight:         decimal.RequireFromString("2"),
			PricePerUnit:   decimal.RequireFromString("100"),
			Quantity:       1,
			DeliveryCharge: decimal.RequireFromString("25"),
			Subtotal:       decimal.RequireFromString("200"),
			Total:          decimal.RequireFromString("225"),
			OrderedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Email:          "buyer@example.com",
		},
	}
	s.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		status, ok := q.Status()
		return ok && status == order.Paid && q.TenantID().String() == "tenant-1"
	})).Return(queries.ListOrdersResponse{Count: len(views), Orders: views}, nil).Once()

	rec := s.do(http.MethodGet, "/orders?status=PAID", "", s.token)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var body servers.OrderList
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(1, body.Count)
	s.Len(body.Orders, body.Count)
	s.Equal(servers.PAID, body.Orders[0].Status)
	s.Equal("225", body.Orders[0].Total)
	s.Nil(body.Orders[0].Location)
}

func (s *ServerSuite) TestListOrders_WithoutFilter() {
	s.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		_, filtered := q.Status()
		return !filtered
	})).Return(queries.ListOrdersResponse{Orders: []queries.OrderView{}}, nil).Once()

	rec := s.do(http.MethodGet, "/orders", "", s.token)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"count":0,"orders":[]}`, rec.Body.String())
}

func (s *ServerSuite) TestListOrders_UnknownStatus() {
	rec := s.do(http.MethodGet, "/orders?status=SHIPPED", "", s.token)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.list.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerSuite) TestListOrders_Unauthenticated() {
	rec := s.do(http.MethodGet, "/orders", "", "not-a-jwt")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.list.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerSuite) TestListOrders_StoreFailure() {
	s.list.On("Handle", mock.Anything, mock.Anything).
		Return(queries.ListOrdersResponse{}, errs.NewStorageErrorWithCause("list orders", errors.New("timeout"))).Once()

	rec := s.do(http.MethodGet, "/orders", "", s.token)

	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *ServerSuite) TestPublicRoutes() {
	rec := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())

	rec = s.do(http.MethodGet, "/openapi.json", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"SubmitOrder"`)
}

func (s *ServerSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/nope", "", "")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(http.StatusNotFound, s.decodeError(rec).Code)
}
