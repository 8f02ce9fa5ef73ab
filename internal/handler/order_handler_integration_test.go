package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/homeserve/backend/internal/handler"
	"github.com/homeserve/backend/internal/models"
	"github.com/homeserve/backend/internal/repository"
	"github.com/homeserve/backend/internal/service"
	"github.com/homeserve/backend/internal/testutil"
	"github.com/homeserve/backend/pkg/logger"
)

type OrderHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine

	customer *models.User
	provider *models.User
	listing  *models.Service
}

func (s *OrderHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	serviceRepo := repository.NewServiceRepository(s.testDB.DB)
	orderRepo := repository.NewOrderRepository(s.testDB.DB)
	notificationRepo := repository.NewNotificationRepository(s.testDB.DB)

	notificationService := service.NewNotificationService(notificationRepo, userRepo, nil)
	orderService := service.NewOrderService(orderRepo, serviceRepo, userRepo, notificationService)
	orderHandler := handler.NewOrderHandler(orderService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	s.router = gin.New()
	s.router.HandleMethodNotAllowed = true
	s.router.POST("/order/create", orderHandler.CreateOrder)
	s.router.POST("/book", orderHandler.CreateOrder)
	s.router.GET("/order/track/:user_id", orderHandler.TrackOrders)
	s.router.GET("/order/detail/:id", orderHandler.OrderDetail)
	s.router.POST("/order/update-status/:id", orderHandler.UpdateStatus)
	s.router.GET("/notification/:user_id", notificationHandler.ListNotifications)
	s.router.POST("/mark-read/:id", notificationHandler.MarkRead)
}

func (s *OrderHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *OrderHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.customer = testutil.CreateTestUser(s.T(), s.testDB.DB, "customer", "Customer123", false, "555-0001", "1 Elm Street")
	s.provider = testutil.CreateTestUser(s.T(), s.testDB.DB, "provider", "Provider123", true, "555-0002", "2 Oak Avenue")
	s.listing = testutil.CreateTestService(s.T(), s.testDB.DB, "Pipe Repair", models.CategoryPlumbing, "75.00", s.provider.ID)
}

func (s *OrderHandlerIntegrationTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *OrderHandlerIntegrationTestSuite) TestBookServiceCreatesOrderAndNotification() {
	w := s.doJSON(http.MethodPost, "/book", gin.H{
		"customer_id":    s.customer.ID,
		"service_id":     s.listing.ID,
		"scheduled_date": "2024-06-01",
		"notes":          "ring twice",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), true, response["success"])
	assert.NotZero(s.T(), response["order_id"])

	// The provider got exactly one booking notification
	var notifications []models.Notification
	s.testDB.DB.Where("user_id = ?", s.provider.ID).Find(&notifications)
	require.Len(s.T(), notifications, 1)
	assert.Equal(s.T(), "New Service Booking", notifications[0].Title)
	assert.Equal(s.T(), models.NotificationNewOrder, notifications[0].Type)
}

func (s *OrderHandlerIntegrationTestSuite) TestCreateOrderUnknownServiceEnvelope() {
	w := s.doJSON(http.MethodPost, "/order/create", gin.H{
		"customer_id":    s.customer.ID,
		"service_id":     99999,
		"scheduled_date": "2024-06-01",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), false, response["success"])
	assert.Equal(s.T(), "Service not found", response["message"])
}

func (s *OrderHandlerIntegrationTestSuite) TestTrackOrders() {
	testutil.CreateTestOrder(s.T(), s.testDB.DB, s.customer.ID, s.listing.ID, models.StatusPending)

	w := s.doJSON(http.MethodGet, fmt.Sprintf("/order/track/%d", s.customer.ID), nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response struct {
		Orders []map[string]interface{} `json:"orders"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(s.T(), response.Orders, 1)
	assert.Equal(s.T(), "Pipe Repair", response.Orders[0]["service"])
	assert.Equal(s.T(), "provider", response.Orders[0]["provider_name"])
	assert.Equal(s.T(), "555-0002", response.Orders[0]["provider_phone"])
}

func (s *OrderHandlerIntegrationTestSuite) TestOrderDetailNotFound() {
	w := s.doJSON(http.MethodGet, "/order/detail/99999", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *OrderHandlerIntegrationTestSuite) TestUpdateStatus() {
	order := testutil.CreateTestOrder(s.T(), s.testDB.DB, s.customer.ID, s.listing.ID, models.StatusPending)

	w := s.doJSON(http.MethodPost, fmt.Sprintf("/order/update-status/%d", order.ID), gin.H{
		"status":  "accepted",
		"user_id": s.provider.ID,
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), true, response["success"])
	assert.Equal(s.T(), "accepted", response["status"])
}

func (s *OrderHandlerIntegrationTestSuite) TestUpdateStatusInvalidValue() {
	order := testutil.CreateTestOrder(s.T(), s.testDB.DB, s.customer.ID, s.listing.ID, models.StatusPending)

	w := s.doJSON(http.MethodPost, fmt.Sprintf("/order/update-status/%d", order.ID), gin.H{
		"status": "shipped",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var stored models.Order
	s.testDB.DB.First(&stored, order.ID)
	assert.Equal(s.T(), models.StatusPending, stored.Status)
}

func (s *OrderHandlerIntegrationTestSuite) TestUpdateStatusUnknownOrder() {
	w := s.doJSON(http.MethodPost, "/order/update-status/99999", gin.H{"status": "accepted"})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *OrderHandlerIntegrationTestSuite) TestUpdateStatusWrongMethod() {
	w := s.doJSON(http.MethodGet, "/order/update-status/1", nil)
	assert.Equal(s.T(), http.StatusMethodNotAllowed, w.Code)
}

func (s *OrderHandlerIntegrationTestSuite) TestListNotificationsAndMarkRead() {
	order := testutil.CreateTestOrder(s.T(), s.testDB.DB, s.customer.ID, s.listing.ID, models.StatusPending)

	s.doJSON(http.MethodPost, fmt.Sprintf("/order/update-status/%d", order.ID), gin.H{
		"status":  "completed",
		"user_id": s.provider.ID,
	})

	w := s.doJSON(http.MethodGet, fmt.Sprintf("/notification/%d", s.customer.ID), nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response struct {
		Notifications []map[string]interface{} `json:"notifications"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(s.T(), response.Notifications, 1)
	assert.Equal(s.T(), "order_status", response.Notifications[0]["notification_type"])
	assert.Equal(s.T(), false, response.Notifications[0]["is_read"])

	id := uint(response.Notifications[0]["id"].(float64))
	w = s.doJSON(http.MethodPost, fmt.Sprintf("/mark-read/%d", id), nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var stored models.Notification
	s.testDB.DB.First(&stored, id)
	assert.True(s.T(), stored.IsRead)
}

func (s *OrderHandlerIntegrationTestSuite) TestMarkReadUnknown() {
	w := s.doJSON(http.MethodPost, "/mark-read/99999", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), false, response["success"])
	assert.Equal(s.T(), "Notification not found", response["message"])
}

func TestOrderHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerIntegrationTestSuite))
}
