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

type CatalogHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine

	provider *models.User
	other    *models.User
	customer *models.User
}

func (s *CatalogHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	serviceRepo := repository.NewServiceRepository(s.testDB.DB)
	orderRepo := repository.NewOrderRepository(s.testDB.DB)

	catalogService := service.NewCatalogService(serviceRepo, userRepo, orderRepo, service.PlaceholderScorer{})
	catalogHandler := handler.NewCatalogHandler(catalogService)

	s.router = gin.New()
	s.router.HandleMethodNotAllowed = true
	s.router.POST("/service/create", catalogHandler.CreateService)
	s.router.GET("/service/list", catalogHandler.ListServices)
	s.router.GET("/service/providers", catalogHandler.SearchProviders)
	s.router.GET("/service/detail/:id", catalogHandler.ServiceDetail)
	s.router.GET("/service/provider/:provider_id", catalogHandler.ProviderServices)
	s.router.PUT("/service/:id", catalogHandler.UpdateService)
	s.router.DELETE("/service/:id", catalogHandler.DeleteService)
}

func (s *CatalogHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *CatalogHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	s.provider = testutil.CreateTestUser(s.T(), s.testDB.DB, "plumber", "Plumber123", true, "555-1000", "3 River Lane")
	s.other = testutil.CreateTestUser(s.T(), s.testDB.DB, "cleaner", "Cleaner123", true, "555-2000", "9 Park Row")
	s.customer = testutil.CreateTestUser(s.T(), s.testDB.DB, "resident", "Resident123", false, "555-3000", "4 Main Street")
}

func (s *CatalogHandlerIntegrationTestSuite) doJSON(method, path string, body any) *httptest.ResponseRecorder {
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

func (s *CatalogHandlerIntegrationTestSuite) TestCreateAndListServices() {
	w := s.doJSON(http.MethodPost, "/service/create", gin.H{
		"title":       "Pipe Repair",
		"description": "Leak fixes",
		"category":    "plumbing",
		"price":       "75.00",
		"provider_id": s.provider.ID,
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var created map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(s.T(), true, created["success"])
	assert.NotZero(s.T(), created["service_id"])

	w = s.doJSON(http.MethodGet, "/service/list", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var listed struct {
		Services []map[string]interface{} `json:"services"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(s.T(), listed.Services, 1)
	assert.Equal(s.T(), "Pipe Repair", listed.Services[0]["title"])
	assert.Equal(s.T(), "75.00", listed.Services[0]["price"])
}

func (s *CatalogHandlerIntegrationTestSuite) TestCreateServiceNonProviderEnvelope() {
	w := s.doJSON(http.MethodPost, "/service/create", gin.H{
		"title":       "Pipe Repair",
		"price":       "75.00",
		"provider_id": s.customer.ID,
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), false, response["success"])
	assert.Equal(s.T(), "Invalid provider", response["message"])
}

func (s *CatalogHandlerIntegrationTestSuite) TestSearchProvidersRequiresServiceName() {
	w := s.doJSON(http.MethodGet, "/service/providers", nil)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *CatalogHandlerIntegrationTestSuite) TestSearchProviders() {
	testutil.CreateTestService(s.T(), s.testDB.DB, "Pipe Repair", models.CategoryPlumbing, "75.00", s.provider.ID)

	w := s.doJSON(http.MethodGet, "/service/providers?service=pipe", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response struct {
		Success   bool                     `json:"success"`
		Providers []map[string]interface{} `json:"providers"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(s.T(), response.Success)
	require.Len(s.T(), response.Providers, 1)
	assert.Equal(s.T(), "plumber", response.Providers[0]["name"])
}

func (s *CatalogHandlerIntegrationTestSuite) TestServiceDetailNotFound() {
	w := s.doJSON(http.MethodGet, "/service/detail/99999", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *CatalogHandlerIntegrationTestSuite) TestUpdateServiceByNonOwnerForbidden() {
	svc := testutil.CreateTestService(s.T(), s.testDB.DB, "Pipe Repair", models.CategoryPlumbing, "75.00", s.provider.ID)

	w := s.doJSON(http.MethodPut, fmt.Sprintf("/service/%d", svc.ID), gin.H{
		"provider_id": s.other.ID,
		"title":       "Hijacked",
	})

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *CatalogHandlerIntegrationTestSuite) TestUpdateServiceUnknownNotFound() {
	w := s.doJSON(http.MethodPut, "/service/99999", gin.H{
		"provider_id": s.provider.ID,
	})

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *CatalogHandlerIntegrationTestSuite) TestDeleteServiceWithActiveOrderConflict() {
	svc := testutil.CreateTestService(s.T(), s.testDB.DB, "Pipe Repair", models.CategoryPlumbing, "75.00", s.provider.ID)
	testutil.CreateTestOrder(s.T(), s.testDB.DB, s.customer.ID, svc.ID, models.StatusPending)

	w := s.doJSON(http.MethodDelete, fmt.Sprintf("/service/%d", svc.ID), gin.H{
		"provider_id": s.provider.ID,
	})

	assert.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *CatalogHandlerIntegrationTestSuite) TestDeleteService() {
	svc := testutil.CreateTestService(s.T(), s.testDB.DB, "Pipe Repair", models.CategoryPlumbing, "75.00", s.provider.ID)

	w := s.doJSON(http.MethodDelete, fmt.Sprintf("/service/%d", svc.ID), gin.H{
		"provider_id": s.provider.ID,
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var count int64
	s.testDB.DB.Model(&models.Service{}).Where("id = ?", svc.ID).Count(&count)
	assert.Equal(s.T(), int64(0), count)
}

func TestCatalogHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerIntegrationTestSuite))
}
