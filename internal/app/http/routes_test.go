package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/manmeet1049/bizzler/internal/domain/business"
	"github.com/manmeet1049/bizzler/internal/domain/users"
	"github.com/manmeet1049/bizzler/internal/service"
	"github.com/manmeet1049/bizzler/internal/testutil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

type RoutesSuite struct {
	testutil.BaseServiceTestSuite
	engine *gin.Engine
}

func TestRoutes(t *testing.T) {
	suite.Run(t, new(RoutesSuite))
}

func (s *RoutesSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	params := service.ServiceParams{
		Store:   s.GetStore(),
		Logger:  s.GetLogger(),
		Config:  s.GetConfig(),
		Metrics: s.GetMetrics(),
		Clock:   s.Clock(),
	}
	s.engine = gin.New()
	RegisterRoutes(s.engine, params, prometheus.NewRegistry())
}

func (s *RoutesSuite) token(u *users.User) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(s.GetConfig().JWTSecret))
	s.Require().NoError(err)
	return signed
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func (s *RoutesSuite) do(method, path string, u *users.User, businessID uint, body interface{}) (int, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if u != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(u))
	}
	if businessID != 0 {
		req.Header.Set("X-Business-ID", fmt.Sprint(businessID))
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func (s *RoutesSuite) TestHealth() {
	code, _ := s.do(http.MethodGet, "/health", nil, 0, nil)
	s.Equal(http.StatusOK, code)
}

func (s *RoutesSuite) TestRequiresToken() {
	code, env := s.do(http.MethodGet, "/plans", nil, s.Business.ID, nil)
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("Authorization header missing.", env.Message)
}

func (s *RoutesSuite) TestRequiresBusinessHeader() {
	code, env := s.do(http.MethodGet, "/plans", s.Owner, 0, nil)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Missing fields: X-Business-ID", env.Message)
}

func (s *RoutesSuite) TestProductBusinessIsRejected() {
	shop := s.CreateBusiness(s.Owner, "Shop", business.TypeProduct)

	code, env := s.do(http.MethodGet, "/plans", s.Owner, shop.ID, nil)
	s.Equal(http.StatusForbidden, code)
	s.Equal("This business is not subscription based.", env.Message)
}

func (s *RoutesSuite) TestStaffCannotAddPlans() {
	staff := s.CreateUser("staff@example.com")
	code, _ := s.do(http.MethodPost, "/staff", s.Owner, s.Business.ID, map[string]string{"email": staff.Email})
	s.Require().Equal(http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/plans", staff, s.Business.ID, map[string]interface{}{
		"name": "Gold", "duration_count": 1, "duration_unit": "M", "price": "10",
	})
	s.Equal(http.StatusForbidden, code)
	s.Equal("Only the business owner can do this.", env.Message)

	code, _ = s.do(http.MethodGet, "/plans", staff, s.Business.ID, nil)
	s.Equal(http.StatusOK, code)
}

func (s *RoutesSuite) TestOutsiderIsRejected() {
	outsider := s.CreateUser("outsider@example.com")

	code, _ := s.do(http.MethodGet, "/plans", outsider, s.Business.ID, nil)
	s.Equal(http.StatusForbidden, code)
}

func (s *RoutesSuite) TestSubscriptionFlow() {
	code, env := s.do(http.MethodPost, "/plans", s.Owner, s.Business.ID, map[string]interface{}{
		"name": "Monthly", "duration_count": 1, "duration_unit": "monthly", "price": 30.5,
	})
	s.Require().Equal(http.StatusCreated, code, env.Message)
	var added struct {
		ID uint `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &added))

	// same name again returns the existing plan
	code, env = s.do(http.MethodPost, "/plans", s.Owner, s.Business.ID, map[string]interface{}{
		"name": "Monthly", "duration_count": 2, "duration_unit": "D", "price": 1,
	})
	s.Equal(http.StatusConflict, code)
	var existing struct {
		ID       uint   `json:"id"`
		Duration string `json:"duration"`
		Price    string `json:"price"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &existing))
	s.Equal(added.ID, existing.ID)
	s.Equal("1 M", existing.Duration)
	s.Equal("30.50", existing.Price)

	code, env = s.do(http.MethodPost, "/subscriptions", s.Owner, s.Business.ID, map[string]interface{}{
		"plan": added.ID, "name": "Alex", "email": "alex@example.com",
	})
	s.Require().Equal(http.StatusCreated, code, env.Message)
	var first struct {
		Subscriber struct {
			ID uint `json:"id"`
		} `json:"subscriber"`
		Subscription struct {
			ID          uint   `json:"id"`
			PlanEndDate string `json:"plan_end_date"`
		} `json:"subscription"`
		Queued bool `json:"queued"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &first))
	s.False(first.Queued)
	s.Equal("2024-06-14", first.Subscription.PlanEndDate)

	code, env = s.do(http.MethodPost, "/subscriptions", s.Owner, s.Business.ID, map[string]interface{}{
		"plan": added.ID, "subscriber": first.Subscriber.ID,
	})
	s.Require().Equal(http.StatusCreated, code, env.Message)
	s.Equal("Subscription queued after the current period.", env.Message)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/subscriptions/%d/transaction", first.Subscription.ID), s.Owner, s.Business.ID, nil)
	s.Equal(http.StatusOK, code)

	code, env = s.do(http.MethodGet, fmt.Sprintf("/subscribers/%d/subscriptions", first.Subscriber.ID), s.Owner, s.Business.ID, nil)
	s.Equal(http.StatusOK, code)
	var history []map[string]interface{}
	s.Require().NoError(json.Unmarshal(env.Data, &history))
	s.Len(history, 2)

	code, env = s.do(http.MethodGet, "/transactions", s.Owner, s.Business.ID, nil)
	s.Equal(http.StatusOK, code)
	var txns []map[string]interface{}
	s.Require().NoError(json.Unmarshal(env.Data, &txns))
	s.Len(txns, 2)
}

func (s *RoutesSuite) TestSubscribeMissingAmount() {
	code, env := s.do(http.MethodPost, "/subscriptions", s.Owner, s.Business.ID, map[string]interface{}{
		"name": "Alex", "email": "alex@example.com", "start_date": "2024-05-15", "end_date": "2024-06-15",
	})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Missing fields: amount", env.Message)
}

func (s *RoutesSuite) TestSanitizesInput() {
	code, env := s.do(http.MethodPost, "/subscribers", s.Owner, s.Business.ID, map[string]interface{}{
		"name": "<script>alert(1)</script>Sam", "email": "sam@example.com",
	})
	s.Require().Equal(http.StatusCreated, code, env.Message)

	var sub struct {
		Name string `json:"name"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &sub))
	s.Equal("Sam", sub.Name)
}

func (s *RoutesSuite) TestImportStripeNotConfigured() {
	code, _ := s.do(http.MethodPost, "/plans/import-stripe", s.Owner, s.Business.ID, nil)
	s.Equal(http.StatusServiceUnavailable, code)
}

func (s *RoutesSuite) TestMetrics() {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RoutesSuite) TestLoginAndRefresh() {
	code, env := s.do(http.MethodPost, "/register", nil, 0, map[string]string{"email": "new@example.com", "password": "password123"})
	s.Require().Equal(http.StatusCreated, code, env.Message)

	code, env = s.do(http.MethodPost, "/login", nil, 0, map[string]string{"email": "new@example.com", "password": "password123"})
	s.Require().Equal(http.StatusOK, code, env.Message)
	var login struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &login))
	s.Require().NotEmpty(login.Refresh)

	code, env = s.do(http.MethodPost, "/token/refresh", nil, 0, map[string]string{"refresh": login.Refresh})
	s.Require().Equal(http.StatusOK, code, env.Message)
	var refreshed struct {
		Access string `json:"access"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &refreshed))
	s.NotEmpty(refreshed.Access)

	code, _ = s.do(http.MethodPost, "/token/refresh", nil, 0, map[string]string{"refresh": login.Access})
	s.Equal(http.StatusUnauthorized, code)
}

func (s *RoutesSuite) TestRefreshTokenIsNotABearerToken() {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    s.Owner.ID,
		"token_type": service.TokenTypeRefresh,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(s.GetConfig().JWTSecret))
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RoutesSuite) TestUnknownPlanMessage() {
	code, env := s.do(http.MethodGet, "/plans/9999", s.Owner, s.Business.ID, nil)
	s.Equal(http.StatusNotFound, code)
	s.Equal("Failed to fetch the plan, invalid ID.", env.Message)
}

func (s *RoutesSuite) TestOversizedPlanIsClientError() {
	code, env := s.do(http.MethodPost, "/plans", s.Owner, s.Business.ID, map[string]interface{}{
		"name": "Forever", "duration_count": 2000000000, "duration_unit": "YEARLY", "price": "123456789012.50",
	})
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Missing fields: duration_count, price", env.Message)
}
