package testutil

import (
	"context"
	"time"

	"github.com/manmeet1049/bizzler/config"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/business"
	"github.com/manmeet1049/bizzler/internal/domain/users"
	"github.com/manmeet1049/bizzler/internal/logger"
	"github.com/manmeet1049/bizzler/internal/metrics"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/manmeet1049/bizzler/internal/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// BaseServiceTestSuite gives each test a fresh database with one owner, one
// subscription business and a pinned clock.
type BaseServiceTestSuite struct {
	suite.Suite

	ctx     context.Context
	db      *gorm.DB
	store   *repository.Store
	logger  *logger.Logger
	config  *config.Config
	metrics *metrics.Metrics
	now     time.Time

	Owner    *users.User
	Business *business.Business
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = NewTestDB(s.T())
	s.store = repository.NewStore(s.db)
	s.logger = logger.NewNop()
	s.config = config.Default()
	s.config.JWTSecret = "test-secret"
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.now = time.Date(2024, 5, 15, 9, 30, 0, 0, time.UTC)

	s.Owner = s.CreateUser("owner@example.com")
	s.Business = s.CreateBusiness(s.Owner, "Gym", business.TypeSubscription)
}

func (s *BaseServiceTestSuite) GetContext() context.Context  { return s.ctx }
func (s *BaseServiceTestSuite) GetDB() *gorm.DB              { return s.db }
func (s *BaseServiceTestSuite) GetStore() *repository.Store  { return s.store }
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger    { return s.logger }
func (s *BaseServiceTestSuite) GetConfig() *config.Config    { return s.config }
func (s *BaseServiceTestSuite) GetNow() time.Time            { return s.now }
func (s *BaseServiceTestSuite) GetMetrics() *metrics.Metrics { return s.metrics }

// SetNow moves the pinned clock; services built with Clock() see the change.
func (s *BaseServiceTestSuite) SetNow(t time.Time) { s.now = t }

func (s *BaseServiceTestSuite) Clock() types.Clock {
	return func() time.Time { return s.now }
}

func (s *BaseServiceTestSuite) CreateUser(email string) *users.User {
	u := &users.User{Email: email, Password: "x", IsActive: true}
	s.Require().NoError(s.store.Users.Create(s.ctx, u))
	return u
}

func (s *BaseServiceTestSuite) CreateBusiness(owner *users.User, name, kind string) *business.Business {
	b := &business.Business{Name: name, OwnerID: owner.ID, Type: kind}
	s.Require().NoError(s.store.Businesses.Create(s.ctx, b))
	s.Require().NoError(s.store.Businesses.CreateMembership(s.ctx, &business.Membership{
		UserID: owner.ID, BusinessID: b.ID, Role: business.RoleOwner,
	}))
	return b
}

// OwnerAuth is the AuthContext of the seeded owner on the seeded business.
func (s *BaseServiceTestSuite) OwnerAuth() access.AuthContext {
	return s.AuthFor(s.Owner, s.Business)
}

func (s *BaseServiceTestSuite) AuthFor(u *users.User, b *business.Business) access.AuthContext {
	m, err := s.store.Businesses.GetMembership(s.ctx, u.ID, b.ID)
	if err != nil {
		m = nil
	}
	return access.NewAuthContext(access.Actor{ID: u.ID, Email: u.Email}, b, m)
}

// Date builds a UTC midnight date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
