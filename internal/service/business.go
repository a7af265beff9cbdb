package service

import (
	"context"
	"strings"

	"github.com/manmeet1049/bizzler/internal/api/dto"
	"github.com/manmeet1049/bizzler/internal/domain/access"
	"github.com/manmeet1049/bizzler/internal/domain/business"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/manmeet1049/bizzler/internal/repository"
	"github.com/samber/lo"
)

type BusinessService interface {
	CreateBusiness(ctx context.Context, actor access.Actor, req dto.CreateBusinessRequest) (*dto.CreateBusinessResponse, error)
	ListBusinesses(ctx context.Context, actor access.Actor) ([]*dto.BusinessResponse, error)
	AddStaff(ctx context.Context, auth access.AuthContext, req dto.AddStaffRequest) (*dto.MembershipResponse, error)
	// ResolveAuthContext works out what actor may do in the given business.
	ResolveAuthContext(ctx context.Context, actor access.Actor, businessID uint) (access.AuthContext, error)
}

type businessService struct {
	ServiceParams
}

func NewBusinessService(params ServiceParams) BusinessService {
	return &businessService{ServiceParams: params}
}

func (s *businessService) CreateBusiness(ctx context.Context, actor access.Actor, req dto.CreateBusinessRequest) (*dto.CreateBusinessResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	if existing, err := s.Store.Businesses.GetByOwnerAndName(ctx, actor.ID, name); err == nil {
		return nil, ierr.NewConflictError("Business with this name already exists for this owner.", dto.NewBusinessResponse(existing))
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	b := &business.Business{
		Name:    name,
		OwnerID: actor.ID,
		Type:    strings.ToUpper(strings.TrimSpace(req.Type)),
		Phone:   req.Phone,
		Address: req.Address,
	}
	err := s.Store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Businesses.Create(ctx, b); err != nil {
			return err
		}
		return tx.Businesses.CreateMembership(ctx, &business.Membership{
			UserID:     actor.ID,
			BusinessID: b.ID,
			Role:       business.RoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("business created", "business_id", b.ID, "owner_id", actor.ID, "type", b.Type)
	return &dto.CreateBusinessResponse{
		BusinessID:   b.ID,
		BusinessName: b.Name,
		UserID:       actor.ID,
		Role:         business.RoleOwner,
	}, nil
}

func (s *businessService) ListBusinesses(ctx context.Context, actor access.Actor) ([]*dto.BusinessResponse, error) {
	list, err := s.Store.Businesses.ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(b business.Business, _ int) *dto.BusinessResponse {
		return dto.NewBusinessResponse(&b)
	}), nil
}

func (s *businessService) AddStaff(ctx context.Context, auth access.AuthContext, req dto.AddStaffRequest) (*dto.MembershipResponse, error) {
	user, err := s.Store.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("No user registered with this email.").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}

	m := &business.Membership{UserID: user.ID, BusinessID: auth.TenantID, Role: business.RoleStaff}
	if err := s.Store.Businesses.CreateMembership(ctx, m); err != nil {
		if ierr.IsConflict(err) {
			return nil, ierr.NewConflictError("User is already a member of this business.", nil)
		}
		return nil, err
	}

	s.Logger.Infow("staff added", "business_id", auth.TenantID, "user_id", user.ID)
	return dto.NewMembershipResponse(m), nil
}

func (s *businessService) ResolveAuthContext(ctx context.Context, actor access.Actor, businessID uint) (access.AuthContext, error) {
	b, err := s.Store.Businesses.GetByID(ctx, businessID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return access.AuthContext{}, ierr.WithError(err).
				WithHint("Invalid business ID.").
				Mark(ierr.ErrNotFound)
		}
		return access.AuthContext{}, err
	}

	m, err := s.Store.Businesses.GetMembership(ctx, actor.ID, b.ID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return access.AuthContext{}, err
		}
		m = nil
	}
	return access.NewAuthContext(actor, b, m), nil
}
