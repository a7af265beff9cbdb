package access

import (
	"testing"

	"github.com/manmeet1049/bizzler/internal/domain/business"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	owner := Actor{ID: 1, Email: "owner@example.com"}
	staff := Actor{ID: 2, Email: "staff@example.com"}
	stranger := Actor{ID: 3, Email: "x@example.com"}
	sub := &business.Business{ID: 10, OwnerID: 1, Type: business.TypeSubscription}
	product := &business.Business{ID: 11, OwnerID: 1, Type: business.TypeProduct}

	assert.ElementsMatch(t,
		[]Capability{CapOwner, CapMember, CapSubscriptionBusiness},
		CapabilitiesFor(owner, sub, &business.Membership{UserID: 1, BusinessID: 10, Role: business.RoleOwner}))

	assert.ElementsMatch(t,
		[]Capability{CapMember, CapSubscriptionBusiness},
		CapabilitiesFor(staff, sub, &business.Membership{UserID: 2, BusinessID: 10, Role: business.RoleStaff}))

	assert.ElementsMatch(t, []Capability{CapSubscriptionBusiness}, CapabilitiesFor(stranger, sub, nil))
	assert.ElementsMatch(t, []Capability{CapOwner, CapMember}, CapabilitiesFor(owner, product, nil))
	assert.Empty(t, CapabilitiesFor(owner, nil, nil))
}

func TestRequire(t *testing.T) {
	staff := NewAuthContext(
		Actor{ID: 2},
		&business.Business{ID: 10, OwnerID: 1, Type: business.TypeSubscription},
		&business.Membership{UserID: 2, BusinessID: 10, Role: business.RoleStaff},
	)

	assert.Equal(t, uint(10), staff.TenantID)
	assert.NoError(t, staff.Require(CapMember, CapSubscriptionBusiness))

	err := staff.Require(CapMember, CapOwner)
	assert.True(t, ierr.Is(err, ierr.ErrPermissionDenied))
	assert.Equal(t, "Only the business owner can do this.", ierr.Hint(err))
}
