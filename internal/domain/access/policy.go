package access

import (
	"github.com/manmeet1049/bizzler/internal/domain/business"
	ierr "github.com/manmeet1049/bizzler/internal/errors"
	"github.com/samber/lo"
)

func NewAuthContext(actor Actor, b *business.Business, m *business.Membership) AuthContext {
	return AuthContext{
		Actor:        actor,
		TenantID:     b.ID,
		Capabilities: CapabilitiesFor(actor, b, m),
	}
}

func (a AuthContext) Has(c Capability) bool {
	return lo.Contains(a.Capabilities, c)
}

// Require fails with ErrPermissionDenied naming the first missing capability.
func (a AuthContext) Require(caps ...Capability) error {
	for _, c := range caps {
		if !a.Has(c) {
			return ierr.NewErrorf("missing capability %s", c).
				WithHint(denyHint(c)).
				Mark(ierr.ErrPermissionDenied)
		}
	}
	return nil
}

func denyHint(c Capability) string {
	switch c {
	case CapOwner:
		return "Only the business owner can do this."
	case CapMember:
		return "You are not a member of this business."
	case CapSubscriptionBusiness:
		return "This business is not subscription based."
	default:
		return "Access denied."
	}
}
