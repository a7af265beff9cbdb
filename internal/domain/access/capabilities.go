package access

import (
	"github.com/manmeet1049/bizzler/internal/domain/business"
)

// CapabilitiesFor derives the gates an actor passes for a business. m is nil
// when the actor has no membership row.
func CapabilitiesFor(actor Actor, b *business.Business, m *business.Membership) []Capability {
	caps := []Capability{}
	if b == nil {
		return caps
	}

	isOwner := b.OwnerID == actor.ID || (m != nil && m.Role == business.RoleOwner)
	if isOwner {
		caps = append(caps, CapOwner)
	}
	if isOwner || m != nil {
		caps = append(caps, CapMember)
	}
	if b.Type == business.TypeSubscription {
		caps = append(caps, CapSubscriptionBusiness)
	}
	return caps
}
