package access

type Capability string

const (
	CapOwner                Capability = "owner"
	CapMember               Capability = "member"
	CapSubscriptionBusiness Capability = "subscription_business"
)

// Actor is the authenticated user making the request.
type Actor struct {
	ID    uint
	Email string
}

// AuthContext is everything the services know about who is calling and for
// which tenant. It is built once by the HTTP middleware and passed explicitly.
type AuthContext struct {
	Actor        Actor
	TenantID     uint
	Capabilities []Capability
}
