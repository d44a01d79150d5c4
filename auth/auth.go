// Package auth defines the capability boundary the core checks against.
// Credential and role storage live outside this system; callers arrive with
// an already-resolved Context.
package auth

// Capability is a closed token set. Core logic never builds capability names
// dynamically.
type Capability string

const (
	CapEditAllReports Capability = "edit_all_reports"
	CapViewAllReports Capability = "view_all_reports"
	CapCreateReports  Capability = "create_reports"
	CapManageSchools  Capability = "manage_schools"
)

// Context answers who is calling and what they may do.
type Context interface {
	CurrentUserID() int
	HasCapability(cap Capability) bool
}

// StaticContext is a fixed-capability Context for the API layer and tests.
type StaticContext struct {
	UserID       int
	Capabilities map[Capability]bool
}

func NewStaticContext(userID int, caps ...Capability) *StaticContext {
	set := make(map[Capability]bool, len(caps))
	for _, cap := range caps {
		set[cap] = true
	}
	return &StaticContext{UserID: userID, Capabilities: set}
}

func (c *StaticContext) CurrentUserID() int {
	return c.UserID
}

func (c *StaticContext) HasCapability(cap Capability) bool {
	return c.Capabilities[cap]
}
