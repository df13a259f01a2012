package service

import "cloverpass/internal/model"

// Panel destinations. Routing picks the first matching role in a fixed
// priority order; roles are not mutually exclusive, so the order is a
// tie-break, not a classification.
const (
	DestAdminArea     = "/admin"
	DestBusinessPanel = "/business-panel"
	DestPromoterArea  = "/promoter"
	DestValidation    = "/validation"
	DestHome          = "/"
)

// Route resolution states.
const (
	StateUnprovisioned = "unprovisioned"
	StateRouted        = "routed"
)

// RouteResolution is the post-login routing decision for an identity.
type RouteResolution struct {
	State       string `json:"state"`
	Destination string `json:"destination,omitempty"`
	Notice      string `json:"notice,omitempty"`
	// Logout tells the client to drop its session before redirecting.
	Logout bool `json:"logout,omitempty"`
}

// ResolveDestination maps a role set to its landing panel. The second return
// is false when no known role matched.
func ResolveDestination(roles model.RoleList) (string, bool) {
	switch {
	case roles.Has(model.RoleSuperAdmin):
		return DestAdminArea, true
	case roles.Has(model.RoleBusinessAdmin):
		return DestBusinessPanel, true
	case roles.Has(model.RoleStaff):
		return DestBusinessPanel, true
	case roles.Has(model.RolePromoter):
		return DestPromoterArea, true
	case roles.HasAny(model.RoleHost, model.RoleLectorQR):
		return DestValidation, true
	default:
		return DestHome, false
	}
}

// ResolveRoute decides where an authenticated identity lands. The profile is
// nil when resolution found none (or found corrupted data); that forces a
// logout with a support notice rather than a silent redirect.
func ResolveRoute(profile *model.Profile) RouteResolution {
	if profile == nil {
		return RouteResolution{
			State:  StateUnprovisioned,
			Logout: true,
			Notice: "no profile found, contact support",
		}
	}
	dest, ok := ResolveDestination(profile.Roles)
	if !ok {
		return RouteResolution{
			State:       StateRouted,
			Destination: dest,
			Notice:      "could not determine your panel",
		}
	}
	return RouteResolution{State: StateRouted, Destination: dest}
}
