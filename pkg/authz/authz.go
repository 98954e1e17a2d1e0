package authz

// Capability is a bitset of operator capabilities. It replaces the
// group-name matching the system used historically; the wire names in
// GroupNames are kept for API compatibility.
type Capability uint8

const (
	CapAdmin Capability = 1 << iota
	CapCashier
)

const (
	GroupAdmin   = "Admin"
	GroupCashier = "Caixa"
)

func (c Capability) Has(want Capability) bool { return c&want != 0 }

// GroupNames renders the bitset as the legacy group-name list.
func (c Capability) GroupNames() []string {
	names := []string{}
	if c.Has(CapAdmin) {
		names = append(names, GroupAdmin)
	}
	if c.Has(CapCashier) {
		names = append(names, GroupCashier)
	}
	return names
}

// FromGroupNames maps legacy group names onto the bitset. Unknown names
// are ignored, matching the old behaviour of a missing group.
func FromGroupNames(names []string) Capability {
	var c Capability
	for _, n := range names {
		switch n {
		case GroupAdmin:
			c |= CapAdmin
		case GroupCashier:
			c |= CapCashier
		}
	}
	return c
}

// Authorizer answers the two role questions every endpoint asks.
type Authorizer interface {
	IsAdmin() bool
	IsCashier() bool
}

// Grant is the authenticated actor as seen by a single request: the
// capabilities and superuser flag carried in its token claims.
type Grant struct {
	UserID    uint
	Caps      Capability
	Superuser bool
}

// IsAdmin: superuser always implies admin capability.
func (g Grant) IsAdmin() bool { return g.Superuser || g.Caps.Has(CapAdmin) }

// IsCashier is independent of admin status.
func (g Grant) IsCashier() bool { return g.Caps.Has(CapCashier) }
