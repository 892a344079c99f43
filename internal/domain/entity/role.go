// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a person can have in the marketplace.
type Role string

const (
	// RoleBuyer browses and buys listings.
	RoleBuyer Role = "buyer"
	// RoleSeller lists items for sale.
	RoleSeller Role = "seller"
	// RoleAdmin lists items and moderates people and listings.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return AllRoles().Contains(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// AllRoles returns every known role in display order.
func AllRoles() Roles {
	return Roles{RoleBuyer, RoleSeller, RoleAdmin}
}

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// Capabilities is the set of role-gated actions.
type Capabilities struct {
	Sell     bool
	Moderate bool
}

// capabilityTable is consulted instead of per-variant methods.
var capabilityTable = map[Role]Capabilities{
	RoleBuyer:  {},
	RoleSeller: {Sell: true},
	RoleAdmin:  {Sell: true, Moderate: true},
}

// Capabilities returns what the role enables. Unknown roles enable nothing.
func (r Role) Capabilities() Capabilities {
	return capabilityTable[r]
}
