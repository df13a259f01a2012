package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Platform roles. A profile can hold several at once.
const (
	RoleSuperAdmin    = "superadmin"
	RoleBusinessAdmin = "business_admin"
	RoleStaff         = "staff"
	RoleHost          = "host"
	RoleLectorQR      = "lector_qr"
	RolePromoter      = "promoter"
)

// KnownRoles lists every role the platform accepts on a profile.
var KnownRoles = []string{
	RoleSuperAdmin,
	RoleBusinessAdmin,
	RoleStaff,
	RoleHost,
	RoleLectorQR,
	RolePromoter,
}

// IsKnownRole reports whether r is one of the fixed platform roles.
func IsKnownRole(r string) bool {
	for _, k := range KnownRoles {
		if r == k {
			return true
		}
	}
	return false
}

// RoleList is a profile's role set. Legacy documents stored a single scalar
// role instead of an array; decoding normalizes both shapes to a non-nil
// slice so callers never have to branch on the stored representation.
type RoleList []string

// UnmarshalBSONValue accepts an array of strings, a single scalar string,
// or null/missing, and always yields a non-nil list.
func (r *RoleList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeArray:
		raw := bson.RawValue{Type: t, Value: data}
		var roles []string
		if err := raw.Unmarshal(&roles); err != nil {
			return fmt.Errorf("decode roles array: %w", err)
		}
		if roles == nil {
			roles = []string{}
		}
		*r = roles
		return nil
	case bson.TypeString:
		raw := bson.RawValue{Type: t, Value: data}
		single, ok := raw.StringValueOK()
		if !ok {
			return fmt.Errorf("decode scalar role")
		}
		*r = RoleList{single}
		return nil
	case bson.TypeNull, bson.TypeUndefined:
		*r = RoleList{}
		return nil
	default:
		return fmt.Errorf("roles field has unsupported type %s", t)
	}
}

// MarshalBSONValue always writes the list form.
func (r RoleList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	roles := []string(r)
	if roles == nil {
		roles = []string{}
	}
	return bson.MarshalValue(roles)
}

// Has reports whether the list contains the given role.
func (r RoleList) Has(role string) bool {
	for _, v := range r {
		if v == role {
			return true
		}
	}
	return false
}

// HasAny reports whether the list contains at least one of the given roles.
func (r RoleList) HasAny(roles ...string) bool {
	for _, role := range roles {
		if r.Has(role) {
			return true
		}
	}
	return false
}
