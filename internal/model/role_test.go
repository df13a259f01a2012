package model

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func decodeProfile(t *testing.T, doc bson.M) *Profile {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	var p Profile
	if err := bson.Unmarshal(raw, &p); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	p.Normalize()
	return &p
}

func TestRoleListDecodesArray(t *testing.T) {
	p := decodeProfile(t, bson.M{"_id": "u1", "roles": bson.A{"staff", "host"}})
	if len(p.Roles) != 2 || p.Roles[0] != "staff" || p.Roles[1] != "host" {
		t.Fatalf("unexpected roles: %v", p.Roles)
	}
}

func TestRoleListWrapsLegacyScalar(t *testing.T) {
	p := decodeProfile(t, bson.M{"_id": "u1", "roles": "business_admin"})
	if len(p.Roles) != 1 || p.Roles[0] != "business_admin" {
		t.Fatalf("expected scalar wrapped into list, got %v", p.Roles)
	}
}

func TestRoleListMissingFieldResolvesEmpty(t *testing.T) {
	p := decodeProfile(t, bson.M{"_id": "u1"})
	if p.Roles == nil {
		t.Fatalf("roles must never be nil after resolution")
	}
	if len(p.Roles) != 0 {
		t.Fatalf("expected empty roles, got %v", p.Roles)
	}
}

func TestRoleListNullResolvesEmpty(t *testing.T) {
	p := decodeProfile(t, bson.M{"_id": "u1", "roles": nil})
	if p.Roles == nil || len(p.Roles) != 0 {
		t.Fatalf("expected empty roles for null field, got %v", p.Roles)
	}
}

func TestRoleListRejectsCorruptType(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"_id": "u1", "roles": 42})
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	var p Profile
	if err := bson.Unmarshal(raw, &p); err == nil {
		t.Fatalf("expected decode error for numeric roles field")
	}
}

func TestRoleListMarshalsNilAsEmptyArray(t *testing.T) {
	raw, err := bson.Marshal(&Profile{UID: "u1"})
	if err != nil {
		t.Fatalf("marshal profile: %v", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	arr, ok := doc["roles"].(bson.A)
	if !ok {
		t.Fatalf("expected roles stored as array, got %T", doc["roles"])
	}
	if len(arr) != 0 {
		t.Fatalf("expected empty array, got %v", arr)
	}
}

func TestRoleListHasAny(t *testing.T) {
	roles := RoleList{"host"}
	if !roles.HasAny(RoleHost, RoleLectorQR) {
		t.Fatalf("expected host to match")
	}
	if roles.HasAny(RoleSuperAdmin, RolePromoter) {
		t.Fatalf("unexpected match")
	}
}
