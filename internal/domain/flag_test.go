package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

func TestNewBooleanFlag_Defaults(t *testing.T) {
	f := NewBooleanFlag("f1", "dark-mode", nil, testNow)
	assert.Equal(t, FlagBoolean, f.Type)
	assert.False(t, f.BoolValue)
	assert.True(t, f.IsRoot())
	assert.Equal(t, testNow, f.CreatedAt)
	assert.Equal(t, testNow, f.UpdatedAt)
	assert.Equal(t, "off", f.DisplayValue())
}

func TestNewEnumFlag_TakesDefaultValue(t *testing.T) {
	et := EnumType{ID: "t1", Name: "Env", Values: []string{"dev", "prod"}}
	f := NewEnumFlag("f1", "env", StringPtr("p"), et, testNow)
	assert.True(t, f.IsEnum())
	assert.Equal(t, "t1", f.EnumTypeID)
	assert.Equal(t, "dev", f.EnumValue)
	assert.True(t, f.HasParent("p"))
	assert.True(t, f.References("t1"))
	assert.False(t, f.References("t2"))
}

func TestFlagClone_DoesNotAliasParent(t *testing.T) {
	f := NewBooleanFlag("f1", "a", StringPtr("p1"), testNow)
	c := f.Clone()
	require.NotNil(t, c.ParentID)
	*c.ParentID = "p2"
	assert.Equal(t, "p1", *f.ParentID)
}

func TestNewBooleanFlag_CopiesParentPointer(t *testing.T) {
	parent := "p1"
	f := NewBooleanFlag("f1", "a", &parent, testNow)
	parent = "changed"
	assert.Equal(t, "p1", *f.ParentID)
}

func TestEnumType_DefaultAndMembership(t *testing.T) {
	et := EnumType{Values: []string{"a", "B"}}
	assert.Equal(t, "a", et.Default())
	assert.True(t, et.HasValue("B"))
	assert.False(t, et.HasValue("b"), "membership is case-sensitive")
	assert.Equal(t, "", EnumType{}.Default())
}

func TestEnumType_Clone(t *testing.T) {
	et := EnumType{ID: "t1", Values: []string{"a", "b"}}
	c := et.Clone()
	c.Values[0] = "z"
	assert.Equal(t, "a", et.Values[0])
}

func TestFlagType_Valid(t *testing.T) {
	assert.True(t, FlagBoolean.Valid())
	assert.True(t, FlagEnum.Valid())
	assert.False(t, FlagType("untyped").Valid())
}

func TestAuthSession_Expired(t *testing.T) {
	s := &AuthSession{ExpiresAt: testNow}
	assert.True(t, s.Expired(testNow))
	assert.False(t, s.Expired(testNow.Add(-time.Second)))
}
