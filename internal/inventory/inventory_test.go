package inventory_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
)

func TestBuild_EmptyDefaultsAreAllZero(t *testing.T) {
	inv := inventory.Build(nil)
	for _, k := range inventory.AllKeys {
		assert.Equal(t, inventory.ItemState{}, inv.Get(k), "key %s", k)
	}
	assert.Len(t, inv.Map(), len(inventory.AllKeys))
}

func TestBuild_UsesSuppliedValues(t *testing.T) {
	inv := inventory.Build(map[inventory.ItemKey]inventory.ItemState{
		inventory.Chairs:    {Usable: 40, Broken: 2},
		inventory.Computers: {Usable: 40, Broken: 3},
	})
	assert.Equal(t, inventory.ItemState{Usable: 40, Broken: 2}, inv.Get(inventory.Chairs))
	assert.Equal(t, inventory.ItemState{Usable: 40, Broken: 3}, inv.Get(inventory.Computers))
	assert.Equal(t, inventory.ItemState{}, inv.Get(inventory.Desks))
}

func TestBuild_ClampsNegativesAndIgnoresUnknownKeys(t *testing.T) {
	inv := inventory.Build(map[inventory.ItemKey]inventory.ItemState{
		inventory.Fans:             {Usable: -3, Broken: 1},
		inventory.ItemKey("sofas"): {Usable: 9},
	})
	assert.Equal(t, inventory.ItemState{Usable: 0, Broken: 1}, inv.Get(inventory.Fans))
	assert.Equal(t, inventory.ItemState{}, inv.Get(inventory.ItemKey("sofas")))
	_, present := inv.Map()[inventory.ItemKey("sofas")]
	assert.False(t, present)
}

func TestInventory_SetIsCopyOnWrite(t *testing.T) {
	orig := inventory.Build(nil)
	updated := orig.Set(inventory.Fans, inventory.Broken, 2)
	assert.Equal(t, 0, orig.Get(inventory.Fans).Broken)
	assert.Equal(t, 2, updated.Get(inventory.Fans).Broken)
	assert.Equal(t, 0, updated.Get(inventory.Fans).Usable)
}

func TestInventory_SetUnknownKeyIsNoop(t *testing.T) {
	orig := inventory.Build(map[inventory.ItemKey]inventory.ItemState{inventory.Desks: {Usable: 1}})
	assert.Equal(t, orig, orig.Set(inventory.ItemKey("sofas"), inventory.Usable, 5))
}

func TestParseItemKey(t *testing.T) {
	k, err := inventory.ParseItemKey("teacherChairs")
	require.NoError(t, err)
	assert.Equal(t, inventory.TeacherChairs, k)

	_, err = inventory.ParseItemKey("TeacherChairs")
	assert.ErrorIs(t, err, inventory.ErrUnknownItemKey)
}

func TestParseKeys_RejectsDuplicates(t *testing.T) {
	_, err := inventory.ParseKeys([]string{"fans", "fans"})
	assert.Error(t, err)

	keys, err := inventory.ParseKeys([]string{"fans", "sinks"})
	require.NoError(t, err)
	assert.Equal(t, []inventory.ItemKey{inventory.Fans, inventory.Sinks}, keys)
}

func TestKeySubsetsAreMembersOfAllKeys(t *testing.T) {
	for _, set := range [][]inventory.ItemKey{inventory.PrimaryKeys, inventory.SecondaryKeys, inventory.LabKeys} {
		for _, k := range set {
			assert.True(t, k.Valid(), "key %s", k)
		}
	}
	assert.Len(t, inventory.PrimaryKeys, 20)
	assert.Len(t, inventory.SecondaryKeys, 12)
	assert.Equal(t, inventory.Computers, inventory.LabKeys[len(inventory.LabKeys)-1])
}

func TestLabels_OverridesWin(t *testing.T) {
	labels := inventory.Labels(
		[]inventory.ItemKey{inventory.Sinks, inventory.Whiteboards},
		map[inventory.ItemKey]string{inventory.Whiteboards: "White Board"},
	)
	assert.Equal(t, "Sinks with Taps", labels[inventory.Sinks])
	assert.Equal(t, "White Board", labels[inventory.Whiteboards])
}

func TestParseField(t *testing.T) {
	f, err := inventory.ParseField(" Broken ")
	require.NoError(t, err)
	assert.Equal(t, inventory.Broken, f)

	_, err = inventory.ParseField("missing")
	assert.ErrorIs(t, err, inventory.ErrUnknownField)

	assert.True(t, inventory.Usable.Valid())
	assert.False(t, inventory.Field("Usable").Valid())
}

func TestParseKind(t *testing.T) {
	k, err := inventory.ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, inventory.KindClassroom, k)

	k, err = inventory.ParseKind("computerLab")
	require.NoError(t, err)
	assert.Equal(t, inventory.KindComputerLab, k)

	_, err = inventory.ParseKind("gym")
	assert.ErrorIs(t, err, inventory.ErrUnknownKind)
}

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"":                        0,
		"abc":                     0,
		"7":                       7,
		"  12 ":                   12,
		"+4":                      4,
		"-5":                      0,
		"3.9":                     3,
		"12chairs":                12,
		"0x10":                    0,
		"99999999999999999999999": 0,
	}
	for in, want := range cases {
		assert.Equal(t, want, inventory.ParseCount(in), "input %q", in)
	}
}

func TestProperty_ParseCount_NeverNegative(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "raw")
		if n := inventory.ParseCount(s); n < 0 {
			t.Fatalf("ParseCount(%q) = %d", s, n)
		}
	})
}

func TestProperty_ParseCount_RoundTripsNonNegativeInts(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 1_000_000).Draw(t, "n")
		raw := rapid.SampledFrom([]string{"%d", " %d", "%d ", "+%d"}).Draw(t, "format")
		got := inventory.ParseCount(fmt.Sprintf(raw, n))
		if got != n {
			t.Fatalf("got %d, want %d", got, n)
		}
	})
}

func TestProperty_Build_TotalOverAllKeys(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		defaults := make(map[inventory.ItemKey]inventory.ItemState)
		for _, k := range inventory.AllKeys {
			if rapid.Bool().Draw(t, "present") {
				defaults[k] = inventory.ItemState{
					Usable: rapid.IntRange(-10, 100).Draw(t, "usable"),
					Broken: rapid.IntRange(-10, 100).Draw(t, "broken"),
				}
			}
		}
		inv := inventory.Build(defaults)
		m := inv.Map()
		if len(m) != len(inventory.AllKeys) {
			t.Fatalf("inventory covers %d keys, want %d", len(m), len(inventory.AllKeys))
		}
		for k, s := range m {
			if s.Usable < 0 || s.Broken < 0 {
				t.Fatalf("key %s holds negative state %+v", k, s)
			}
		}
	})
}
