package variant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_BuiltinVariants(t *testing.T) {
	assert.Equal(t, []Variant{Disc, DustyDisc, DustySGDisc}, Variants())

	for _, v := range Variants() {
		specs, err := SpecsFor(v)
		require.NoError(t, err, v)
		require.NotEmpty(t, specs, v)
		require.NoError(t, validateSpecs(specs), v)
	}
}

func TestSpecsFor_RegistrationOrder(t *testing.T) {
	specs, err := SpecsFor(DustyDisc)
	require.NoError(t, err)

	// isetdust (line 58) is registered before nplanets (line 41)
	idx := map[string]int{}
	for i, s := range specs {
		idx[s.Name] = i
	}
	assert.Less(t, idx["isetdust"], idx["nplanets"])
	assert.Equal(t, "np", specs[0].Name)
	assert.Equal(t, 4, specs[0].Line)
}

func TestSpecsFor_ReturnsCopy(t *testing.T) {
	specs, err := SpecsFor(Disc)
	require.NoError(t, err)
	specs[0].Default = "changed"

	again, err := SpecsFor(Disc)
	require.NoError(t, err)
	assert.Equal(t, "1000000", again[0].Default)
}

func TestSpecsFor_UnknownVariant(t *testing.T) {
	_, err := SpecsFor("notarealtype")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownVariant))

	var uv *UnknownVariantError
	require.True(t, errors.As(err, &uv))
	assert.Equal(t, Variant("notarealtype"), uv.Variant)
	assert.Contains(t, err.Error(), "notarealtype")
	assert.Contains(t, err.Error(), "dustydisc")
}

func TestDustySGDisc_SharesLinesWithDustyDisc(t *testing.T) {
	dusty, err := SpecsFor(DustyDisc)
	require.NoError(t, err)
	sg, err := SpecsFor(DustySGDisc)
	require.NoError(t, err)
	require.Len(t, sg, len(dusty))

	for i := range dusty {
		assert.Equal(t, dusty[i].Name, sg[i].Name)
		assert.Equal(t, dusty[i].Line, sg[i].Line)
	}
	assert.Equal(t, "0.250", sg[15].Default)
	assert.Equal(t, "disc_m", sg[15].Name)
	// the dusty table itself is untouched
	assert.Equal(t, "0.050", dusty[15].Default)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		tag    Variant
		specs  []ParameterSpec
		errMsg string
	}{
		{
			name:   "empty tag",
			tag:    "",
			specs:  []ParameterSpec{{Name: "np", Line: 1}},
			errMsg: "variant tag is empty",
		},
		{
			name:   "duplicate name",
			tag:    "a",
			specs:  []ParameterSpec{{Name: "np", Line: 1}, {Name: "np", Line: 2}},
			errMsg: "duplicate field name np",
		},
		{
			name:   "duplicate line",
			tag:    "b",
			specs:  []ParameterSpec{{Name: "np", Line: 3}, {Name: "m1", Line: 3}},
			errMsg: "fields np and m1 both address line 3",
		},
		{
			name:   "zero line",
			tag:    "c",
			specs:  []ParameterSpec{{Name: "np", Line: 0}},
			errMsg: "must be positive",
		},
		{
			name:   "blank name",
			tag:    "d",
			specs:  []ParameterSpec{{Name: " ", Line: 1}},
			errMsg: "empty name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := r.Register(tt.tag, tt.specs)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, r.Variants())
		})
	}
}

func TestRegister_NewVariantIsImmediatelyAvailable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("growingdisc", []ParameterSpec{
		{Name: "np", Line: 4, Description: "number of gas particles", Default: "500000"},
		{Name: "R_out", Line: 30, Description: "outer radius", Default: "200."},
	}))
	assert.True(t, r.Has("growingdisc"))

	err := r.Register("growingdisc", []ParameterSpec{{Name: "np", Line: 4}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	specs, err := r.SpecsFor("growingdisc")
	require.NoError(t, err)
	assert.Len(t, specs, 2)
}

func TestRegister_EmptyTableAllowed(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("empty", nil))
	specs, err := r.SpecsFor("empty")
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestMustRegister_Panics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.MustRegister("x", []ParameterSpec{{Name: "np", Line: -1}})
	})
}
