package glazed

import (
	"testing"

	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	gmiddlewares "github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/joblayer"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/vaultlayer"
)

func newLayers(t *testing.T, withVault bool) *glayers.ParameterLayers {
	t.Helper()
	jl, err := joblayer.NewJobLayer()
	require.NoError(t, err)
	ls := []glayers.ParameterLayer{jl}
	if withVault {
		vl, err := vaultlayer.NewVaultLayer()
		require.NoError(t, err)
		ls = append(ls, vl)
	}
	return glayers.NewParameterLayers(glayers.WithLayers(ls...))
}

func jobSettings(t *testing.T, parsed *glayers.ParsedLayers) *joblayer.JobSettings {
	t.Helper()
	s, err := joblayer.GetJobSettings(parsed)
	require.NoError(t, err)
	return s
}

func TestApplyValues(t *testing.T) {
	pls := newLayers(t, true)
	parsed := glayers.NewParsedLayers()
	require.NoError(t, gmiddlewares.ExecuteMiddlewares(pls, parsed,
		gmiddlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	))

	err := ApplyValues(pls, parsed, []string{joblayer.JobLayerSlug, "missing"}, map[string]string{
		"partition":  "highmem_p",
		"email":      "lab@example.edu",
		"vault-addr": "http://elsewhere:8200",
		"unrelated":  "x",
	}, parameters.WithParseStepSource("vault"))
	require.NoError(t, err)

	s := jobSettings(t, parsed)
	assert.Equal(t, "highmem_p", s.Partition)
	assert.Equal(t, "lab@example.edu", s.Email)
	assert.Equal(t, "4G", s.Mem)

	vs, err := vaultlayer.GetVaultSettings(parsed)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8200", vs.VaultAddr, "only the named layers are updated")
}

func TestUpdateFromVault_NoPathIsNoop(t *testing.T) {
	pls := newLayers(t, true)
	parsed := glayers.NewParsedLayers()
	err := gmiddlewares.ExecuteMiddlewares(pls, parsed,
		UpdateFromVault([]string{joblayer.JobLayerSlug}, parameters.WithParseStepSource("vault")),
		gmiddlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	)
	require.NoError(t, err)
	assert.Equal(t, "batch", jobSettings(t, parsed).Partition)
}

func TestUpdateFromVault_NoVaultLayerIsNoop(t *testing.T) {
	pls := newLayers(t, false)
	parsed := glayers.NewParsedLayers()
	err := gmiddlewares.ExecuteMiddlewares(pls, parsed,
		UpdateFromVault([]string{joblayer.JobLayerSlug}),
		gmiddlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	)
	require.NoError(t, err)
	assert.Equal(t, "ALL", jobSettings(t, parsed).MailType)
}
