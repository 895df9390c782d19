package vaultlayer

import (
	"fmt"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
)

const VaultLayerSlug = "vault"

type VaultSettings struct {
	VaultAddr         string `glazed.parameter:"vault-addr"`
	VaultToken        string `glazed.parameter:"vault-token"`
	VaultTokenSource  string `glazed.parameter:"vault-token-source"`
	VaultTokenFile    string `glazed.parameter:"vault-token-file"`
	VaultDefaultsPath string `glazed.parameter:"vault-defaults-path"`
}

// Enabled reports whether job defaults should be read from Vault at all.
func (s *VaultSettings) Enabled() bool {
	return s.VaultDefaultsPath != ""
}

// NewVaultLayer defines the settings for reading shared job defaults from a Vault KV
// secret. Leaving vault-defaults-path empty turns the lookup off.
func NewVaultLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		VaultLayerSlug,
		"Vault job defaults",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition(
				"vault-defaults-path",
				parameters.ParameterTypeString,
				parameters.WithHelp("KV path holding shared job defaults (e.g. kv/hpc/slurm-defaults); empty disables Vault"),
				parameters.WithDefault(""),
			),
			parameters.NewParameterDefinition(
				"vault-addr",
				parameters.ParameterTypeString,
				parameters.WithHelp("Vault server address"),
				parameters.WithDefault("http://127.0.0.1:8200"),
			),
			parameters.NewParameterDefinition(
				"vault-token",
				parameters.ParameterTypeString,
				parameters.WithHelp("Vault token (optional)"),
				parameters.WithDefault(""),
			),
			parameters.NewParameterDefinition(
				"vault-token-source",
				parameters.ParameterTypeChoice,
				parameters.WithHelp("Token source: auto|env|file"),
				parameters.WithDefault("auto"),
				parameters.WithChoices("auto", "env", "file"),
			),
			parameters.NewParameterDefinition(
				"vault-token-file",
				parameters.ParameterTypeString,
				parameters.WithHelp("Path to token file (default ~/.vault-token)"),
				parameters.WithDefault(""),
			),
		),
	)
}

// AddVaultLayerToCommand attaches the layer to a Glazed command description.
func AddVaultLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewVaultLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(VaultLayerSlug, l)
	return c, nil
}

// GetVaultSettings returns parsed vault settings from the ParsedLayers.
func GetVaultSettings(parsed *glzlayers.ParsedLayers) (*VaultSettings, error) {
	var s VaultSettings
	if err := parsed.InitializeStruct(VaultLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse vault settings: %w", err)
	}
	return &s, nil
}
