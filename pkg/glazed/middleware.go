package glazed

import (
	"context"
	"fmt"
	"strings"
	"time"

	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	gmiddlewares "github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/vault"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/vaultlayer"
)

const vaultTimeout = 10 * time.Second

// UpdateFromVault reads the secret named by the vault layer's vault-defaults-path and
// copies every key that matches a parameter name in one of the given layers.
//
// The middleware runs the rest of the chain first, so the vault layer must be
// resolved further down the chain:
//
//	glazed.UpdateFromVault([]string{joblayer.JobLayerSlug},
//	    parameters.WithParseStepSource("vault")),
//	middlewares.WrapWithWhitelistedLayers([]string{vaultlayer.VaultLayerSlug},
//	    middlewares.ParseFromCobraCommand(cmd)),
//	middlewares.GatherFlagsFromViper(...),
//	middlewares.SetFromDefaults(...),
//
// Commands without a vault layer, or with an empty path, are left untouched.
func UpdateFromVault(slugs []string, options ...parameters.ParseStepOption) gmiddlewares.Middleware {
	return func(next gmiddlewares.HandlerFunc) gmiddlewares.HandlerFunc {
		return func(layers *glayers.ParameterLayers, parsed *glayers.ParsedLayers) error {
			if err := next(layers, parsed); err != nil {
				return err
			}

			if _, ok := layers.Get(vaultlayer.VaultLayerSlug); !ok {
				return nil
			}
			vs, err := vaultlayer.GetVaultSettings(parsed)
			if err != nil {
				return err
			}
			path := strings.TrimSpace(vs.VaultDefaultsPath)
			if path == "" {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), vaultTimeout)
			defer cancel()

			token, err := vault.ResolveToken(vs.VaultToken, vault.TokenSource(vs.VaultTokenSource), vs.VaultTokenFile)
			if err != nil {
				return fmt.Errorf("failed to resolve Vault token: %w", err)
			}
			client, err := vault.NewClient(ctx, vs.VaultAddr, token)
			if err != nil {
				return err
			}
			values, err := client.ReadDefaults(ctx, path)
			if err != nil {
				return fmt.Errorf("failed to read job defaults from %s: %w", path, err)
			}
			log.Debug().Str("path", path).Int("keys", len(values)).Msg("loaded job defaults from Vault")

			return ApplyValues(layers, parsed, slugs, values, options...)
		}
	}
}

// ApplyValues sets every parameter of the named layers whose name is a key of values.
// Layers not present in layers are skipped.
func ApplyValues(
	layers *glayers.ParameterLayers,
	parsed *glayers.ParsedLayers,
	slugs []string,
	values map[string]string,
	options ...parameters.ParseStepOption,
) error {
	for _, slug := range slugs {
		l, ok := layers.Get(slug)
		if !ok {
			continue
		}
		parsedLayer := parsed.GetOrCreate(l)
		err := l.GetParameterDefinitions().ForEachE(func(pd *parameters.ParameterDefinition) error {
			v, ok := values[pd.Name]
			if !ok {
				return nil
			}
			return parsedLayer.Parameters.UpdateValue(pd.Name, pd, v, options...)
		})
		if err != nil {
			return fmt.Errorf("failed to apply Vault values to layer %s: %w", slug, err)
		}
	}
	return nil
}
