package cmds

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/joblayer"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/jobscript"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/output"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/patch"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/vaultlayer"
)

type GenerateCommand struct{ *gcmds.CommandDescription }

type GenerateSettings struct {
	Variant      string   `glazed.parameter:"variant"`
	Params       []string `glazed.parameter:"param"`
	ParamsFile   string   `glazed.parameter:"params-file"`
	Home         string   `glazed.parameter:"home"`
	MaxParticles int      `glazed.parameter:"max-particles"`
	OutputDir    string   `glazed.parameter:"output-dir"`
	DryRun       bool     `glazed.parameter:"dry-run"`
}

func NewGenerateCommand() (*GenerateCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	jl, err := joblayer.NewJobLayer()
	if err != nil {
		return nil, err
	}
	var variants []string
	for _, v := range variant.Variants() {
		variants = append(variants, string(v))
	}
	cd := gcmds.NewCommandDescription(
		"generate",
		gcmds.WithShort("Generate one SLURM job script for a Phantom run"),
		gcmds.WithLong("Writes <job-name>.sh into --output-dir. The script builds Phantom, "+
			"patches the setup file with the given parameters and starts the run in the "+
			"next free numbered directory under <home>/runs."),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("variant", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithShortFlag("v"), parameters.WithHelp("Simulation variant ("+strings.Join(variants, ", ")+")")),
			parameters.NewParameterDefinition("param", parameters.ParameterTypeStringList, parameters.WithShortFlag("p"), parameters.WithHelp("Setup parameter override as name=value (repeatable)")),
			parameters.NewParameterDefinition("params-file", parameters.ParameterTypeString, parameters.WithHelp("YAML map of setup parameter overrides; --param wins on conflicts")),
			parameters.NewParameterDefinition("home", parameters.ParameterTypeString, parameters.WithHelp("Home directory on the cluster (default: current user's home)")),
			parameters.NewParameterDefinition("max-particles", parameters.ParameterTypeInteger, parameters.WithDefault(int(jobscript.DefaultMaxParticles)), parameters.WithHelp("Value passed to phantomsetup --maxp")),
			parameters.NewParameterDefinition("output-dir", parameters.ParameterTypeString, parameters.WithDefault("."), parameters.WithShortFlag("o"), parameters.WithHelp("Existing directory the script is written to")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Print the script to stdout instead of writing it")),
		),
		gcmds.WithLayersList(layer, jl),
	)
	_, err = vaultlayer.AddVaultLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &GenerateCommand{cd}, nil
}

func (c *GenerateCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &GenerateSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	js, err := joblayer.GetJobSettings(parsed)
	if err != nil {
		return err
	}

	params, err := collectParams(s.ParamsFile, s.Params)
	if err != nil {
		return err
	}
	home := s.Home
	if home == "" {
		home, err = os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to determine home directory, pass --home: %w", err)
		}
	}

	req := jobscript.JobRequest{
		Variant:       variant.Variant(s.Variant),
		Params:        params,
		HomeDirectory: home,
		MaxParticles:  int64(s.MaxParticles),
	}
	js.Apply(&req)

	if specs, err := variant.SpecsFor(req.Variant); err == nil {
		if dropped := patch.UnknownKeys(specs, params); len(dropped) > 0 {
			fmt.Fprintln(os.Stderr, output.Warnf("%d parameter(s) not used by %s are ignored:", len(dropped), req.Variant))
			fmt.Fprint(os.Stderr, output.ListNames(dropped))
		}
	}

	composer := jobscript.NewComposer()
	if s.DryRun {
		content, err := composer.Compose(req)
		if err != nil {
			return err
		}
		return output.Write("-", []byte(content), output.WriteOptions{})
	}
	if _, err := composer.Write(s.OutputDir, req); err != nil {
		return err
	}
	fmt.Println(output.Generated(req.ScriptName(), s.OutputDir))
	return nil
}

var _ gcmds.BareCommand = &GenerateCommand{}

// collectParams merges the params file (if any) with name=value flags, flags last.
func collectParams(paramsFile string, flags []string) (map[string]string, error) {
	params := map[string]string{}
	if paramsFile != "" {
		data, err := os.ReadFile(paramsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read params file: %w", err)
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			return nil, fmt.Errorf("failed to parse params file %s: %w", paramsFile, err)
		}
	}
	fromFlags, err := parseParamFlags(flags)
	if err != nil {
		return nil, err
	}
	for k, v := range fromFlags {
		params[k] = v
	}
	return params, nil
}

func parseParamFlags(flags []string) (map[string]string, error) {
	out := make(map[string]string, len(flags))
	var bad []string
	for _, f := range flags {
		k, v, ok := strings.Cut(f, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			bad = append(bad, f)
			continue
		}
		out[k] = v
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, fmt.Errorf("parameters must be given as name=value: %s", strings.Join(bad, ", "))
	}
	return out, nil
}
