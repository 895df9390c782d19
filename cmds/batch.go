package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/batch"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/joblayer"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/jobscript"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/vaultlayer"
)

type BatchCommand struct{ *gcmds.CommandDescription }

type BatchSettings struct {
	Config          string   `glazed.parameter:"config"`
	OutputDir       string   `glazed.parameter:"output-dir"`
	ContinueOnError bool     `glazed.parameter:"continue-on-error"`
	DryRun          bool     `glazed.parameter:"dry-run"`
	Jobs            []string `glazed.parameter:"jobs"`
}

func NewBatchCommand() (*BatchCommand, error) {
	layer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	jl, err := joblayer.NewJobLayer()
	if err != nil {
		return nil, err
	}

	cd := gcmds.NewCommandDescription(
		"batch",
		gcmds.WithShort("Generate job scripts for every job in a YAML batch file"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithHelp("Batch YAML file"), parameters.WithShortFlag("c")),
			parameters.NewParameterDefinition("output-dir", parameters.ParameterTypeString, parameters.WithHelp("Override the output directory for all jobs")),
			parameters.NewParameterDefinition("continue-on-error", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Continue processing on errors")),
			parameters.NewParameterDefinition("dry-run", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Print scripts to stdout without writing files")),
			parameters.NewParameterDefinition("jobs", parameters.ParameterTypeStringList, parameters.WithHelp("Only process jobs with these names; default all")),
		),
		gcmds.WithLayersList(layer, jl),
	)
	_, err = vaultlayer.AddVaultLayerToCommand(cd)
	if err != nil {
		return nil, err
	}
	return &BatchCommand{cd}, nil
}

func (c *BatchCommand) Run(ctx context.Context, parsed *glayers.ParsedLayers) error {
	s := &BatchSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	js, err := joblayer.GetJobSettings(parsed)
	if err != nil {
		return err
	}

	cfg, err := batch.LoadConfig(s.Config)
	if err != nil {
		return err
	}
	cfg.Defaults = cfg.Defaults.WithDefaults(siteDefaults(js))

	proc := batch.Processor{Composer: jobscript.NewComposer()}
	_, err = proc.Process(cfg, batch.ProcessorOptions{
		OutputDir:       s.OutputDir,
		ContinueOnError: s.ContinueOnError,
		DryRun:          s.DryRun,
		Jobs:            s.Jobs,
	})
	return err
}

var _ gcmds.BareCommand = &BatchCommand{}

// siteDefaults turns the job layer (config file, environment, Vault) into batch
// defaults. The job name never comes from there; every job names itself.
func siteDefaults(js *joblayer.JobSettings) jobscript.JobRequest {
	var d jobscript.JobRequest
	js.Apply(&d)
	d.JobName = ""
	return d
}
