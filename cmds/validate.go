package cmds

import (
	"context"
	"fmt"
	"os"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/batch"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/output"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

type ValidateCommand struct{ *gcmds.CommandDescription }

type ValidateSettings struct {
	Config string `glazed.parameter:"config"`
	Strict bool   `glazed.parameter:"strict"`
}

func NewValidateCommand() (*ValidateCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"validate",
		gcmds.WithShort("Check a batch file without writing any script"),
		gcmds.WithLong("Reports unknown variants, parameter names the variant does not patch "+
			"(they would be ignored), missing required fields and duplicate job names."),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("config", parameters.ParameterTypeString, parameters.WithRequired(true), parameters.WithShortFlag("c"), parameters.WithHelp("Batch YAML file")),
			parameters.NewParameterDefinition("strict", parameters.ParameterTypeBool, parameters.WithDefault(false), parameters.WithHelp("Exit with an error when any issue is found")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &ValidateCommand{cd}, nil
}

func (c *ValidateCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &ValidateSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}
	cfg, err := batch.LoadConfig(s.Config)
	if err != nil {
		return err
	}

	issues := batch.Check(cfg, variant.Default)
	for _, is := range issues {
		row := types.NewRow(
			types.MRP("job", is.Job),
			types.MRP("kind", is.Kind),
			types.MRP("detail", is.Detail),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	if len(issues) == 0 {
		fmt.Fprintln(os.Stderr, output.Notef("%s: %d jobs, no issues", s.Config, len(cfg.Jobs)))
		return nil
	}
	if s.Strict {
		return fmt.Errorf("%s has %d issue(s)", s.Config, len(issues))
	}
	return nil
}

var _ gcmds.GlazeCommand = &ValidateCommand{}
