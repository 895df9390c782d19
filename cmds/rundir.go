package cmds

import (
	"context"

	glzcli "github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/middlewares"
	"github.com/go-go-golems/glazed/pkg/settings"
	"github.com/go-go-golems/glazed/pkg/types"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/rundir"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

type NextRunDirCommand struct{ *gcmds.CommandDescription }

type NextRunDirSettings struct {
	BaseDir  string   `glazed.parameter:"base-dir"`
	Variants []string `glazed.parameter:"variant"`
}

func NewNextRunDirCommand() (*NextRunDirCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"next-run-dir",
		gcmds.WithShort("Show the run directory the next job of each variant would get"),
		gcmds.WithLong("Counts the existing <variant>_* entries in --base-dir. The count is a "+
			"preview; nothing is reserved, and the job script counts again when it starts."),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("base-dir", parameters.ParameterTypeString, parameters.WithDefault("."), parameters.WithShortFlag("d"), parameters.WithHelp("Directory holding the run directories")),
			parameters.NewParameterDefinition("variant", parameters.ParameterTypeStringList, parameters.WithHelp("Variants to check; default all registered")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &NextRunDirCommand{cd}, nil
}

func (c *NextRunDirCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &NextRunDirSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	names := s.Variants
	if len(names) == 0 {
		for _, v := range variant.Variants() {
			names = append(names, string(v))
		}
	}

	for _, name := range names {
		existing, err := rundir.Count(s.BaseDir, name)
		if err != nil {
			return err
		}
		row := types.NewRow(
			types.MRP("base_dir", s.BaseDir),
			types.MRP("variant", name),
			types.MRP("existing", existing),
			types.MRP("next", rundir.Name(name, existing+1)),
		)
		if err := gp.AddRow(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &NextRunDirCommand{}
