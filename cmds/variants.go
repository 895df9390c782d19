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

	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

type VariantsCommand struct{ *gcmds.CommandDescription }

type VariantsSettings struct {
	Variants []string `glazed.parameter:"variant"`
}

func NewVariantsCommand() (*VariantsCommand, error) {
	glazedLayers, err := settings.NewGlazedParameterLayers()
	if err != nil {
		return nil, err
	}
	commandLayer, err := glzcli.NewCommandSettingsLayer()
	if err != nil {
		return nil, err
	}
	cd := gcmds.NewCommandDescription(
		"variants",
		gcmds.WithShort("List simulation variants and the setup parameters each one patches"),
		gcmds.WithFlags(
			parameters.NewParameterDefinition("variant", parameters.ParameterTypeStringList, parameters.WithHelp("Only show these variants; default all")),
		),
		gcmds.WithLayersList(glazedLayers, commandLayer),
	)
	return &VariantsCommand{cd}, nil
}

func (c *VariantsCommand) RunIntoGlazeProcessor(ctx context.Context, parsed *glayers.ParsedLayers, gp middlewares.Processor) error {
	s := &VariantsSettings{}
	if err := parsed.InitializeStruct(glayers.DefaultSlug, s); err != nil {
		return err
	}

	selected := variant.Variants()
	if len(s.Variants) > 0 {
		selected = nil
		for _, name := range s.Variants {
			selected = append(selected, variant.Variant(name))
		}
	}

	for _, v := range selected {
		specs, err := variant.SpecsFor(v)
		if err != nil {
			return err
		}
		for i, spec := range specs {
			row := types.NewRow(
				types.MRP("variant", string(v)),
				types.MRP("index", i),
				types.MRP("line", spec.Line),
				types.MRP("name", spec.Name),
				types.MRP("default", spec.Default),
				types.MRP("description", spec.Description),
			)
			if err := gp.AddRow(ctx, row); err != nil {
				return err
			}
		}
	}
	return nil
}

var _ gcmds.GlazeCommand = &VariantsCommand{}
