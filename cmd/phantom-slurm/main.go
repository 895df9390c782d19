package main

import (
	clay "github.com/go-go-golems/clay/pkg"
	"github.com/go-go-golems/glazed/pkg/cli"
	gcmds "github.com/go-go-golems/glazed/pkg/cmds"
	"github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/logging"
	"github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/go-go-golems/glazed/pkg/help"
	help_cmd "github.com/go-go-golems/glazed/pkg/help/cmd"
	"github.com/spf13/cobra"

	appcmds "github.com/go-go-golems/phantom-slurm-generator/cmds"
	appdoc "github.com/go-go-golems/phantom-slurm-generator/pkg/doc"
	vglazed "github.com/go-go-golems/phantom-slurm-generator/pkg/glazed"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/joblayer"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/output"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/vaultlayer"
)

var version = "dev"

var noColor bool

func getMiddlewares(parsedLayers *layers.ParsedLayers, cmd *cobra.Command, args []string) ([]middlewares.Middleware, error) {
	commandSettings := &cli.CommandSettings{}
	err := parsedLayers.InitializeStruct(cli.CommandSettingsSlug, commandSettings)
	if err != nil {
		return nil, err
	}

	mw_ := []middlewares.Middleware{
		middlewares.ParseFromCobraCommand(cmd,
			parameters.WithParseStepSource("cobra"),
		),
		middlewares.GatherArguments(args,
			parameters.WithParseStepSource("arguments"),
		),
		// Vault values rank below flags and above config/defaults. The vault layer's own
		// flags are parsed again inside so --vault-defaults-path is visible to it.
		vglazed.UpdateFromVault([]string{joblayer.JobLayerSlug},
			parameters.WithParseStepSource("vault"),
		),
		middlewares.WrapWithWhitelistedLayers(
			[]string{vaultlayer.VaultLayerSlug},
			middlewares.ParseFromCobraCommand(cmd, parameters.WithParseStepSource("cobra")),
		),
	}

	mw_ = append(mw_,
		middlewares.GatherFlagsFromViper(parameters.WithParseStepSource("viper")),
		middlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	)

	return mw_, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "phantom-slurm",
		Short:   "Generate SLURM job scripts for Phantom disc simulations",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			err := logging.InitLoggerFromViper()
			cobra.CheckErr(err)
			output.InitConsole(noColor)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored console output")

	err := clay.InitViper("phantom-slurm", rootCmd)
	cobra.CheckErr(err)

	hs := help.NewHelpSystem()
	err = appdoc.AddDocToHelpSystem(hs)
	cobra.CheckErr(err)
	help_cmd.SetupCobraRootCommand(hs, rootCmd)

	opts := []cli.CobraOption{
		cli.WithParserConfig(cli.CobraParserConfig{
			MiddlewaresFunc: getMiddlewares,
		}),
	}

	constructors := []func() (gcmds.Command, error){
		func() (gcmds.Command, error) { return appcmds.NewGenerateCommand() },
		func() (gcmds.Command, error) { return appcmds.NewBatchCommand() },
		func() (gcmds.Command, error) { return appcmds.NewVariantsCommand() },
		func() (gcmds.Command, error) { return appcmds.NewNextRunDirCommand() },
		func() (gcmds.Command, error) { return appcmds.NewValidateCommand() },
	}
	for _, newCommand := range constructors {
		c, err := newCommand()
		cobra.CheckErr(err)
		cmd, err := cli.BuildCobraCommand(c, opts...)
		cobra.CheckErr(err)
		rootCmd.AddCommand(cmd)
	}

	cobra.CheckErr(rootCmd.Execute())
}
