package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/griffnb/core-tsdoc/internal/config"
	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/gen"
)

const (
	searchDirFlag      = "dir"
	archiveFlag        = "archive"
	excludeFlag        = "exclude"
	configFlag         = "config"
	rootsFlag          = "roots"
	titleFlag          = "title"
	outputFlag         = "output"
	outputTypesFlag    = "outputTypes"
	parseVendorFlag    = "parseVendor"
	parseExtensionFlag = "parseExtension"
	instanceNameFlag   = "instanceName"
	overridesFileFlag  = "overridesFile"
	graphFlag          = "graph"
	quietFlag          = "quiet"
	debugFlag          = "debug"
)

// sourceFlags select what is parsed; shared by every command.
var sourceFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories you want to parse, comma separated",
	},
	&cli.StringFlag{
		Name:    archiveFlag,
		Aliases: []string{"a"},
		Usage:   "Parse the sources bundled in a txtar archive instead of --dir",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories and files when searching, comma separated",
	},
	&cli.StringFlag{
		Name:    configFlag,
		Aliases: []string{"c"},
		Usage:   "Configuration file, " + config.DefaultFile + " in the working directory when not set",
	},
	&cli.StringFlag{
		Name:    rootsFlag,
		Aliases: []string{"r"},
		Usage:   "Type references to document, comma separated, e.g. 'Promise<Page<User>>,Account'",
	},
	&cli.StringFlag{
		Name:  overridesFileFlag,
		Value: gen.DefaultOverridesFile,
		Usage: "File to read global type overrides from.",
	},
	&cli.BoolFlag{
		Name:  parseVendorFlag,
		Usage: "Parse files in 'node_modules' folder, disabled by default",
	},
	&cli.StringFlag{
		Name:  parseExtensionFlag,
		Value: "",
		Usage: "Source file extension, .ts by default",
	},
}

var initFlags = append([]cli.Flag{
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./docs",
		Usage:   "Output directory for all the generated files (swagger.json, swagger.yaml)",
	},
	&cli.StringFlag{
		Name:    outputTypesFlag,
		Aliases: []string{"ot"},
		Value:   "json,yaml",
		Usage:   "Output types of generated files (swagger.json, swagger.yaml) like json,yaml",
	},
	&cli.StringFlag{
		Name:  instanceNameFlag,
		Value: "",
		Usage: "This parameter can be used to name different swagger document instances. It is optional.",
	},
	&cli.StringFlag{
		Name:    titleFlag,
		Aliases: []string{"t"},
		Usage:   "Document title, taken from the configuration or the search dir when not set",
	},
	&cli.StringFlag{
		Name:  graphFlag,
		Usage: "Also write the resolved reference graph as JSON to this file",
	},
}, sourceFlags...)

// setupLogging configures the console level and returns the progress
// logger writing to out.
func setupLogging(ctx *cli.Context, out io.Writer) (gen.Debugger, error) {
	level := console.LevelInfo
	switch {
	case ctx.Bool(debugFlag):
		level = console.LevelDebug
	case ctx.Bool(quietFlag):
		level = console.LevelError
	}
	if err := console.Initialize(level); err != nil {
		return nil, err
	}

	logger := log.New(out, "", log.LstdFlags)
	if ctx.Bool(quietFlag) {
		logger = log.New(io.Discard, "", log.LstdFlags)
	}
	return logger, nil
}

func sourceConfig(ctx *cli.Context, logger gen.Debugger) *gen.Config {
	return &gen.Config{
		Debugger:       logger,
		ConfigFile:     ctx.String(configFlag),
		SearchDir:      ctx.String(searchDirFlag),
		Archive:        ctx.String(archiveFlag),
		Excludes:       ctx.String(excludeFlag),
		ParseExtension: ctx.String(parseExtensionFlag),
		ParseVendor:    ctx.Bool(parseVendorFlag),
		Roots:          ctx.String(rootsFlag),
		OverridesFile:  ctx.String(overridesFileFlag),
	}
}

func initAction(ctx *cli.Context) error {
	logger, err := setupLogging(ctx, os.Stdout)
	if err != nil {
		return err
	}
	defer func() { _ = console.Logger.Sync() }()

	outputTypes := strings.Split(ctx.String(outputTypesFlag), ",")
	if len(outputTypes) == 0 {
		return fmt.Errorf("no output types specified")
	}

	config := sourceConfig(ctx, logger)
	config.OutputDir = ctx.String(outputFlag)
	config.OutputTypes = outputTypes
	config.InstanceName = ctx.String(instanceNameFlag)
	config.Title = ctx.String(titleFlag)
	config.GraphFile = ctx.String(graphFlag)

	return gen.New().Build(config)
}

func graphAction(ctx *cli.Context) error {
	// stdout carries the graph
	logger, err := setupLogging(ctx, os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = console.Logger.Sync() }()

	return gen.New().Graph(sourceConfig(ctx, logger), os.Stdout)
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Generate Swagger 2.0 definitions from TypeScript model declarations."
	app.Commands = []*cli.Command{
		{
			Name:    "init",
			Aliases: []string{"i"},
			Usage:   "Generate swagger documentation",
			Action:  initAction,
			Flags:   initFlags,
		},
		{
			Name:    "graph",
			Aliases: []string{"g"},
			Usage:   "Print the resolved reference graph as JSON",
			Action:  graphAction,
			Flags:   sourceFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		log.Fatal(err)
	}
}
