package gen

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-openapi/spec"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/core-tsdoc/internal/config"
	"github.com/griffnb/core-tsdoc/internal/console"
	"github.com/griffnb/core-tsdoc/internal/domain"
	"github.com/griffnb/core-tsdoc/internal/orchestrator"
)

var open = os.Open

// DefaultOverridesFile is the location the generator will look for type overrides.
const DefaultOverridesFile = ".tsdoc-overrides"

// DefaultInstanceName is the instance name that adds no file name prefix.
const DefaultInstanceName = "swagger"

type genTypeWriter func(*Config, *spec.Swagger) error

// Gen presents a generate tool for TypeScript model documentation.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      console.Logger,
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"json": gen.writeJSONSwagger,
		"yaml": gen.writeYAMLSwagger,
		"yml":  gen.writeYAMLSwagger,
	}

	return &gen
}

// Config presents Gen configurations. Values set here take precedence over
// the configuration file.
type Config struct {
	Debugger Debugger

	// ConfigFile the YAML configuration; empty looks for config.DefaultFile
	ConfigFile string

	// SearchDir the directories to parse, comma separated if multiple
	SearchDir string

	// Archive a txtar bundle of sources parsed instead of SearchDir
	Archive string

	// Excludes dirs in SearchDir, comma separated
	Excludes string

	// ParseExtension the source file extension
	ParseExtension string

	// ParseVendor whether node_modules should be parsed
	ParseVendor bool

	// Roots type references to document, comma separated; commas inside
	// type arguments do not split
	Roots string

	// Title, Version and Description of the document
	Title       string
	Version     string
	Description string

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// InstanceName is used to get distinct names for different swagger documents in the
	// same project. The default value is "swagger".
	InstanceName string

	// OverridesFile defines global type overrides.
	OverridesFile string

	// GraphFile receives a JSON dump of the resolved reference table
	GraphFile string
}

// Build builds the swagger documents for the configured sources.
func (g *Gen) Build(config *Config) error {
	service, swagger, err := g.run(config)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return err
	}

	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if typeWriter, ok := g.outputTypeMap[outputType]; ok {
			if err := typeWriter(config, swagger); err != nil {
				return err
			}
		} else {
			console.Logger.Warn("output type '%s' not supported", outputType)
		}
	}

	if config.GraphFile != "" {
		if err := g.writeGraphFile(config.GraphFile, service); err != nil {
			return err
		}
	}

	return nil
}

// Graph resolves the configured roots and writes the reference table to w.
func (g *Gen) Graph(config *Config, w io.Writer) error {
	service, _, err := g.run(config)
	if err != nil {
		return err
	}
	return g.writeGraph(w, service)
}

func (g *Gen) run(config *Config) (*orchestrator.Service, *spec.Swagger, error) {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}
	if config.InstanceName == "" {
		config.InstanceName = DefaultInstanceName
	}

	settings, err := g.settings(config)
	if err != nil {
		return nil, nil, err
	}

	var searchDirs []string
	if config.Archive == "" {
		searchDirs = splitList(config.SearchDir)
		for _, searchDir := range searchDirs {
			if _, err := os.Stat(searchDir); os.IsNotExist(err) {
				return nil, nil, fmt.Errorf("dir: %s does not exist", searchDir)
			}
		}
	}

	overrides, err := g.overrides(config)
	if err != nil {
		return nil, nil, err
	}

	vocab, err := settings.ResolverVocabulary()
	if err != nil {
		return nil, nil, err
	}

	title := settings.Info.Title
	if title == "" {
		title = defaultTitle(config, searchDirs)
	}

	console.Logger.Debug("Generate swagger docs....")

	orc := orchestrator.New(&orchestrator.Config{
		ParseVendor:    settings.ParseVendor,
		Excludes:       settings.ExcludeSet(),
		ParseExtension: settings.Extension,
		Roots:          settings.Roots,
		Vocabulary:     &vocab,
		Overrides:      overrides,
		Title:          title,
		Version:        settings.Info.Version,
		Description:    settings.Info.Description,
		Debug:          g.debug,
	})

	ctx := context.Background()
	var swagger *spec.Swagger
	if config.Archive != "" {
		swagger, err = orc.ParseArchive(ctx, config.Archive)
	} else {
		swagger, err = orc.Parse(ctx, searchDirs)
	}
	if err != nil {
		return nil, nil, err
	}

	return orc, swagger, nil
}

// settings loads the configuration file and applies the values given on
// the command line.
func (g *Gen) settings(c *Config) (*config.Config, error) {
	settings, err := config.Load(c.ConfigFile)
	if err != nil {
		return nil, err
	}

	if roots := splitRoots(c.Roots); len(roots) > 0 {
		settings.Roots = roots
	}
	if excludes := splitList(c.Excludes); len(excludes) > 0 {
		settings.Excludes = append(settings.Excludes, excludes...)
	}
	if c.ParseExtension != "" {
		settings.Extension = c.ParseExtension
	}
	if c.ParseVendor {
		settings.ParseVendor = true
	}
	if c.Title != "" {
		settings.Info.Title = c.Title
	}
	if c.Version != "" {
		settings.Info.Version = c.Version
	}
	if c.Description != "" {
		settings.Info.Description = c.Description
	}
	return settings, nil
}

func (g *Gen) overrides(config *Config) (map[string]string, error) {
	if config.OverridesFile == "" {
		return nil, nil
	}

	overridesFile, err := open(config.OverridesFile)
	if err != nil {
		// Don't bother reporting if the default file is missing; assume there are no overrides
		if config.OverridesFile == DefaultOverridesFile && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not open overrides file: %w", err)
	}
	defer overridesFile.Close()

	console.Logger.Debug("Using overrides from %s", config.OverridesFile)
	return parseOverrides(overridesFile)
}

// defaultTitle names the document after the archive or the first search dir.
func defaultTitle(config *Config, searchDirs []string) string {
	source := config.Archive
	if source == "" && len(searchDirs) > 0 {
		source = searchDirs[0]
	}
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}

	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(strings.ToLower(name))
}

func (g *Gen) outputFileName(config *Config, filename string) string {
	if config.InstanceName != DefaultInstanceName {
		filename = config.InstanceName + "_" + filename
	}
	return path.Join(config.OutputDir, filename)
}

func (g *Gen) writeJSONSwagger(config *Config, swagger *spec.Swagger) error {
	jsonFileName := g.outputFileName(config, "swagger.json")

	b, err := g.jsonIndent(swagger)
	if err != nil {
		return err
	}

	err = g.writeFile(b, jsonFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create swagger.json at %+v", jsonFileName)

	return nil
}

func (g *Gen) writeYAMLSwagger(config *Config, swagger *spec.Swagger) error {
	yamlFileName := g.outputFileName(config, "swagger.yaml")

	b, err := g.json(swagger)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return fmt.Errorf("cannot covert json to yaml error: %s", err)
	}

	err = g.writeFile(y, yamlFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create swagger.yaml at %+v", yamlFileName)

	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

// Read and parse the overrides file.
func parseOverrides(r io.Reader) (map[string]string, error) {
	overrides := make(map[string]string)
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments
		if len(line) > 1 && line[0:2] == "//" {
			continue
		}

		parts := strings.Fields(line)

		switch len(parts) {
		case 0:
			// only whitespace
			continue
		case 2:
			// either a skip or malformed
			if parts[0] != "skip" {
				return nil, fmt.Errorf("could not parse override: '%s'", line)
			}

			overrides[parts[1]] = ""
		case 3:
			// either a replace or malformed
			if parts[0] != "replace" {
				return nil, fmt.Errorf("could not parse override: '%s'", line)
			}

			overrides[parts[1]] = parts[2]
		default:
			return nil, fmt.Errorf("could not parse override: '%s'", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading overrides file: %w", err)
	}

	return overrides, nil
}

// splitList converts a comma-separated string to a slice.
func splitList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

// splitRoots splits comma-separated type references, keeping the commas
// inside type arguments: "Map<A, B>, User" -> ["Map<A, B>", "User"].
func splitRoots(roots string) []string {
	if strings.TrimSpace(roots) == "" {
		return nil
	}
	parts := domain.SplitTypeArguments(roots)
	if parts == nil {
		// unbalanced; let the root parser report it
		return []string{strings.TrimSpace(roots)}
	}
	return parts
}
