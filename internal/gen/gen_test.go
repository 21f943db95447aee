package gen

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"
)

const (
	petstoreDir    = "../../testdata/petstore"
	petstoreConfig = "../../testdata/petstore/.tsdoc.yaml"
	modelsArchive  = "../../testdata/models.txtar"
)

type recordingDebugger struct {
	lines []string
}

func (d *recordingDebugger) Printf(format string, v ...interface{}) {
	d.lines = append(d.lines, format)
}

func readSwagger(t *testing.T, file string) spec.Swagger {
	t.Helper()
	b, err := os.ReadFile(file)
	require.NoError(t, err)

	var swagger spec.Swagger
	require.NoError(t, json.Unmarshal(b, &swagger))
	return swagger
}

func definitionNames(swagger spec.Swagger) []string {
	names := make([]string, 0, len(swagger.Definitions))
	for name := range swagger.Definitions {
		names = append(names, name)
	}
	return names
}

func TestGen_Build(t *testing.T) {
	t.Run("writes json and yaml", func(t *testing.T) {
		// Arrange
		outputDir := t.TempDir()
		config := &Config{
			ConfigFile:  petstoreConfig,
			SearchDir:   petstoreDir,
			OutputDir:   outputDir,
			OutputTypes: []string{"json", "yaml"},
			Debugger:    &recordingDebugger{},
		}

		// Act
		err := New().Build(config)

		// Assert
		require.NoError(t, err)
		swagger := readSwagger(t, filepath.Join(outputDir, "swagger.json"))
		assert.Equal(t, "2.0", swagger.Swagger)
		assert.Equal(t, "Petstore", swagger.Info.Title)
		assert.Equal(t, "2.0.0", swagger.Info.Version)
		assert.ElementsMatch(t, []string{"ResultListPet", "Pet", "Owner"}, definitionNames(swagger))

		y, err := os.ReadFile(filepath.Join(outputDir, "swagger.yaml"))
		require.NoError(t, err)
		j, err := yaml.YAMLToJSON(y)
		require.NoError(t, err)
		var fromYAML spec.Swagger
		require.NoError(t, json.Unmarshal(j, &fromYAML))
		assert.ElementsMatch(t, definitionNames(swagger), definitionNames(fromYAML))
	})

	t.Run("command line values override the file", func(t *testing.T) {
		// Arrange
		outputDir := t.TempDir()
		config := &Config{
			ConfigFile:  petstoreConfig,
			SearchDir:   petstoreDir,
			Roots:       "Pet",
			Title:       "Adoption",
			Description: "Pets and owners",
			OutputDir:   outputDir,
			OutputTypes: []string{"json"},
		}

		// Act
		err := New().Build(config)

		// Assert
		require.NoError(t, err)
		swagger := readSwagger(t, filepath.Join(outputDir, "swagger.json"))
		assert.Equal(t, "Adoption", swagger.Info.Title)
		assert.Equal(t, "Pets and owners", swagger.Info.Description)
		assert.Equal(t, "2.0.0", swagger.Info.Version)
		assert.ElementsMatch(t, []string{"Pet", "Owner"}, definitionNames(swagger))
		assert.NoFileExists(t, filepath.Join(outputDir, "swagger.yaml"))
	})

	t.Run("instance name prefixes files", func(t *testing.T) {
		// Arrange
		outputDir := t.TempDir()
		config := &Config{
			ConfigFile:   petstoreConfig,
			SearchDir:    petstoreDir,
			OutputDir:    outputDir,
			OutputTypes:  []string{"yml", "unknown"},
			InstanceName: "pets",
		}

		// Act
		err := New().Build(config)

		// Assert
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(outputDir, "pets_swagger.yaml"))
		assert.NoFileExists(t, filepath.Join(outputDir, "pets_swagger.json"))
	})

	t.Run("archive with default title and graph file", func(t *testing.T) {
		// Arrange
		outputDir := t.TempDir()
		graphFile := filepath.Join(outputDir, "graph.json")
		config := &Config{
			Archive:     modelsArchive,
			Roots:       "User",
			OutputDir:   outputDir,
			OutputTypes: []string{"json"},
			GraphFile:   graphFile,
		}

		// Act
		err := New().Build(config)

		// Assert
		require.NoError(t, err)
		swagger := readSwagger(t, filepath.Join(outputDir, "swagger.json"))
		assert.Equal(t, "Models", swagger.Info.Title)
		assert.Contains(t, definitionNames(swagger), "User")
		assert.FileExists(t, graphFile)
	})

	t.Run("overrides file skips a type", func(t *testing.T) {
		// Arrange
		outputDir := t.TempDir()
		overrides := filepath.Join(outputDir, ".tsdoc-overrides")
		require.NoError(t, os.WriteFile(overrides, []byte("// owners are private\nskip Owner\n"), 0o600))
		config := &Config{
			ConfigFile:    petstoreConfig,
			SearchDir:     petstoreDir,
			Roots:         "Pet",
			OverridesFile: overrides,
			OutputDir:     outputDir,
			OutputTypes:   []string{"json"},
		}

		// Act
		err := New().Build(config)

		// Assert
		require.NoError(t, err)
		swagger := readSwagger(t, filepath.Join(outputDir, "swagger.json"))
		assert.Equal(t, []string{"Pet"}, definitionNames(swagger))
		assert.NotContains(t, swagger.Definitions["Pet"].Properties, "owner")
	})

	t.Run("missing default overrides file is ignored", func(t *testing.T) {
		config := &Config{
			ConfigFile:    petstoreConfig,
			SearchDir:     petstoreDir,
			OverridesFile: DefaultOverridesFile,
			OutputDir:     t.TempDir(),
			OutputTypes:   []string{"json"},
		}

		assert.NoError(t, New().Build(config))
	})

	t.Run("missing explicit overrides file", func(t *testing.T) {
		config := &Config{
			ConfigFile:    petstoreConfig,
			SearchDir:     petstoreDir,
			OverridesFile: filepath.Join(t.TempDir(), "missing"),
			OutputDir:     t.TempDir(),
		}

		err := New().Build(config)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not open overrides file")
	})

	t.Run("missing search dir", func(t *testing.T) {
		config := &Config{
			ConfigFile: petstoreConfig,
			SearchDir:  "../../testdata/nope",
			OutputDir:  t.TempDir(),
		}

		err := New().Build(config)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("unknown root", func(t *testing.T) {
		config := &Config{
			ConfigFile: petstoreConfig,
			SearchDir:  petstoreDir,
			Roots:      "Missing",
			OutputDir:  t.TempDir(),
		}

		err := New().Build(config)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")
	})
}

func TestGen_Graph(t *testing.T) {
	// Arrange
	var out bytes.Buffer
	config := &Config{
		ConfigFile: petstoreConfig,
		SearchDir:  petstoreDir,
	}

	// Act
	err := New().Graph(config, &out)

	// Assert
	require.NoError(t, err)
	var graph []graphReference
	require.NoError(t, json.Unmarshal(out.Bytes(), &graph))

	byKey := make(map[string]graphReference)
	for _, ref := range graph {
		byKey[ref.Key] = ref
	}
	require.Contains(t, byKey, "ResultListPet")
	list := byKey["ResultListPet"]
	assert.Equal(t, "ResultList", list.Name)
	assert.Equal(t, []string{"Pet"}, list.TypeArguments)

	owner := byKey["Owner"]
	require.NotNil(t, owner.AdditionalProperty)
	assert.Equal(t, "Extra contact fields", owner.AdditionalProperty.Description)

	types := make(map[string]string)
	for _, p := range list.Properties {
		types[p.Name] = p.Type
	}
	assert.Equal(t, "#Pet[]", types["items"])
}

func TestParseOverrides(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]string
		wantErr  string
	}{
		{
			name:     "replace and skip",
			input:    "replace Money number\nskip Secret\n",
			expected: map[string]string{"Money": "number", "Secret": ""},
		},
		{
			name:     "comments and blank lines",
			input:    "// header\n\n   \nskip Secret\n",
			expected: map[string]string{"Secret": ""},
		},
		{
			name:     "empty",
			input:    "",
			expected: map[string]string{},
		},
		{
			name:    "unknown verb",
			input:   "drop Secret\n",
			wantErr: "could not parse override: 'drop Secret'",
		},
		{
			name:    "too many fields",
			input:   "replace A B C\n",
			wantErr: "could not parse override",
		},
		{
			name:    "replace without target",
			input:   "replace A B\nreplace C\n",
			wantErr: "could not parse override: 'replace C'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			overrides, err := parseOverrides(strings.NewReader(tc.input))

			// Assert
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, overrides)
		})
	}
}

func TestSplitRoots(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"Pet", []string{"Pet"}},
		{"Pet, Owner", []string{"Pet", "Owner"}},
		{"Map<string, Pet>, Owner", []string{"Map<string, Pet>", "Owner"}},
		{"Promise<", []string{"Promise<"}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, splitRoots(tc.input))
		})
	}
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "Petstore", defaultTitle(&Config{}, []string{petstoreDir}))
	assert.Equal(t, "Pet Store Api", defaultTitle(&Config{Archive: "/tmp/pet-store_api.txtar"}, nil))
}
