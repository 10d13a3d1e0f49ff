// Package config loads takus task documents and the tool's own settings.
//
// A task document is YAML:
//
//	version: "1"
//	templates:
//	  go: &go
//	    envs: { CGO_ENABLED: "0" }
//	tasks:
//	  build:
//	    <<: *go
//	    cmds: ["go build ./..."]
//	    deps: [generate]
//	  generate:
//	    cmds: ["go generate ./..."]
//
// Anchors, aliases and merge keys are resolved while decoding; the templates
// block exists only to hold anchors and is otherwise ignored.
package config

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	taskerrors "github.com/maxkimambo/takus/internal/errors"
	"github.com/maxkimambo/takus/internal/logger"
	"github.com/maxkimambo/takus/internal/taskmanager"
)

// SupportedVersion is the document version this build understands. Other
// versions still load, with a warning.
const SupportedVersion = "1"

// DefaultFileNames are looked up, in order, when no file is given.
var DefaultFileNames = []string{"takus.yml", "takus.yaml"}

//go:embed takus.schema.json
var documentSchemaSource string

var documentSchema = jsonschema.MustCompileString("takus.schema.json", documentSchemaSource)

// TaskSpec is one entry of the tasks mapping.
type TaskSpec struct {
	Cmds []string          `yaml:"cmds"`
	Deps []string          `yaml:"deps,omitempty"`
	Dir  string            `yaml:"dir,omitempty"`
	Envs map[string]string `yaml:"envs,omitempty"`
}

// File models a task document.
type File struct {
	Version   string              `yaml:"version"`
	Templates yaml.Node           `yaml:"templates,omitempty"`
	Tasks     map[string]TaskSpec `yaml:"tasks"`

	path string
}

// Path returns the file the document was loaded from.
func (f *File) Path() string {
	return f.path
}

// TaskNames returns the task names in ascending order.
func (f *File) TaskNames() []string {
	names := make([]string, 0, len(f.Tasks))
	for name := range f.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry converts the document into a task registry.
func (f *File) Registry() (*taskmanager.Registry, error) {
	builder := taskmanager.NewRegistryBuilder()
	for _, name := range f.TaskNames() {
		spec := f.Tasks[name]
		builder.AddTask(name, spec.Cmds...)
		for _, dep := range spec.Deps {
			builder.AddDependency(name, dep)
		}
		if spec.Dir != "" {
			builder.SetDir(name, spec.Dir)
		}
		for key, value := range spec.Envs {
			builder.SetEnv(name, key, value)
		}
	}

	registry, err := builder.Build()
	if err != nil {
		return nil, taskerrors.NewConfigInvalidError(f.path, err)
	}
	return registry, nil
}

// FindFile returns explicit when set, otherwise the first of DefaultFileNames
// present in dir.
func FindFile(fs afero.Fs, dir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		exists, err := afero.Exists(fs, candidate)
		if err != nil {
			return "", taskerrors.NewConfigReadError(candidate, err)
		}
		if exists {
			logger.Op.Debugf("Using task file %s", candidate)
			return candidate, nil
		}
	}
	return "", taskerrors.NewConfigReadError(filepath.Join(dir, DefaultFileNames[0]), afero.ErrFileNotFound)
}

// Load reads and validates the task document at path.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, taskerrors.NewConfigReadError(path, err)
	}
	return Parse(path, data)
}

// Parse decodes and validates a task document. path is only used in errors.
func Parse(path string, data []byte) (*File, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, taskerrors.NewConfigParseError(path, err)
	}
	if err := documentSchema.Validate(normalizeKeys(doc)); err != nil {
		return nil, taskerrors.NewConfigInvalidError(path, err)
	}

	file := &File{path: path}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, taskerrors.NewConfigParseError(path, err)
	}

	if file.Version != SupportedVersion {
		logger.Op.Warnf("%s declares version %q, expected %q", path, file.Version, SupportedVersion)
	}
	logger.Op.Debugf("Loaded %d task(s) from %s (version %s)", len(file.Tasks), path, file.Version)
	return file, nil
}

// normalizeKeys turns the map[interface{}]interface{} values yaml produces for
// non-string keys (tasks: {1: ...}) into string keyed maps the schema
// validator accepts. Keys are rendered the way they decode into File.
func normalizeKeys(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, value := range v {
			name := ""
			if key != nil {
				name = fmt.Sprint(key)
			}
			m[name] = normalizeKeys(value)
		}
		return m
	case map[string]interface{}:
		for key, value := range v {
			v[key] = normalizeKeys(value)
		}
		return v
	case []interface{}:
		for i, value := range v {
			v[i] = normalizeKeys(value)
		}
		return v
	default:
		return v
	}
}
