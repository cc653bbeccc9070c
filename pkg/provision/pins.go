package provision

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Pins holds the exact patch-level interpreter versions that pyenv installs
// for each interpreter-selecting TOXENV value.
type Pins struct {
	Py35 string `json:"py35"`
	Py36 string `json:"py36"`
	Py37 string `json:"py37"`
	Py38 string `json:"py38"`
}

// DefaultPins returns the versions baked in to the pipeline.
func DefaultPins() Pins {
	return Pins{
		Py35: "3.5.9",
		Py36: "3.6.10",
		Py37: "3.7.7",
		Py38: "3.8.2",
	}
}

// LoadPins reads version pins from a YAML file.  Unknown keys are an error,
// so a typoed entry can't silently fall back to a default.
func LoadPins(filename string) (Pins, error) {
	yamlBytes, err := os.ReadFile(filename)
	if err != nil {
		return Pins{}, err
	}
	pins := DefaultPins()
	if err := yaml.Unmarshal(yamlBytes, &pins, yaml.DisallowUnknownFields); err != nil {
		return Pins{}, fmt.Errorf("%s: %w", filename, err)
	}
	return pins, nil
}

func (p Pins) version(e ToxEnv) string {
	switch e {
	case ToxEnvPy35:
		return p.Py35
	case ToxEnvPy36:
		return p.Py36
	case ToxEnvPy37:
		return p.Py37
	case ToxEnvPy38:
		return p.Py38
	default:
		return ""
	}
}
