package provision

import (
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// Pipeline models the Travis build matrix: which cells exist, how each cell
// is provisioned and tested, and what happens after a cell succeeds.  Cells
// are scheduled independently by Travis; nothing here couples them.
type Pipeline struct {
	Language string `yaml:"language"`
	Matrix   Matrix `yaml:"matrix"`

	Install      []string `yaml:"install"`
	Script       []string `yaml:"script"`
	AfterSuccess []string `yaml:"after_success"`

	Cache    Cache    `yaml:"cache"`
	Branches Branches `yaml:"branches"`
}

type Matrix struct {
	Include []MatrixEntry `yaml:"include"`
	// AllowFailures marks cells whose failure doesn't redden the overall
	// pipeline status (the nightly interpreter).
	AllowFailures []MatrixEntry `yaml:"allow_failures,omitempty"`
}

// MatrixEntry is one declared cell.  Linux cells name a python version; osx
// cells run `language: generic` and leave interpreter selection entirely to
// the provisioner.
type MatrixEntry struct {
	Python   string `yaml:"python,omitempty"`
	OS       string `yaml:"os,omitempty"`
	Language string `yaml:"language,omitempty"`
	Env      string `yaml:"env,omitempty"`
}

type Cache struct {
	Pip         bool     `yaml:"pip"`
	Directories []string `yaml:"directories"`
}

type Branches struct {
	Only []string `yaml:"only"`
}

// DefaultPipeline returns the pipeline as declared for this repository.
func DefaultPipeline() Pipeline {
	return Pipeline{
		Language: "python",
		Matrix: Matrix{
			Include: []MatrixEntry{
				{Python: "3.6", Env: "TOXENV=lint"},
				{Python: "3.6", Env: "TOXENV=packaging"},
				{Python: "3.5", Env: "TOXENV=py35"},
				{Python: "3.6", Env: "TOXENV=py36"},
				{Python: "3.7", Env: "TOXENV=py37"},
				{Python: "3.8", Env: "TOXENV=py38"},
				{Python: "nightly", Env: "TOXENV=py39"},
				{OS: "osx", Language: "generic", Env: "TOXENV=py35"},
				{OS: "osx", Language: "generic", Env: "TOXENV=py36"},
				{OS: "osx", Language: "generic", Env: "TOXENV=py37"},
			},
			AllowFailures: []MatrixEntry{
				{Python: "nightly"},
			},
		},
		Install: []string{"trytravis ci provision"},
		Script:  []string{"tox"},
		AfterSuccess: []string{
			"source ./.tox/$TOXENV/bin/activate",
			"pip install codecov",
			"codecov -e TRAVIS_OS_NAME,TOXENV",
		},
		Cache: Cache{
			Pip:         true,
			Directories: []string{"$HOME/.cache"},
		},
		Branches: Branches{
			Only: []string{"master"},
		},
	}
}

// RenderYAML marshals the pipeline to Travis config YAML.
func (p Pipeline) RenderYAML() ([]byte, error) {
	return yaml.Marshal(p)
}

// Cell is the (OS family, interpreter, TOXENV) tuple of one independently
// scheduled worker.
type Cell struct {
	OS           string
	Python       string
	ToxEnv       string
	AllowFailure bool
}

// Cells flattens the declared matrix in to cell tuples.
func (p Pipeline) Cells() []Cell {
	cells := make([]Cell, 0, len(p.Matrix.Include))
	for _, entry := range p.Matrix.Include {
		cell := Cell{
			OS:     entry.OS,
			Python: entry.Python,
			ToxEnv: strings.TrimPrefix(entry.Env, "TOXENV="),
		}
		if cell.OS == "" {
			cell.OS = "linux"
		}
		for _, allowed := range p.Matrix.AllowFailures {
			if allowed.Python != "" && allowed.Python == entry.Python {
				cell.AllowFailure = true
			}
		}
		cells = append(cells, cell)
	}
	return cells
}
