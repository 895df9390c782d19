package batch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/jobscript"
)

// Config represents a batch file: shared defaults plus one entry per job script.
type Config struct {
	OutputDir string               `yaml:"output_dir,omitempty"`
	Defaults  jobscript.JobRequest `yaml:"defaults,omitempty"`
	Jobs      []Job                `yaml:"jobs"`
}

// Job is a JobRequest plus batch-only settings. Empty request fields fall back to the
// batch defaults.
type Job struct {
	jobscript.JobRequest `yaml:",inline"`
	Description          string `yaml:"description,omitempty"`
	OutputDir            string `yaml:"output_dir,omitempty"`
}

// Request returns the job's request with the batch defaults applied.
func (c *Config) Request(j Job) jobscript.JobRequest {
	return j.JobRequest.WithDefaults(c.Defaults)
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse batch YAML: %w", err)
	}
	return &config, nil
}
