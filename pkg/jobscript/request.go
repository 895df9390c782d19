package jobscript

import (
	"fmt"
	"path"
	"strings"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

// DefaultMaxParticles is passed to the final phantomsetup call as --maxp. It is set well
// above any particle count the tables produce so the setup never has to be re-run.
const DefaultMaxParticles int64 = 100000000

// JobRequest is everything needed to compose one job script. Resource fields are strings
// and are copied into the #SBATCH directives verbatim.
type JobRequest struct {
	JobName     string `yaml:"job_name"`
	Partition   string `yaml:"partition,omitempty"`
	NTasks      string `yaml:"ntasks,omitempty"`
	CPUsPerTask string `yaml:"cpus_per_task,omitempty"`
	Mem         string `yaml:"mem,omitempty"`
	Time        string `yaml:"time,omitempty"`
	OutputFile  string `yaml:"output_file,omitempty"`
	Email       string `yaml:"email,omitempty"`
	MailType    string `yaml:"mail_type,omitempty"`

	Variant variant.Variant   `yaml:"variant,omitempty"`
	Params  map[string]string `yaml:"params,omitempty"`

	// HomeDirectory is the home directory on the cluster; runs are created under
	// <home>/runs.
	HomeDirectory string `yaml:"home,omitempty"`
	MaxParticles  int64  `yaml:"max_particles,omitempty"`
}

// Validate checks the fields the composer cannot do without.
func (r JobRequest) Validate() error {
	if strings.TrimSpace(r.JobName) == "" {
		return fmt.Errorf("job name is required")
	}
	if strings.ContainsAny(r.JobName, `/\`) {
		return fmt.Errorf("job name %q must not contain a path separator", r.JobName)
	}
	if strings.TrimSpace(string(r.Variant)) == "" {
		return fmt.Errorf("job %s: variant is required", r.JobName)
	}
	if strings.TrimSpace(r.HomeDirectory) == "" {
		return fmt.Errorf("job %s: home directory is required", r.JobName)
	}
	if r.MaxParticles < 0 {
		return fmt.Errorf("job %s: max particles must not be negative", r.JobName)
	}
	return nil
}

// ScriptName is the file name the script is written under.
func (r JobRequest) ScriptName() string {
	return r.JobName + ".sh"
}

// RunsDirectory is the base directory run directories are numbered in.
func (r JobRequest) RunsDirectory() string {
	return path.Join(r.HomeDirectory, "runs")
}

func (r JobRequest) outputFile() string {
	if r.OutputFile != "" {
		return r.OutputFile
	}
	return r.JobName
}

func (r JobRequest) maxParticles() int64 {
	if r.MaxParticles > 0 {
		return r.MaxParticles
	}
	return DefaultMaxParticles
}

// WithDefaults fills every empty field of r from d. Params are merged, r's keys win.
func (r JobRequest) WithDefaults(d JobRequest) JobRequest {
	out := r
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&out.JobName, d.JobName)
	fill(&out.Partition, d.Partition)
	fill(&out.NTasks, d.NTasks)
	fill(&out.CPUsPerTask, d.CPUsPerTask)
	fill(&out.Mem, d.Mem)
	fill(&out.Time, d.Time)
	fill(&out.OutputFile, d.OutputFile)
	fill(&out.Email, d.Email)
	fill(&out.MailType, d.MailType)
	fill(&out.HomeDirectory, d.HomeDirectory)
	if out.Variant == "" {
		out.Variant = d.Variant
	}
	if out.MaxParticles == 0 {
		out.MaxParticles = d.MaxParticles
	}

	if len(d.Params) > 0 || len(r.Params) > 0 {
		merged := make(map[string]string, len(d.Params)+len(r.Params))
		for k, v := range d.Params {
			merged[k] = v
		}
		for k, v := range r.Params {
			merged[k] = v
		}
		out.Params = merged
	}
	return out
}
