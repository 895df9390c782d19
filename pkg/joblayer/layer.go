package joblayer

import (
	"fmt"

	glzcms "github.com/go-go-golems/glazed/pkg/cmds"
	glzlayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/jobscript"
)

const JobLayerSlug = "job"

// JobSettings are the #SBATCH resource fields. They live in their own layer so site
// defaults can come from the config file or Vault.
type JobSettings struct {
	JobName     string `glazed.parameter:"job-name"`
	Partition   string `glazed.parameter:"partition"`
	NTasks      string `glazed.parameter:"ntasks"`
	CPUsPerTask string `glazed.parameter:"cpus-per-task"`
	Mem         string `glazed.parameter:"mem"`
	Time        string `glazed.parameter:"time"`
	OutputFile  string `glazed.parameter:"output-file"`
	Email       string `glazed.parameter:"email"`
	MailType    string `glazed.parameter:"mail-type"`
}

func NewJobLayer() (glzlayers.ParameterLayer, error) {
	return glzlayers.NewParameterLayer(
		JobLayerSlug,
		"SLURM job resources",
		glzlayers.WithParameterDefinitions(
			parameters.NewParameterDefinition("job-name", parameters.ParameterTypeString, parameters.WithHelp("Job name; also the script file name"), parameters.WithShortFlag("j")),
			parameters.NewParameterDefinition("partition", parameters.ParameterTypeString, parameters.WithHelp("Partition name (batch, highmem_p, or gpu_p)"), parameters.WithDefault("batch")),
			parameters.NewParameterDefinition("ntasks", parameters.ParameterTypeString, parameters.WithHelp("Number of tasks"), parameters.WithDefault("1")),
			parameters.NewParameterDefinition("cpus-per-task", parameters.ParameterTypeString, parameters.WithHelp("CPU core count per task"), parameters.WithDefault("1")),
			parameters.NewParameterDefinition("mem", parameters.ParameterTypeString, parameters.WithHelp("Memory per node (e.g. 600G)"), parameters.WithDefault("4G")),
			parameters.NewParameterDefinition("time", parameters.ParameterTypeString, parameters.WithHelp("Time limit (e.g. 6-23:59:59)"), parameters.WithDefault("1-00:00:00")),
			parameters.NewParameterDefinition("output-file", parameters.ParameterTypeString, parameters.WithHelp("Standard output log prefix (default: job name)")),
			parameters.NewParameterDefinition("email", parameters.ParameterTypeString, parameters.WithHelp("Where to send mail")),
			parameters.NewParameterDefinition("mail-type", parameters.ParameterTypeString, parameters.WithHelp("Mail events (BEGIN, END, FAIL, ALL)"), parameters.WithDefault("ALL")),
		),
	)
}

// AddJobLayerToCommand attaches the layer to a Glazed command description.
func AddJobLayerToCommand(c glzcms.Command) (glzcms.Command, error) {
	l, err := NewJobLayer()
	if err != nil {
		return nil, err
	}
	c.Description().Layers.Set(JobLayerSlug, l)
	return c, nil
}

// GetJobSettings returns parsed job settings from the ParsedLayers.
func GetJobSettings(parsed *glzlayers.ParsedLayers) (*JobSettings, error) {
	var s JobSettings
	if err := parsed.InitializeStruct(JobLayerSlug, &s); err != nil {
		return nil, fmt.Errorf("failed to parse job settings: %w", err)
	}
	return &s, nil
}

// Apply copies the resource fields onto req.
func (s *JobSettings) Apply(req *jobscript.JobRequest) {
	req.JobName = s.JobName
	req.Partition = s.Partition
	req.NTasks = s.NTasks
	req.CPUsPerTask = s.CPUsPerTask
	req.Mem = s.Mem
	req.Time = s.Time
	req.OutputFile = s.OutputFile
	req.Email = s.Email
	req.MailType = s.MailType
}
