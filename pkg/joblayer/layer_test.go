package joblayer

import (
	"testing"

	glayers "github.com/go-go-golems/glazed/pkg/cmds/layers"
	"github.com/go-go-golems/glazed/pkg/cmds/middlewares"
	"github.com/go-go-golems/glazed/pkg/cmds/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/jobscript"
)

func TestJobLayerDefaults(t *testing.T) {
	l, err := NewJobLayer()
	require.NoError(t, err)
	parsed := glayers.NewParsedLayers()
	require.NoError(t, middlewares.ExecuteMiddlewares(
		glayers.NewParameterLayers(glayers.WithLayers(l)), parsed,
		middlewares.SetFromDefaults(parameters.WithParseStepSource("defaults")),
	))

	s, err := GetJobSettings(parsed)
	require.NoError(t, err)
	assert.Equal(t, JobSettings{
		Partition:   "batch",
		NTasks:      "1",
		CPUsPerTask: "1",
		Mem:         "4G",
		Time:        "1-00:00:00",
		MailType:    "ALL",
	}, *s)
}

func TestApply(t *testing.T) {
	s := JobSettings{
		JobName:     "disc_hr",
		Partition:   "highmem_p",
		NTasks:      "1",
		CPUsPerTask: "64",
		Mem:         "600G",
		Time:        "6-23:59:59",
		OutputFile:  "disc_hr_log",
		Email:       "lab@example.edu",
		MailType:    "END",
	}
	req := jobscript.JobRequest{Variant: "disc", HomeDirectory: "/home/lab"}
	s.Apply(&req)

	assert.Equal(t, jobscript.JobRequest{
		JobName:       "disc_hr",
		Partition:     "highmem_p",
		NTasks:        "1",
		CPUsPerTask:   "64",
		Mem:           "600G",
		Time:          "6-23:59:59",
		OutputFile:    "disc_hr_log",
		Email:         "lab@example.edu",
		MailType:      "END",
		Variant:       "disc",
		HomeDirectory: "/home/lab",
	}, req)
}
