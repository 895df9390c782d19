// Package jobscript composes SLURM submission scripts that build Phantom, run
// phantomsetup, patch the generated .setup file and launch the simulation.
package jobscript

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/output"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/patch"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/rundir"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

//go:embed templates/job.sh.tmpl
var templatesFS embed.FS

const templateName = "job.sh.tmpl"

var scriptTemplate = template.Must(
	template.New(templateName).
		Option("missingkey=error").
		Funcs(template.FuncMap{"quote": patch.QuoteArg}).
		ParseFS(templatesFS, "templates/"+templateName),
)

// Bootstrap lines run before anything else in the job. They are the same for every
// variant.
var Bootstrap = []string{
	"source ~/.bashrc                                # Ensures ~/.bashrc file is sourced",
	"ml SPLASH/3.10.3-foss-2022a                     # Loads `splash` module",
}

// PromptAnswers is fed to the first, interactive phantomsetup run as a printf format.
const PromptAnswers = `1\n1\n0\nno\nno\n0\n0.100\n100\n`

// PatchGenerator renders the .setup edits for a variant.
type PatchGenerator interface {
	Generate(v variant.Variant, params map[string]string, target string) ([]string, error)
}

// RunDirAllocator previews the run directory a job would get.
type RunDirAllocator interface {
	Allocate(baseDir, variant string) (string, error)
}

// AllocatorFunc adapts a function to RunDirAllocator.
type AllocatorFunc func(baseDir, variant string) (string, error)

func (f AllocatorFunc) Allocate(baseDir, variant string) (string, error) {
	return f(baseDir, variant)
}

type Composer struct {
	Patches   PatchGenerator
	Allocator RunDirAllocator
}

// NewComposer wires the built-in variant tables and the filesystem allocator.
func NewComposer() *Composer {
	return &Composer{
		Patches:   patch.NewGenerator(variant.Default),
		Allocator: AllocatorFunc(rundir.Allocate),
	}
}

type templateData struct {
	JobName       string
	Partition     string
	NTasks        string
	CPUsPerTask   string
	Mem           string
	Time          string
	OutputFile    string
	Email         string
	MailType      string
	Variant       variant.Variant
	MaxParticles  int64
	RunsDir       string
	PreviewRunDir string

	Bootstrap        []string
	AllocateFragment string
	PromptAnswers    string
	Patches          []string
}

// Compose renders the full job script for req.
func (c *Composer) Compose(req JobRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	patches, err := c.Patches.Generate(req.Variant, req.Params, patch.SetupFile(req.Variant))
	if err != nil {
		return "", err
	}

	runsDir := req.RunsDirectory()
	preview, err := c.Allocator.Allocate(runsDir, string(req.Variant))
	if err != nil {
		// the script allocates for real when it runs; the preview is informational only
		log.Warn().Err(err).Str("runs_dir", runsDir).Msg("could not preview run directory")
		preview = "unknown"
	}

	data := templateData{
		JobName:          req.JobName,
		Partition:        req.Partition,
		NTasks:           req.NTasks,
		CPUsPerTask:      req.CPUsPerTask,
		Mem:              req.Mem,
		Time:             req.Time,
		OutputFile:       req.outputFile(),
		Email:            req.Email,
		MailType:         req.MailType,
		Variant:          req.Variant,
		MaxParticles:     req.maxParticles(),
		RunsDir:          runsDir,
		PreviewRunDir:    preview,
		Bootstrap:        Bootstrap,
		AllocateFragment: rundir.ShellFragment(string(req.Variant)),
		PromptAnswers:    PromptAnswers,
		Patches:          patches,
	}

	var buf bytes.Buffer
	if err := scriptTemplate.ExecuteTemplate(&buf, templateName, data); err != nil {
		return "", fmt.Errorf("failed to render job script for %s: %w", req.JobName, err)
	}
	log.Debug().Str("job", req.JobName).Str("variant", string(req.Variant)).Int("patches", len(patches)).Int("bytes", buf.Len()).Msg("job script composed")
	return buf.String(), nil
}

// Write composes req and writes it to <dir>/<job_name>.sh, returning the file path.
// Nothing is written when composing fails.
func (c *Composer) Write(dir string, req JobRequest) (string, error) {
	content, err := c.Compose(req)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, req.ScriptName())
	if err := output.EnsureDir(dir); err != nil {
		return "", &FileWriteError{Dir: dir, Path: path, Err: err}
	}
	if err := output.Write(path, []byte(content), output.WriteOptions{}); err != nil {
		return "", &FileWriteError{Dir: dir, Path: path, Err: err}
	}
	log.Info().Str("file", req.ScriptName()).Str("dir", dir).Msg("SLURM script generated")
	return path, nil
}
