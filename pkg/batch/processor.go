package batch

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/jobscript"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/output"
)

type Processor struct {
	Composer *jobscript.Composer
	// Out receives progress lines and dry-run scripts; nil means os.Stdout.
	Out io.Writer
}

type ProcessorOptions struct {
	OutputDir       string
	ContinueOnError bool
	DryRun          bool
	Jobs            []string
}

// Result lists the scripts written and the jobs that failed, by job name.
type Result struct {
	Written []string
	Failed  map[string]error
}

func (p *Processor) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Process generates one script per selected job, sequentially.
func (p *Processor) Process(cfg *Config, opts ProcessorOptions) (*Result, error) {
	jobs, unmatched := SelectJobs(cfg.Jobs, opts.Jobs)
	for _, n := range unmatched {
		fmt.Fprintln(p.out(), output.Warnf("no job named %q in batch file", n))
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs selected")
	}
	log.Debug().Int("jobs", len(jobs)).Int("configured", len(cfg.Jobs)).Msg("batch start")

	res := &Result{Failed: map[string]error{}}
	w := p.out()
	for i, job := range jobs {
		req := cfg.Request(job)
		fmt.Fprint(w, output.JobHeader(i+1, len(jobs), req.JobName, string(req.Variant)))
		if strings.TrimSpace(job.Description) != "" {
			fmt.Fprintln(w, output.Notef("  %s", job.Description))
		}

		path, err := p.processJob(cfg, job, req, opts)
		if err != nil {
			fmt.Fprintln(w, output.Failed(req.JobName, err))
			res.Failed[req.JobName] = err
			if !opts.ContinueOnError {
				return res, fmt.Errorf("job '%s' failed: %w", req.JobName, err)
			}
			continue
		}
		if path != "" {
			res.Written = append(res.Written, path)
		}
	}

	if len(res.Failed) > 0 {
		fmt.Fprintf(w, "\nCompleted with %d errors out of %d jobs\n", len(res.Failed), len(jobs))
		return res, fmt.Errorf("batch processing completed with %d errors", len(res.Failed))
	}
	fmt.Fprintf(w, "\n✓ All %d jobs completed successfully\n", len(jobs))
	return res, nil
}

func (p *Processor) processJob(cfg *Config, job Job, req jobscript.JobRequest, opts ProcessorOptions) (string, error) {
	if opts.DryRun {
		content, err := p.Composer.Compose(req)
		if err != nil {
			return "", err
		}
		header := fmt.Sprintf("# === %s (dry-run) ===\n", req.ScriptName())
		return "", output.Write("-", []byte(header+content+"\n"), output.WriteOptions{Stdout: p.out()})
	}

	dir := ResolveOutputDir(cfg, job, opts.OutputDir)
	log.Debug().Str("job", req.JobName).Str("dir", dir).Msg("batch job output")
	path, err := p.Composer.Write(dir, req)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(p.out(), output.Generated(req.ScriptName(), dir))
	return path, nil
}

// ResolveOutputDir picks the first non-empty of: the command-line override, the job's
// output_dir, the batch file's output_dir, the batch.output_dir config key, ".".
func ResolveOutputDir(cfg *Config, job Job, override string) string {
	for _, d := range []string{override, job.OutputDir, cfg.OutputDir, viper.GetString("batch.output_dir")} {
		if strings.TrimSpace(d) != "" {
			return d
		}
	}
	return "."
}
