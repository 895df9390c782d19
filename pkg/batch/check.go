package batch

import (
	"strconv"
	"strings"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/patch"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

// Issue kinds reported by Check.
const (
	IssueMissingField   = "missing_field"
	IssueUnknownVariant = "unknown_variant"
	IssueUnknownParam   = "unknown_param"
	IssueDuplicateJob   = "duplicate_job"
)

type Issue struct {
	Job    string
	Kind   string
	Detail string
}

// Check inspects a batch file without composing anything. Unknown parameter keys are
// reported here even though generation itself ignores them.
func Check(cfg *Config, reg *variant.Registry) []Issue {
	var issues []Issue
	seen := map[string]struct{}{}

	for i, job := range cfg.Jobs {
		req := cfg.Request(job)
		name := req.JobName
		if strings.TrimSpace(name) == "" {
			issues = append(issues, Issue{Job: "#" + strconv.Itoa(i+1), Kind: IssueMissingField, Detail: "job_name"})
		} else if _, ok := seen[name]; ok {
			issues = append(issues, Issue{Job: name, Kind: IssueDuplicateJob, Detail: "job_name is used more than once; scripts would overwrite each other"})
		} else {
			seen[name] = struct{}{}
		}
		if name == "" {
			name = "#" + strconv.Itoa(i+1)
		}

		for _, f := range []struct{ field, value string }{
			{"partition", req.Partition},
			{"email", req.Email},
			{"home", req.HomeDirectory},
		} {
			if strings.TrimSpace(f.value) == "" {
				issues = append(issues, Issue{Job: name, Kind: IssueMissingField, Detail: f.field})
			}
		}

		if req.Variant == "" {
			issues = append(issues, Issue{Job: name, Kind: IssueMissingField, Detail: "variant"})
			continue
		}
		specs, err := reg.SpecsFor(req.Variant)
		if err != nil {
			issues = append(issues, Issue{Job: name, Kind: IssueUnknownVariant, Detail: err.Error()})
			continue
		}
		for _, k := range patch.UnknownKeys(specs, req.Params) {
			issues = append(issues, Issue{Job: name, Kind: IssueUnknownParam, Detail: k})
		}
	}
	return issues
}
