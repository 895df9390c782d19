package jobscript

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/patch"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/rundir"
	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

func testRequest() JobRequest {
	return JobRequest{
		JobName:       "disc-run",
		Partition:     "highmem_p",
		NTasks:        "1",
		CPUsPerTask:   "32",
		Mem:           "600G",
		Time:          "6-23:59:59",
		Email:         "someone@example.edu",
		MailType:      "END,FAIL",
		Variant:       variant.Disc,
		Params:        map[string]string{"np": "2000000", "not_a_field": "1"},
		HomeDirectory: "/home/someone",
	}
}

func fixedComposer(preview string) *Composer {
	return &Composer{
		Patches: patch.NewGenerator(variant.Default),
		Allocator: AllocatorFunc(func(string, string) (string, error) {
			return preview, nil
		}),
	}
}

func linesWithPrefix(script, prefix string) []string {
	var out []string
	for _, l := range strings.Split(script, "\n") {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

func TestCompose_ResourceDirectives(t *testing.T) {
	req := testRequest()
	script, err := fixedComposer("disc_01").Compose(req)
	require.NoError(t, err)

	directives := linesWithPrefix(script, "#SBATCH ")
	want := []string{
		"--job-name=" + req.JobName,
		"--partition=" + req.Partition,
		"--ntasks=" + req.NTasks,
		"--cpus-per-task=" + req.CPUsPerTask,
		"--mem=" + req.Mem,
		"--time=" + req.Time,
		"--output=" + req.JobName + "_%j.out",
		"--mail-user=" + req.Email,
		"--mail-type=" + req.MailType,
	}
	require.Len(t, directives, len(want))
	for i, w := range want {
		fields := strings.Fields(directives[i])
		require.GreaterOrEqual(t, len(fields), 2)
		assert.Equal(t, w, fields[1])
	}
}

func TestCompose_OneLinePerPatch(t *testing.T) {
	req := testRequest()
	script, err := fixedComposer("disc_01").Compose(req)
	require.NoError(t, err)

	patches, err := patch.NewGenerator(variant.Default).Generate(req.Variant, req.Params, "disc.setup")
	require.NoError(t, err)

	got := linesWithPrefix(script, "sed -i ")
	assert.Equal(t, patches, got)
	assert.Contains(t, script, "                  np = 2000000    ! number of gas particles")
	assert.NotContains(t, script, "not_a_field")
}

func TestCompose_Layout(t *testing.T) {
	script, err := fixedComposer("disc_04").Compose(testRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "#!/bin/bash\n"))

	ordered := []string{
		"#SBATCH --job-name=disc-run",
		"source ~/.bashrc",
		"ml SPLASH/3.10.3-foss-2022a",
		"mkdir -p /home/someone/runs",
		"cd /home/someone/runs",
		"# Next free at generation time: disc_04",
		rundir.ShellFragment("disc"),
		"~/phantom/scripts/writemake.sh disc > Makefile",
		"make\nmake setup",
		`printf '1\n1\n0\nno\nno\n0\n0.100\n100\n' | ./phantomsetup disc`,
		"sed -i '4s/.*/",
		"./phantomsetup disc --maxp=100000000",
		"./phantom disc.in",
	}
	pos := 0
	for _, want := range ordered {
		i := strings.Index(script[pos:], want)
		require.GreaterOrEqual(t, i, 0, "missing or out of order: %q", want)
		pos += i + len(want)
	}
}

func TestCompose_OverridesAndDefaults(t *testing.T) {
	req := testRequest()
	req.OutputFile = "logs/disc"
	req.MaxParticles = 5000000
	script, err := fixedComposer("disc_01").Compose(req)
	require.NoError(t, err)

	assert.Contains(t, script, "#SBATCH --output=logs/disc_%j.out")
	assert.Contains(t, script, "./phantomsetup disc --maxp=5000000\n")
}

func TestCompose_QuotesRunsDir(t *testing.T) {
	req := testRequest()
	req.HomeDirectory = "/home/some one"
	script, err := fixedComposer("disc_01").Compose(req)
	require.NoError(t, err)
	assert.Contains(t, script, "cd '/home/some one/runs'\n")
}

func TestCompose_PreviewFailureIsNotFatal(t *testing.T) {
	c := &Composer{
		Patches: patch.NewGenerator(variant.Default),
		Allocator: AllocatorFunc(func(string, string) (string, error) {
			return "", errors.New("permission denied")
		}),
	}
	script, err := c.Compose(testRequest())
	require.NoError(t, err)
	assert.Contains(t, script, "# Next free at generation time: unknown")
}

func TestCompose_UsesRunsDirectoryListing(t *testing.T) {
	home := t.TempDir()
	runs := filepath.Join(home, "runs")
	require.NoError(t, os.MkdirAll(filepath.Join(runs, "dustydisc_01"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(runs, "dustydisc_02"), 0o755))

	req := testRequest()
	req.Variant = variant.DustyDisc
	req.HomeDirectory = home
	script, err := NewComposer().Compose(req)
	require.NoError(t, err)
	assert.Contains(t, script, "# Next free at generation time: dustydisc_03")
	assert.Contains(t, script, "dustydisc.setup")
}

func TestCompose_Deterministic(t *testing.T) {
	c := fixedComposer("disc_01")
	a, err := c.Compose(testRequest())
	require.NoError(t, err)
	b, err := c.Compose(testRequest())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompose_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*JobRequest)
		errMsg string
	}{
		{"missing job name", func(r *JobRequest) { r.JobName = "" }, "job name is required"},
		{"job name with separator", func(r *JobRequest) { r.JobName = "a/b" }, "path separator"},
		{"missing variant", func(r *JobRequest) { r.Variant = "" }, "variant is required"},
		{"missing home", func(r *JobRequest) { r.HomeDirectory = "" }, "home directory is required"},
		{"negative maxp", func(r *JobRequest) { r.MaxParticles = -1 }, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest()
			tt.mutate(&req)
			_, err := fixedComposer("disc_01").Compose(req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWrite_Success(t *testing.T) {
	dir := t.TempDir()
	path, err := fixedComposer("disc_01").Write(dir, testRequest())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "disc-run.sh"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "#!/bin/bash\n"))
}

func TestWrite_UnknownVariantWritesNothing(t *testing.T) {
	dir := t.TempDir()
	req := testRequest()
	req.Variant = "notarealtype"

	_, err := fixedComposer("x").Write(dir, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, variant.ErrUnknownVariant))

	_, statErr := os.Stat(filepath.Join(dir, "disc-run.sh"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWrite_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := fixedComposer("disc_01").Write(dir, testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileWrite))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	var fwe *FileWriteError
	require.True(t, errors.As(err, &fwe))
	assert.Equal(t, dir, fwe.Dir)
	assert.Equal(t, filepath.Join(dir, "disc-run.sh"), fwe.Path)
}

func TestWrite_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))

	_, err := fixedComposer("disc_01").Write(dir, testRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileWrite))
}

func TestWithDefaults(t *testing.T) {
	d := JobRequest{
		Partition:     "batch",
		Email:         "lab@example.edu",
		Variant:       variant.Disc,
		HomeDirectory: "/home/lab",
		MaxParticles:  10,
		Params:        map[string]string{"np": "1", "m1": "2.0"},
	}
	r := JobRequest{JobName: "a", Partition: "gpu_p", Params: map[string]string{"np": "3"}}

	got := r.WithDefaults(d)
	assert.Equal(t, "a", got.JobName)
	assert.Equal(t, "gpu_p", got.Partition)
	assert.Equal(t, "lab@example.edu", got.Email)
	assert.Equal(t, variant.Disc, got.Variant)
	assert.Equal(t, "/home/lab", got.HomeDirectory)
	assert.Equal(t, int64(10), got.MaxParticles)
	assert.Equal(t, map[string]string{"np": "3", "m1": "2.0"}, got.Params)
	// inputs are not mutated
	assert.Equal(t, map[string]string{"np": "3"}, r.Params)
	assert.Equal(t, map[string]string{"np": "1", "m1": "2.0"}, d.Params)
}
