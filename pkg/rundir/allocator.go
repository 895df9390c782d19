// Package rundir numbers per-variant run directories (disc_01, disc_02, ...).
//
// Allocation is a pure function of the directory listing at call time. Nothing is
// reserved or locked, so two allocations racing against the same listing get the same
// name. The generated job script repeats the same counting when it starts on the cluster
// (see ShellFragment), which is the moment that actually creates the directory; two jobs
// starting together can still collide there and this package cannot prevent it.
package rundir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Name renders the n-th run directory of a variant, zero-padded to at least two digits.
func Name(variant string, n int) string {
	return fmt.Sprintf("%s_%02d", variant, n)
}

// Count returns how many entries of baseDir start with "<variant>_".
// A missing baseDir counts as empty.
func Count(baseDir, variant string) (int, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("base_dir", baseDir).Msg("runs directory does not exist yet")
			return 0, nil
		}
		return 0, fmt.Errorf("failed to list run directory %s: %w", baseDir, err)
	}
	prefix := variant + "_"
	n := 0
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			n++
		}
	}
	return n, nil
}

// Allocate returns the next unused run directory name under baseDir.
func Allocate(baseDir, variant string) (string, error) {
	n, err := Count(baseDir, variant)
	if err != nil {
		return "", err
	}
	name := Name(variant, n+1)
	log.Debug().Str("base_dir", baseDir).Str("variant", variant).Int("existing", n).Str("next", name).Msg("run directory allocated")
	return name, nil
}

// ShellFragment is the bash equivalent of Allocate, run from inside the runs directory
// when the job starts. It leaves the job inside the new directory with its name in
// $RUNDIR.
func ShellFragment(variant string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NUMBERATM=$(find . -mindepth 1 -maxdepth 1 -name '%s_*' | wc -l)\n", variant)
	b.WriteString("NUMBERATM=$((NUMBERATM+1))\n")
	fmt.Fprintf(&b, "RUNDIR=$(printf '%s_%%02d' \"$NUMBERATM\")\n", variant)
	b.WriteString("mkdir \"$RUNDIR\"\n")
	b.WriteString("cd \"$RUNDIR\"")
	return b.String()
}
