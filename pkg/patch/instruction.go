package patch

import (
	"fmt"
	"strings"
)

// nameWidth matches the right-aligned key column phantomsetup writes.
const nameWidth = 20

// Instruction replaces one absolute line of Target.
type Instruction struct {
	Line        int
	Name        string
	Value       string
	Description string
	Target      string
}

// Text is the replacement line as it will appear in the .setup file.
func (i Instruction) Text() string {
	return fmt.Sprintf("%*s = %s    ! %s", nameWidth, i.Name, i.Value, i.Description)
}

// Render returns the sed command applying the instruction, e.g.
//
//	sed -i '4s/.*/                  np = 1000000    ! number of gas particles/' disc.setup
func (i Instruction) Render() string {
	script := fmt.Sprintf("%ds/.*/%s/", i.Line, escapeReplacement(i.Text()))
	return fmt.Sprintf("sed -i %s %s", singleQuote(script), QuoteArg(i.Target))
}

// escapeReplacement protects characters that are special in a sed s/// replacement
// using '/' as delimiter.
func escapeReplacement(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`/`, `\/`,
		`&`, `\&`,
		"\n", `\n`,
	)
	return r.Replace(s)
}

func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuoteArg quotes s only when it contains characters outside a conservative safe set.
func QuoteArg(s string) string {
	if s == "" {
		return "''"
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("._-/+:@%,", c):
		default:
			return singleQuote(s)
		}
	}
	return s
}
