package variant

// dustySGDiscSpecs edits the same .setup lines as dustydisc; only the defaults move
// towards a massive, self-gravitating disc.
var dustySGDiscSpecs = overrideDefaults(dustyDiscSpecs, map[string]string{
	"disc_m":    "0.250",
	"R_out":     "100.000",
	"itapergas": "T",
	"norbits":   "50",
})

func overrideDefaults(base []ParameterSpec, defaults map[string]string) []ParameterSpec {
	out := make([]ParameterSpec, len(base))
	copy(out, base)
	for i := range out {
		if d, ok := defaults[out[i].Name]; ok {
			out[i].Default = d
		}
	}
	return out
}

func init() {
	MustRegister(DustySGDisc, dustySGDiscSpecs)
}
