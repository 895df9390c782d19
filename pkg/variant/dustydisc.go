package variant

// dustyDiscSpecs adds large-grain dust particles to a disc around a single sink.
// The order is the order the edits are emitted in, not line order.
var dustyDiscSpecs = []ParameterSpec{
	{Name: "np", Line: 4, Description: "number of gas particles", Default: "1000000"},
	{Name: "np_dust", Line: 5, Description: "number of large dust particles", Default: "200000"},
	{Name: "dist_unit", Line: 10, Description: "distance unit", Default: "au"},
	{Name: "mass_unit", Line: 11, Description: "mass unit", Default: "solarm"},
	{Name: "icentral", Line: 14, Description: "use sink particles or external potential", Default: "1"},
	{Name: "nsinks", Line: 15, Description: "number of sinks", Default: "1"},
	{Name: "m1", Line: 17, Description: "star mass", Default: "1.000"},
	{Name: "accr1", Line: 18, Description: "star accretion radius", Default: "1.000"},
	{Name: "isetgas", Line: 23, Description: "how to set gas density profile", Default: "0"},
	{Name: "itapergas", Line: 24, Description: "exponentially taper the outer disc profile", Default: "F"},
	{Name: "ismoothgas", Line: 26, Description: "smooth inner disc", Default: "T"},
	{Name: "iwarp", Line: 27, Description: "warp disc", Default: "F"},
	{Name: "R_in", Line: 28, Description: "inner radius", Default: "1.000"},
	{Name: "R_ref", Line: 29, Description: "reference radius", Default: "10.000"},
	{Name: "R_out", Line: 30, Description: "outer radius", Default: "150.000"},
	{Name: "disc_m", Line: 32, Description: "disc mass", Default: "0.050"},
	{Name: "pindex", Line: 33, Description: "power law index of surface density", Default: "1.000"},
	{Name: "qindex", Line: 34, Description: "power law index of sound speed", Default: "0.250"},
	{Name: "H_R", Line: 37, Description: "H/R at R=R_ref", Default: "0.050"},
	{Name: "alphaSS", Line: 38, Description: "desired alphaSS", Default: "0.005"},
	{Name: "dust_method", Line: 52, Description: "dust method", Default: "2"},
	{Name: "dust_to_gas", Line: 53, Description: "dust to gas ratio", Default: "0.010"},
	{Name: "ndusttypesinp", Line: 54, Description: "number of grain sizes", Default: "1"},
	{Name: "grainsizeinp", Line: 55, Description: "grain size (in cm)", Default: "1.000"},
	{Name: "isetdust", Line: 58, Description: "how to set dust density profile", Default: "0"},
	{Name: "nplanets", Line: 41, Description: "number of planets", Default: "0"},
	{Name: "discstrat", Line: 44, Description: "stratify disc", Default: "0"},
	{Name: "norbits", Line: 47, Description: "maximum number of orbits at outer disc", Default: "100"},
	{Name: "deltat", Line: 48, Description: "output interval as fraction of orbital period", Default: "0.100"},
}

func init() {
	MustRegister(DustyDisc, dustyDiscSpecs)
}
