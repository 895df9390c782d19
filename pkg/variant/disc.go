package variant

// discSpecs covers a gas disc around a central object (sink or external potential).
var discSpecs = []ParameterSpec{
	{Name: "np", Line: 4, Description: "number of gas particles", Default: "1000000"},
	{Name: "dist_unit", Line: 10, Description: "distance unit", Default: "au"},
	{Name: "mass_unit", Line: 11, Description: "mass unit", Default: "solarm"},
	{Name: "icentral", Line: 14, Description: "use sink particles or external potential", Default: "0"},
	{Name: "ipotential", Line: 15, Description: "potential", Default: "3"},
	{Name: "einst_prec", Line: 16, Description: "include Einstein precession", Default: "T"},
	{Name: "m1", Line: 17, Description: "black hole mass", Default: "1.000"},
	{Name: "accr1", Line: 18, Description: "black hole accretion radius", Default: "30."},
	{Name: "bhspin", Line: 19, Description: "black hole spin", Default: "1.000"},
	{Name: "bhspinangle", Line: 20, Description: "black hole spin angle", Default: "0.000"},
	{Name: "isetgas", Line: 23, Description: "how to set gas density profile", Default: "0"},
	{Name: "itapergas", Line: 24, Description: "exponentially taper the outer disc profile", Default: "T"},
	{Name: "itapersetgas", Line: 25, Description: "how to set taper", Default: "0"},
	{Name: "ismoothgas", Line: 26, Description: "smooth inner disc", Default: "T"},
	{Name: "iwarp", Line: 27, Description: "warp disc", Default: "F"},
	{Name: "R_in", Line: 28, Description: "inner radius", Default: "30."},
	{Name: "R_ref", Line: 29, Description: "reference radius", Default: "150."},
	{Name: "R_out", Line: 30, Description: "outer radius", Default: "150."},
	{Name: "R_c", Line: 31, Description: "characteristic radius of the exponential taper", Default: "150."},
	{Name: "disc_m", Line: 32, Description: "disc mass", Default: "0.050"},
	{Name: "pindex", Line: 33, Description: "power law index of surface density", Default: "1.000"},
	{Name: "qindex", Line: 34, Description: "power law index of sound speed", Default: "0.250"},
	{Name: "posangl", Line: 35, Description: "position angle", Default: "0.000"},
	{Name: "incl", Line: 36, Description: "inclination", Default: "0.000"},
	{Name: "H_R", Line: 37, Description: "H/R at R=R_ref", Default: "0.050"},
	{Name: "alphaSS", Line: 38, Description: "desired alphaSS", Default: "0.005"},
	{Name: "nplanets", Line: 41, Description: "number of planets", Default: "0"},
	{Name: "discstrat", Line: 44, Description: "stratify disc?", Default: "0"},
	{Name: "norbits", Line: 47, Description: "maximum number of orbits", Default: "100"},
	{Name: "deltat", Line: 48, Description: "output interval", Default: "0.100"},
}

func init() {
	MustRegister(Disc, discSpecs)
}
