package vanilla

import "gonum.org/v1/gonum/stat/distuv"

var stdNormal = distuv.UnitNormal

// normCDF is Φ.
func normCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

// normPDF is φ.
func normPDF(x float64) float64 {
	return stdNormal.Prob(x)
}
