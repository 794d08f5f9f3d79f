package fairness

// MetricPrecision names the precision disparity test outcome
const MetricPrecision = "precision"

// GroupPrecision carries one subgroup's precision, undefined when the
// subgroup has no positive predictions.
type GroupPrecision struct {
	Group     string `json:"group"`
	Value     int    `json:"value"`
	Precision Rate   `json:"precision"`
}

// ComputePrecision derives precision per subgroup from the partition
func ComputePrecision(p *Partition) []GroupPrecision {
	out := make([]GroupPrecision, len(p.Groups))
	for i := range p.Groups {
		g := &p.Groups[i]
		c := CountConfusion(g)
		out[i] = GroupPrecision{
			Group:     g.Name,
			Value:     g.Value,
			Precision: NewRate(float64(c.TP), float64(c.TP+c.FP)),
		}
	}
	return out
}

// PrecisionVector collects the precision values scaled to percentages.
// ok is false when any subgroup's precision is undefined.
func PrecisionVector(precisions []GroupPrecision) ([]float64, bool) {
	values := make([]float64, len(precisions))
	for i, p := range precisions {
		if !p.Precision.Defined {
			return nil, false
		}
		values[i] = p.Precision.Percent()
	}
	return values, true
}
