package fairness

// Rate is a ratio in [0,1] with an explicit undefined state. A rate whose
// denominator is zero is reported as Defined=false instead of NaN or a fault,
// so one degenerate subgroup never aborts the rest of the audit.
type Rate struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// NewRate divides num by den, returning an undefined Rate when den is zero
func NewRate(num, den float64) Rate {
	if den == 0 {
		return Rate{}
	}
	return Rate{Value: num / den, Defined: true}
}

// Percent returns the rate scaled to a percentage
func (r Rate) Percent() float64 {
	return r.Value * 100
}

// ConfusionCounts are the per-subgroup confusion-matrix cells, counting
// agreement between true and predicted labels with 1 as the positive class.
type ConfusionCounts struct {
	TP int `json:"tp"`
	FP int `json:"fp"`
	TN int `json:"tn"`
	FN int `json:"fn"`
}

// CountConfusion tallies the confusion cells for one subgroup
func CountConfusion(g *Subgroup) ConfusionCounts {
	var c ConfusionCounts
	for i, t := range g.Target {
		p := g.Predicted[i]
		switch {
		case t == 1 && p == 1:
			c.TP++
		case t == 0 && p == 1:
			c.FP++
		case t == 0 && p == 0:
			c.TN++
		default:
			c.FN++
		}
	}
	return c
}

// Rate metric names, used as keys in disparity test outcomes
const (
	MetricTPR = "true_positive_rate"
	MetricFPR = "false_positive_rate"
	MetricTNR = "true_negative_rate"
	MetricFNR = "false_negative_rate"
)

// DisparityMetrics are the four rate metrics subjected to the per-metric
// goodness-of-fit disparity test.
var DisparityMetrics = []string{MetricTPR, MetricFPR, MetricTNR, MetricFNR}

// GroupRates carries the six rate metrics for one subgroup
type GroupRates struct {
	Group         string          `json:"group"`
	Value         int             `json:"value"`
	Size          int             `json:"size"`
	Counts        ConfusionCounts `json:"counts"`
	TPR           Rate            `json:"tpr"`
	FPR           Rate            `json:"fpr"`
	TNR           Rate            `json:"tnr"`
	FNR           Rate            `json:"fnr"`
	SelectionRate Rate            `json:"selection_rate"`
	Accuracy      Rate            `json:"accuracy"`
}

// Metric returns one of the four disparity rate metrics by name
func (r GroupRates) Metric(name string) (Rate, bool) {
	switch name {
	case MetricTPR:
		return r.TPR, true
	case MetricFPR:
		return r.FPR, true
	case MetricTNR:
		return r.TNR, true
	case MetricFNR:
		return r.FNR, true
	}
	return Rate{}, false
}

// ComputeRates derives the per-subgroup rate metrics from the partition,
// ordered as the partition's groups are.
func ComputeRates(p *Partition) []GroupRates {
	rates := make([]GroupRates, len(p.Groups))
	for i := range p.Groups {
		g := &p.Groups[i]
		c := CountConfusion(g)
		n := float64(g.Size())
		rates[i] = GroupRates{
			Group:         g.Name,
			Value:         g.Value,
			Size:          g.Size(),
			Counts:        c,
			TPR:           NewRate(float64(c.TP), float64(c.TP+c.FN)),
			FPR:           NewRate(float64(c.FP), float64(c.FP+c.TN)),
			TNR:           NewRate(float64(c.TN), float64(c.TN+c.FP)),
			FNR:           NewRate(float64(c.FN), float64(c.FN+c.TP)),
			SelectionRate: NewRate(float64(c.TP+c.FP), n),
			Accuracy:      NewRate(float64(c.TP+c.TN), n),
		}
	}
	return rates
}

// RateVector collects one metric across subgroups scaled to percentages,
// the unit the disparity test runs on. ok is false when any subgroup's rate
// is undefined or the metric name is unknown; the caller then reports an
// undefined outcome for that metric and carries on.
func RateVector(rates []GroupRates, metric string) ([]float64, bool) {
	values := make([]float64, len(rates))
	for i, r := range rates {
		rate, known := r.Metric(metric)
		if !known || !rate.Defined {
			return nil, false
		}
		values[i] = rate.Percent()
	}
	return values, true
}
