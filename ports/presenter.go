package ports

// Presenter renders tables and bar charts for the caller. It is purely a
// sink; nothing it produces feeds back into the analyses.
type Presenter interface {
	Table(title string, headers []string, rows [][]string)
	BarChart(title string, labels []string, values []float64)
}
