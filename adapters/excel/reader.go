// Package excel loads scored datasets from Excel and CSV files.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"fairdetect/domain/core"
	"fairdetect/domain/dataset"
)

// ReadOptions names the special columns of the file. Every remaining column
// is treated as a numeric feature. Predictions is optional; when empty the
// caller must score the dataset through a model instead.
type ReadOptions struct {
	Sensitive   string
	Target      string
	Predictions string
}

// DatasetReader reads a scored dataset from an xlsx or csv file
type DatasetReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDatasetReader creates a reader that handles both Excel and CSV files
func NewDatasetReader(filePath string) *DatasetReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &DatasetReader{filePath: filePath, fileType: fileType}
}

// ReadDataset loads the file into a Dataset plus the prediction vector
// (nil when no prediction column was requested).
func (r *DatasetReader) ReadDataset(opts ReadOptions) (*dataset.Dataset, []int, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("%s must have a header row and at least one data row", r.filePath)
	}
	log.Printf("[DatasetReader] Read %d rows from %s", len(rows)-1, r.filePath)
	return r.buildDataset(rows, opts)
}

func (r *DatasetReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read first sheet: %w", err)
	}
	return rows, nil
}

func (r *DatasetReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return csv.NewReader(file).ReadAll()
}

func (r *DatasetReader) buildDataset(rows [][]string, opts ReadOptions) (*dataset.Dataset, []int, error) {
	headers := rows[0]
	colIndex := make(map[string]int, len(headers))
	for j, h := range headers {
		colIndex[strings.TrimSpace(h)] = j
	}

	sensCol, ok := colIndex[opts.Sensitive]
	if !ok {
		return nil, nil, core.NewConfigError(core.ErrAttributeMissing,
			fmt.Sprintf("column %q not in %s", opts.Sensitive, r.filePath))
	}
	targetCol, ok := colIndex[opts.Target]
	if !ok {
		return nil, nil, core.NewConfigError(core.ErrAttributeMissing,
			fmt.Sprintf("target column %q not in %s", opts.Target, r.filePath))
	}
	predCol := -1
	if opts.Predictions != "" {
		predCol, ok = colIndex[opts.Predictions]
		if !ok {
			return nil, nil, core.NewConfigError(core.ErrAttributeMissing,
				fmt.Sprintf("prediction column %q not in %s", opts.Predictions, r.filePath))
		}
	}

	var featureNames []string
	var featureCols []int
	for j, h := range headers {
		if j == sensCol || j == targetCol || j == predCol {
			continue
		}
		featureNames = append(featureNames, strings.TrimSpace(h))
		featureCols = append(featureCols, j)
	}

	ds := &dataset.Dataset{
		Name:          filepath.Base(r.filePath),
		SensitiveAttr: opts.Sensitive,
		FeatureNames:  featureNames,
	}
	var predictions []int

	for i, record := range rows[1:] {
		line := i + 2
		sens, err := parseInt(record, sensCol)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d, column %q: %w", line, opts.Sensitive, err)
		}
		target, err := parseInt(record, targetCol)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d, column %q: %w", line, opts.Target, err)
		}
		features := make([]float64, len(featureCols))
		for k, j := range featureCols {
			v, err := parseFloat(record, j)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d, column %q: %w", line, featureNames[k], err)
			}
			features[k] = v
		}
		ds.Sensitive = append(ds.Sensitive, sens)
		ds.Target = append(ds.Target, target)
		ds.Features = append(ds.Features, features)
		if predCol >= 0 {
			pred, err := parseInt(record, predCol)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d, column %q: %w", line, opts.Predictions, err)
			}
			predictions = append(predictions, pred)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, nil, err
	}
	return ds, predictions, nil
}

func parseInt(record []string, col int) (int, error) {
	if col >= len(record) {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.Atoi(strings.TrimSpace(record[col]))
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", record[col])
	}
	return v, nil
}

func parseFloat(record []string, col int) (float64, error) {
	if col >= len(record) {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", record[col])
	}
	return v, nil
}
