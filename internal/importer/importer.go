// Package importer reads batch loading jobs from CSV and Excel files.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/LoadCalc/internal/model"
	"github.com/xuri/excelize/v2"
)

// Job is one container/box combination to compute.
type Job struct {
	Label         string           `json:"label"`
	Container     model.Dimensions `json:"container"`
	ContainerName string           `json:"container_name,omitempty"`
	Box           model.Dimensions `json:"box"`
	Pattern       model.Pattern    `json:"pattern"`
	AllowRotation bool             `json:"allow_rotation"`
	Cartons       int              `json:"cartons,omitempty"` // ordered quantity; 0 when not given
}

// Defaults fill in the columns a file leaves out.
type Defaults struct {
	Container     model.Dimensions
	Pattern       model.Pattern
	AllowRotation bool
	Presets       *model.PresetStore // nil means built-in presets only
}

// DefaultsFromConfig derives import defaults from the application config.
func DefaultsFromConfig(cfg model.AppConfig, presets *model.PresetStore) Defaults {
	return Defaults{
		Container:     cfg.DefaultContainer,
		Pattern:       cfg.DefaultPattern,
		AllowRotation: cfg.DefaultAllowRotation,
		Presets:       presets,
	}
}

func (d Defaults) lookupPreset(name string) (model.ContainerPreset, bool) {
	if d.Presets != nil {
		return d.Presets.Lookup(name)
	}
	return model.GetPreset(name)
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Jobs     []Job
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	Label           int
	Container       int
	ContainerLength int
	ContainerWidth  int
	ContainerHeight int
	BoxLength       int
	BoxWidth        int
	BoxHeight       int
	Pattern         int
	Rotation        int
	Quantity        int
}

// headerAliases maps canonical column names to their accepted aliases (all
// lowercase, underscores read as spaces).
var headerAliases = map[string][]string{
	"label":            {"label", "name", "job", "description", "desc", "item", "sku"},
	"container":        {"container", "preset", "container type", "container name"},
	"container_length": {"container length", "cont length", "cl", "inner length"},
	"container_width":  {"container width", "cont width", "cw", "inner width"},
	"container_height": {"container height", "cont height", "ch", "inner height"},
	"box_length":       {"box length", "carton length", "length", "len", "l", "bl"},
	"box_width":        {"box width", "carton width", "width", "w", "bw"},
	"box_height":       {"box height", "carton height", "height", "h", "bh"},
	"pattern":          {"pattern", "layout"},
	"rotation":         {"rotation", "rotate", "allow rotation", "rotatable"},
	"quantity":         {"quantity", "qty", "cartons", "count", "pcs"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func normalizeHeader(cell string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(strings.ToLower(cell), "_", " ")), " ")
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (label, box length, width, height, quantity) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1}
	targets := map[string]*int{
		"label":            &mapping.Label,
		"container":        &mapping.Container,
		"container_length": &mapping.ContainerLength,
		"container_width":  &mapping.ContainerWidth,
		"container_height": &mapping.ContainerHeight,
		"box_length":       &mapping.BoxLength,
		"box_width":        &mapping.BoxWidth,
		"box_height":       &mapping.BoxHeight,
		"pattern":          &mapping.Pattern,
		"rotation":         &mapping.Rotation,
		"quantity":         &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := normalizeHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := targets[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:           0,
			Container:       -1,
			ContainerLength: -1,
			ContainerWidth:  -1,
			ContainerHeight: -1,
			BoxLength:       1,
			BoxWidth:        2,
			BoxHeight:       3,
			Pattern:         -1,
			Rotation:        -1,
			Quantity:        4,
		}, false
	}

	return mapping, true
}

// parseBool recognizes the usual spreadsheet spellings of yes and no.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1", "x", "ya":
		return true, true
	case "no", "n", "false", "f", "0", "-", "tidak":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDimension reads a required positive number from the row.
func parseDimension(row []string, idx int, rowLabel, name string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(name[:1])+name[1:])
	}
	return v, ""
}

func parseDimensions(row []string, cols [3]int, rowLabel, subject string) (model.Dimensions, string) {
	var vals [3]float64
	for i, name := range []string{"length", "width", "height"} {
		v, errMsg := parseDimension(row, cols[i], rowLabel, subject+" "+name)
		if errMsg != "" {
			return model.Dimensions{}, errMsg
		}
		vals[i] = v
	}
	return model.NewDimensions(vals[0], vals[1], vals[2]), ""
}

// parseRow extracts a Job from a row using the given column mapping.
// Returns the job, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, defaults Defaults, rowLabel string, jobCount int) (Job, string, string) {
	job := Job{
		Label:         getCell(row, mapping.Label),
		Pattern:       defaults.Pattern,
		AllowRotation: defaults.AllowRotation,
	}
	if job.Label == "" {
		job.Label = fmt.Sprintf("Job %d", jobCount+1)
	}

	box, errMsg := parseDimensions(row, [3]int{mapping.BoxLength, mapping.BoxWidth, mapping.BoxHeight}, rowLabel, "box")
	if errMsg != "" {
		return Job{}, errMsg, ""
	}
	job.Box = box

	containerCols := [3]int{mapping.ContainerLength, mapping.ContainerWidth, mapping.ContainerHeight}
	hasContainerDims := false
	for _, c := range containerCols {
		if getCell(row, c) != "" {
			hasContainerDims = true
		}
	}
	presetName := getCell(row, mapping.Container)

	switch {
	case hasContainerDims:
		container, errMsg := parseDimensions(row, containerCols, rowLabel, "container")
		if errMsg != "" {
			return Job{}, errMsg, ""
		}
		job.Container = container
		job.ContainerName = presetName
	case presetName != "":
		preset, ok := defaults.lookupPreset(presetName)
		if !ok {
			return Job{}, fmt.Sprintf("%s: Unknown container '%s'", rowLabel, presetName), ""
		}
		job.Container = preset.Inner
		job.ContainerName = preset.Name
	case defaults.Container.Validate("container") == nil:
		job.Container = defaults.Container
	default:
		return Job{}, fmt.Sprintf("%s: No container given and no default container configured", rowLabel), ""
	}

	if p := getCell(row, mapping.Pattern); p != "" {
		job.Pattern = model.Pattern(strings.ToLower(p))
	}

	var warning string
	if r := getCell(row, mapping.Rotation); r != "" {
		if allow, ok := parseBool(r); ok {
			job.AllowRotation = allow
		} else {
			warning = fmt.Sprintf("%s: Unknown rotation value '%s', defaulting to %t", rowLabel, r, defaults.AllowRotation)
		}
	}

	if q := getCell(row, mapping.Quantity); q != "" {
		qty, err := strconv.Atoi(q)
		if err != nil || qty < 0 {
			return Job{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, q), ""
		}
		job.Cartons = qty
	}

	return job, "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports jobs from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, defaults Defaults) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, defaults, "Line", result.Warnings)
}

// ImportCSVFromReader imports jobs from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, defaults Defaults) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, defaults, "Line", nil)
}

// ImportExcel imports jobs from the first sheet of an Excel (.xlsx) file.
func ImportExcel(path string, defaults Defaults) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, defaults, "Row", nil)
}

// ImportFile picks the importer from the file extension.
func ImportFile(path string, defaults Defaults) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, defaults)
	}
	return ImportCSV(path, defaults)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into jobs.
func importFromRows(rows [][]string, defaults Defaults, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.BoxLength == -1 {
			missing = append(missing, "Box Length")
		}
		if mapping.BoxWidth == -1 {
			missing = append(missing, "Box Width")
		}
		if mapping.BoxHeight == -1 {
			missing = append(missing, "Box Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		job, errMsg, warning := parseRow(row, mapping, defaults, rowLabel, len(result.Jobs))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Jobs = append(result.Jobs, job)
	}

	return result
}
