package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/tally/internal/model"
	"github.com/xolan/tally/internal/service"
	"github.com/xolan/tally/internal/timeutil"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// CSVHeader is the first row of a CSV export.
var CSVHeader = []string{
	"date", "task", "project", "code", "completed", "important",
	"tracked", "sub_task_time", "total", "total_minutes",
}

// WriteExport encodes data to w in the given format. A CSV export has one
// row per task, ordered by date.
func WriteExport(w io.Writer, format string, data *service.ExportData) error {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case FormatYAML, "yml":
		return writeYAML(w, data)
	case FormatCSV:
		return writeCSV(w, data)
	default:
		return fmt.Errorf("%w: %q (expected json, yaml or csv)", ErrUnknownFormat, format)
	}
}

// writeYAML re-encodes the JSON form as block-style YAML so that field
// names and key order match the JSON export.
func writeYAML(w io.Writer, data *service.ExportData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func writeCSV(w io.Writer, data *service.ExportData) error {
	projects := make(map[string]string, len(data.Projects))
	for _, p := range data.Projects {
		projects[p.ID] = p.Name
	}
	codes := make(map[string]string, len(data.BillingCodes))
	for _, c := range data.BillingCodes {
		codes[c.ID] = c.Code
	}
	tracked := make(map[string]int64)
	for _, e := range data.TimeEntries {
		tracked[e.TaskID] += e.Duration
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range sortedTasks(data.Tasks) {
		direct := tracked[t.ID]
		sub := t.SubTaskTime()
		row := []string{
			t.Date,
			t.Name,
			projects[t.ProjectID],
			codes[t.BillingCodeID],
			strconv.FormatBool(t.IsCompleted),
			strconv.FormatBool(t.IsImportant),
			timeutil.FormatDuration(direct),
			timeutil.FormatDuration(sub),
			timeutil.FormatDuration(direct + sub),
			strconv.FormatInt((direct+sub)/60000, 10),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sortedTasks orders tasks by date, then by their order within the day.
func sortedTasks(tasks []model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Order < out[j].Order
	})
	return out
}
