package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/edp1096/toy-spme/pkg/analysis"
	"github.com/edp1096/toy-spme/pkg/device"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per step: time first, then keys in order. With no
// keys every column is written.
func WriteCSV(w io.Writer, results Results, keys ...string) error {
	if len(keys) == 0 {
		keys = results.Keys()
	}
	n, err := results.check(keys)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{analysis.KeyTime}, keys...)); err != nil {
		return err
	}

	row := make([]string, len(keys)+1)
	time := results[analysis.KeyTime]
	for i := 0; i < n; i++ {
		row[0] = formatFloat(time[i])
		for j, key := range keys {
			row[j+1] = formatFloat(results[key][i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteVoltageCSV writes the bare (time, current, voltage) series.
func WriteVoltageCSV(w io.Writer, time, current, voltage []float64) error {
	if len(time) != len(current) || len(time) != len(voltage) {
		return fmt.Errorf("series lengths differ: %d, %d, %d", len(time), len(current), len(voltage))
	}
	return WriteCSV(w, Results{
		analysis.KeyTime:    time,
		analysis.KeyCurrent: current,
		analysis.KeyVoltage: voltage,
	}, analysis.KeyCurrent, analysis.KeyVoltage)
}

// WriteHistoryCSV writes one electrolyte snapshot per row.
func WriteHistoryCSV(w io.Writer, time []float64, history [][device.ElectrolyteNodes]float64) error {
	if len(time) != len(history) {
		return fmt.Errorf("history has %d snapshots for %d times", len(history), len(time))
	}

	cw := csv.NewWriter(w)
	header := make([]string, device.ElectrolyteNodes+1)
	header[0] = analysis.KeyTime
	for i := 0; i < device.ElectrolyteNodes; i++ {
		header[i+1] = fmt.Sprintf("C(e%d)", i)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, snapshot := range history {
		row[0] = formatFloat(time[i])
		for j, c := range snapshot {
			row[j+1] = formatFloat(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
