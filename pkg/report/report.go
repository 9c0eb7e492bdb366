// Package report writes a simulation run summary as a spreadsheet workbook:
// parameters, measurements, the sampled trace, and the rendered plots.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Param is one circuit parameter row of the summary sheet.
type Param struct {
	Name  string
	Value string
}

// Measurement is one derived quantity row of the summary sheet.
type Measurement struct {
	Name  string
	Value float64
	Unit  string
}

// Report collects everything one run produced.
type Report struct {
	Title        string
	Params       []Param
	Measurements []Measurement

	Time  []float64
	Volts []float64
	Trace string // trace name for the data sheet header

	PlotPNG     []byte // time-domain plot, optional
	SpectrumPNG []byte // FFT plot, optional
}

const (
	summarySheet = "Summary"
	traceSheet   = "Trace"
	plotSheet    = "Plots"
)

// Write materializes the report workbook at path, overwriting any previous
// report there.
func Write(path string, rep *Report) error {
	if len(rep.Time) != len(rep.Volts) {
		return fmt.Errorf("report: time axis length %d != trace length %d", len(rep.Time), len(rep.Volts))
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", summarySheet)
	if err := writeSummary(f, rep); err != nil {
		return err
	}
	if err := writeTrace(f, rep); err != nil {
		return err
	}
	if err := writePlots(f, rep); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, rep *Report) error {
	var firstErr error
	set := func(cell string, value interface{}) {
		if err := f.SetCellValue(summarySheet, cell, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	set("A1", rep.Title)

	row := 3
	if len(rep.Params) > 0 {
		set("A2", "Parameter")
		set("B2", "Value")
		for _, p := range rep.Params {
			set(fmt.Sprintf("A%d", row), p.Name)
			set(fmt.Sprintf("B%d", row), p.Value)
			row++
		}
		row++
	}

	if len(rep.Measurements) > 0 {
		set(fmt.Sprintf("A%d", row), "Measurement")
		set(fmt.Sprintf("B%d", row), "Value")
		set(fmt.Sprintf("C%d", row), "Unit")
		row++
		for _, m := range rep.Measurements {
			set(fmt.Sprintf("A%d", row), m.Name)
			set(fmt.Sprintf("B%d", row), m.Value)
			set(fmt.Sprintf("C%d", row), m.Unit)
			row++
		}
	}
	if firstErr != nil {
		return fmt.Errorf("report: %w", firstErr)
	}
	return nil
}

func writeTrace(f *excelize.File, rep *Report) error {
	if _, err := f.NewSheet(traceSheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	trace := rep.Trace
	if trace == "" {
		trace = "Voltage (V)"
	}
	var firstErr error
	set := func(cell string, value interface{}) {
		if err := f.SetCellValue(traceSheet, cell, value); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	set("A1", "Time (s)")
	set("B1", trace)
	for i := range rep.Time {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		set(cellA, rep.Time[i])
		set(cellB, rep.Volts[i])
	}
	if firstErr != nil {
		return fmt.Errorf("report: %w", firstErr)
	}
	return nil
}

func writePlots(f *excelize.File, rep *Report) error {
	if len(rep.PlotPNG) == 0 && len(rep.SpectrumPNG) == 0 {
		return nil
	}
	if _, err := f.NewSheet(plotSheet); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	anchor := "A1"
	if len(rep.PlotPNG) > 0 {
		if err := addPNG(f, anchor, rep.PlotPNG); err != nil {
			return err
		}
		anchor = "A24"
	}
	if len(rep.SpectrumPNG) > 0 {
		if err := addPNG(f, anchor, rep.SpectrumPNG); err != nil {
			return err
		}
	}
	return nil
}

func addPNG(f *excelize.File, cell string, data []byte) error {
	err := f.AddPictureFromBytes(plotSheet, cell, &excelize.Picture{
		Extension: ".png",
		File:      data,
	})
	if err != nil {
		return fmt.Errorf("report: embed plot: %w", err)
	}
	return nil
}
