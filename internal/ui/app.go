package ui

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenCircuitLab/SpiceTrace/internal/bench"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/analysis"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/schematic"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/waveplot"
)

// App hosts the Gio simulation bench window.
type App struct {
	window *app.Window
	theme  *material.Theme
	state  *AppState
	ops    op.Ops

	benchOptions []benchKind
	benchMenu    *menu.DropdownMenu
	benchMenuBtn widget.Clickable

	r9Editor   widget.Editor
	r1Editor   widget.Editor
	r3Editor   widget.Editor
	c1Editor   widget.Editor
	stopEditor widget.Editor

	rcR1Editor   widget.Editor
	rcC1Editor   widget.Editor
	rcAmpEditor  widget.Editor
	rcFreqEditor widget.Editor
	rcStopEditor widget.Editor

	modelEditor widget.Editor
	traceEditor widget.Editor

	runBtn  widget.Clickable
	runIcon *widget.Icon

	logList layout.List

	plotSrc     image.Image
	plotOp      paint.ImageOp
	spectrumSrc image.Image
	spectrumOp  paint.ImageOp
}

// New wires the bench UI to a window and shared state.
func New(w *app.Window, state *AppState) *App {
	if state == nil {
		state = NewState(nil)
	}
	a := &App{
		window:       w,
		theme:        material.NewTheme(),
		state:        state,
		benchOptions: []benchKind{benchOpAmp, benchRC},
		logList:      layout.List{Axis: layout.Vertical},
	}
	a.benchMenu = a.buildBenchMenu()
	if icon, err := widget.NewIcon(icons.AVPlayArrow); err == nil {
		a.runIcon = icon
	}

	opAmp, rc := state.Params()
	for _, f := range []struct {
		ed   *widget.Editor
		text string
	}{
		{&a.r9Editor, netlist.FormatValue(opAmp.R9)},
		{&a.r1Editor, netlist.FormatValue(opAmp.R1)},
		{&a.r3Editor, netlist.FormatValue(opAmp.R3)},
		{&a.c1Editor, netlist.FormatValue(opAmp.C1)},
		{&a.stopEditor, netlist.FormatValue(opAmp.Stop)},
		{&a.rcR1Editor, netlist.FormatValue(rc.R1)},
		{&a.rcC1Editor, netlist.FormatValue(rc.C1)},
		{&a.rcAmpEditor, netlist.FormatValue(rc.Amplitude)},
		{&a.rcFreqEditor, netlist.FormatValue(rc.Frequency)},
		{&a.rcStopEditor, netlist.FormatValue(rc.Stop)},
		{&a.modelEditor, state.ModelPath()},
		{&a.traceEditor, state.Trace()},
	} {
		f.ed.SingleLine = true
		f.ed.SetText(f.text)
	}
	return a
}

// Run executes the Gio event loop until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) buildBenchMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(a.benchOptions))
	for i, kind := range a.benchOptions {
		idx := i
		label := string(kind)
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.state.SelectBench(a.benchOptions[idx])
				a.window.Invalidate()
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, label)
				if benchKind(label) == a.state.Bench() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(180)
	return drop
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	snap := a.state.Snapshot()
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(260))
			gtx.Constraints.Max.X = gtx.Dp(unit.Dp(260))
			return layout.Inset{Top: unit.Dp(16), Bottom: unit.Dp(16), Left: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.layoutControls(gtx, snap)
			})
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Top: unit.Dp(16), Bottom: unit.Dp(16), Right: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.layoutResults(gtx, snap)
			})
		}),
	)
}

func (a *App) layoutControls(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Body1(a.theme, "Bench").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutBenchDropdown(gtx, snap)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
	}

	switch snap.Bench {
	case benchOpAmp:
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "R9 gain (ohm)", &a.r9Editor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "R1 input (ohm)", &a.r1Editor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "R3 load (ohm)", &a.r3Editor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "C1 feedback (F)", &a.c1Editor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "Stop time (s)", &a.stopEditor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "Model library", &a.modelEditor)
			}),
		)
	case benchRC:
		children = append(children,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "R1 (ohm)", &a.rcR1Editor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "C1 (F)", &a.rcC1Editor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "Amplitude (V)", &a.rcAmpEditor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "Frequency (Hz)", &a.rcFreqEditor)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.numericField(gtx, "Stop time (s)", &a.rcStopEditor)
			}),
		)
	}

	children = append(children,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.numericField(gtx, "Trace", &a.traceEditor)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := "Run Simulation"
			if snap.Busy {
				label = "Running..."
			}
			if a.runBtn.Clicked(gtx) && !snap.Busy {
				a.onRun(snap.Bench)
			}
			btn := material.Button(a.theme, &a.runBtn, label)
			if a.runIcon == nil {
				return btn.Layout(gtx)
			}
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					gtx.Constraints.Max.X = gtx.Dp(unit.Dp(24))
					return a.runIcon.Layout(gtx, a.theme.Palette.ContrastBg)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
				layout.Flexed(1, btn.Layout),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			status := material.Body2(a.theme, "Status: "+snap.Status)
			return status.Layout(gtx)
		}),
	)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (a *App) layoutBenchDropdown(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	if a.benchMenuBtn.Clicked(gtx) {
		a.benchMenu.ToggleVisibility(gtx)
	}
	btn := material.Button(a.theme, &a.benchMenuBtn, string(snap.Bench))
	dims := btn.Layout(gtx)

	// Layout menu after button so it appears on top
	if a.benchMenu != nil {
		gvTheme := theme.NewTheme("", nil, true)
		a.benchMenu.Layout(gtx, gvTheme)
	}

	return dims
}

func (a *App) numericField(gtx layout.Context, label string, editor *widget.Editor) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Body2(a.theme, label).Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			ed := material.Editor(a.theme, editor, "")
			return layout.Inset{Top: unit.Dp(2), Bottom: unit.Dp(8)}.Layout(gtx, ed.Layout)
		}),
	)
}

func (a *App) layoutResults(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	if snap.Plot == nil {
		msg := "Run a simulation to see results"
		if snap.LastError != nil {
			msg = snap.LastError.Error()
		}
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Body1(a.theme, msg).Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return a.layoutLog(gtx, snap)
			}),
		)
	}

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(2, func(gtx layout.Context) layout.Dimensions {
			return a.layoutImage(gtx, snap.Plot, &a.plotSrc, &a.plotOp)
		}),
		layout.Flexed(2, func(gtx layout.Context) layout.Dimensions {
			if snap.Spectrum == nil {
				return layout.Dimensions{}
			}
			return a.layoutImage(gtx, snap.Spectrum, &a.spectrumSrc, &a.spectrumOp)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.layoutLog(gtx, snap)
		}),
	)
}

func (a *App) layoutImage(gtx layout.Context, img image.Image, src *image.Image, cached *paint.ImageOp) layout.Dimensions {
	if img != *src {
		*src = img
		*cached = paint.NewImageOp(img)
	}
	w := widget.Image{Src: *cached, Fit: widget.Contain, Position: layout.Center}
	return w.Layout(gtx)
}

func (a *App) layoutLog(gtx layout.Context, snap StateSnapshot) layout.Dimensions {
	return a.logList.Layout(gtx, len(snap.Logs), func(gtx layout.Context, i int) layout.Dimensions {
		line := material.Body2(a.theme, snap.Logs[i])
		return layout.Inset{Top: unit.Dp(1), Bottom: unit.Dp(1)}.Layout(gtx, line.Layout)
	})
}

// onRun reads the parameter editors and launches the selected bench on a
// background goroutine. A run already in flight wins; the click is dropped.
func (a *App) onRun(kind benchKind) {
	if !a.state.SetBusy(true) {
		a.state.AppendLog("simulation already running")
		return
	}

	trace := a.traceEditor.Text()
	a.state.SetTrace(trace)

	switch kind {
	case benchOpAmp:
		p, err := a.readOpAmpParams()
		if err != nil {
			a.state.SetBusy(false)
			a.state.SetError(err)
			return
		}
		a.state.SetOpAmpParams(p)
		a.state.SetModelPath(a.modelEditor.Text())
		go a.runOpAmp(p, a.state.ModelPath(), trace)
	case benchRC:
		p, err := a.readRCParams()
		if err != nil {
			a.state.SetBusy(false)
			a.state.SetError(err)
			return
		}
		a.state.SetRCParams(p)
		go a.runRC(p, trace)
	}
}

func (a *App) readOpAmpParams() (netlist.OpAmpParams, error) {
	var p netlist.OpAmpParams
	for _, f := range []struct {
		name string
		ed   *widget.Editor
		dst  *float64
	}{
		{"R9", &a.r9Editor, &p.R9},
		{"R1", &a.r1Editor, &p.R1},
		{"R3", &a.r3Editor, &p.R3},
		{"C1", &a.c1Editor, &p.C1},
		{"Stop", &a.stopEditor, &p.Stop},
	} {
		v, err := netlist.ParseValue(f.ed.Text())
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return p, nil
}

func (a *App) readRCParams() (netlist.RCParams, error) {
	var p netlist.RCParams
	for _, f := range []struct {
		name string
		ed   *widget.Editor
		dst  *float64
	}{
		{"R1", &a.rcR1Editor, &p.R1},
		{"C1", &a.rcC1Editor, &p.C1},
		{"Amplitude", &a.rcAmpEditor, &p.Amplitude},
		{"Frequency", &a.rcFreqEditor, &p.Frequency},
		{"Stop", &a.rcStopEditor, &p.Stop},
	} {
		v, err := netlist.ParseValue(f.ed.Text())
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}
	return p, nil
}

func (a *App) runOpAmp(p netlist.OpAmpParams, modelPath, trace string) {
	defer a.state.SetBusy(false)
	defer a.window.Invalidate()

	a.state.SetStatus("Running")
	a.state.AppendLog("op-amp bench: " + modelPath)
	a.window.Invalidate()

	out, err := bench.RunOpAmp(context.Background(), a.state.Config(), p, modelPath, trace)
	if err != nil {
		a.state.SetError(err)
		return
	}
	a.finishRun(out)
}

func (a *App) runRC(p netlist.RCParams, trace string) {
	defer a.state.SetBusy(false)
	defer a.window.Invalidate()

	a.state.SetStatus("Running")
	a.state.AppendLog("rc bench")
	a.window.Invalidate()

	out, err := bench.RunRC(context.Background(), a.state.Config(), p, trace)
	if err != nil {
		a.state.SetError(err)
		return
	}
	a.finishRun(out)
}

// uiSpectrumPoints matches the CLI resample length so the UI and the CLI
// render identical spectra for the same run.
const uiSpectrumPoints = 1 << 14

func (a *App) finishRun(out *bench.Outcome) {
	tp, err := waveplot.TimePlot(out.Trace, waveplot.Series{Name: out.Trace, X: out.Time, Y: out.Volts})
	if err != nil {
		a.state.SetError(err)
		return
	}
	plotImg := waveplot.Image(tp)

	var spectrumImg image.Image
	if samples, dt, err := analysis.Resample(out.Time, out.Volts, uiSpectrumPoints); err == nil {
		points, err := analysis.Spectrum(samples, dt)
		if err == nil && len(points) > 2 {
			lo := points[1].Frequency
			hi := points[len(points)-1].Frequency
			if sp, err := waveplot.SpectrumPlot(points, lo, hi); err == nil {
				spectrumImg = waveplot.Image(sp)
			}
		}
	}

	if doc, err := schematic.RenderNetlist(out.Netlist); err == nil {
		path := strings.TrimSuffix(out.Result.NetlistPath, filepath.Ext(out.Result.NetlistPath)) + ".svg"
		if err := os.WriteFile(path, doc, 0o644); err == nil {
			a.state.AppendLog("schematic: " + path)
		}
	}

	a.state.SetResult(plotImg, spectrumImg, out.Netlist)
	a.state.AppendLog(fmt.Sprintf("run complete: %d points, trace %s", len(out.Time), out.Trace))
}
