package ui

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/OpenCircuitLab/SpiceTrace/internal/bench"
	"github.com/OpenCircuitLab/SpiceTrace/internal/config"
	"github.com/OpenCircuitLab/SpiceTrace/pkg/netlist"
)

type benchKind string

const (
	benchOpAmp benchKind = "Op-Amp"
	benchRC    benchKind = "RC Low-pass"
)

// StateSnapshot captures a copy of the state data for rendering without
// requiring the UI to hold locks while laying out widgets.
type StateSnapshot struct {
	Busy bool

	LastError error
	Status    string

	Bench     benchKind
	ModelPath string
	Trace     string

	Plot     image.Image
	Spectrum image.Image
	Netlist  string

	Logs []string

	LastUpdated time.Time
}

// AppState tracks the mutable state shared between the Gio event loop and
// background goroutines running simulations.
type AppState struct {
	mu sync.RWMutex

	cfg *config.Config

	busy bool

	lastError error
	status    string

	bench     benchKind
	opAmp     netlist.OpAmpParams
	rc        netlist.RCParams
	modelPath string
	trace     string

	plot     image.Image
	spectrum image.Image
	netlist  string

	logs     []string
	logLimit int

	lastUpdated time.Time
}

// NewState returns a baseline AppState seeded from the loaded configuration.
func NewState(cfg *config.Config) *AppState {
	if cfg == nil {
		cfg = config.Default()
	}
	modelPath := cfg.ModelLib
	if modelPath == "" {
		modelPath = bench.DefaultModelLib
	}
	return &AppState{
		cfg:         cfg,
		bench:       benchOpAmp,
		opAmp:       netlist.DefaultOpAmpParams(),
		rc:          netlist.DefaultRCParams(),
		modelPath:   modelPath,
		trace:       bench.DefaultTrace,
		logLimit:    200,
		status:      "Idle",
		lastUpdated: time.Now(),
	}
}

// Config returns the configuration the state was built with.
func (s *AppState) Config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Snapshot returns a copy of the mutable state for rendering.
func (s *AppState) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logCopy := make([]string, len(s.logs))
	copy(logCopy, s.logs)

	return StateSnapshot{
		Busy:        s.busy,
		LastError:   s.lastError,
		Status:      s.status,
		Bench:       s.bench,
		ModelPath:   s.modelPath,
		Trace:       s.trace,
		Plot:        s.plot,
		Spectrum:    s.spectrum,
		Netlist:     s.netlist,
		Logs:        logCopy,
		LastUpdated: s.lastUpdated,
	}
}

// Bench returns the selected bench.
func (s *AppState) Bench() benchKind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bench
}

// SelectBench switches the active bench.
func (s *AppState) SelectBench(kind benchKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bench = kind
	s.lastUpdated = time.Now()
}

// Params returns the current parameter sets.
func (s *AppState) Params() (netlist.OpAmpParams, netlist.RCParams) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opAmp, s.rc
}

// SetOpAmpParams replaces the op-amp bench parameters.
func (s *AppState) SetOpAmpParams(p netlist.OpAmpParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opAmp = p
	s.lastUpdated = time.Now()
}

// SetRCParams replaces the RC bench parameters.
func (s *AppState) SetRCParams(p netlist.RCParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rc = p
	s.lastUpdated = time.Now()
}

// ModelPath returns the model library path used by the op-amp bench.
func (s *AppState) ModelPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelPath
}

// SetModelPath updates the model library path and persists it so the next
// session starts with the same file.
func (s *AppState) SetModelPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path == s.modelPath {
		return
	}
	s.modelPath = path
	s.cfg.ModelLib = path
	if err := config.Save(s.cfg); err != nil {
		s.appendLogLocked(fmt.Sprintf("config save failed: %v", err))
	}
	s.lastUpdated = time.Now()
}

// Trace returns the signal name the plots draw.
func (s *AppState) Trace() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trace
}

// SetTrace updates the plotted signal name.
func (s *AppState) SetTrace(trace string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trace = trace
	s.lastUpdated = time.Now()
}

// Busy reports whether a simulation is in flight.
func (s *AppState) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

// SetBusy toggles the busy flag. It returns false when a run is already in
// flight and busy was requested, so callers can reject overlapping runs.
func (s *AppState) SetBusy(busy bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if busy && s.busy {
		return false
	}
	s.busy = busy
	s.lastUpdated = time.Now()
	return true
}

// SetStatus updates the one-line status shown in the header.
func (s *AppState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.lastUpdated = time.Now()
}

// SetError records a run failure and surfaces it in the log pane.
func (s *AppState) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err
	if err != nil {
		s.status = "Error"
		s.appendLogLocked(err.Error())
	}
	s.lastUpdated = time.Now()
}

// SetResult stores the rendered plots and the deck of a completed run.
func (s *AppState) SetResult(plot, spectrum image.Image, deck string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plot = plot
	s.spectrum = spectrum
	s.netlist = deck
	s.lastError = nil
	s.status = "Done"
	s.lastUpdated = time.Now()
}

// AppendLog adds a line to the rolling log.
func (s *AppState) AppendLog(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLogLocked(line)
	s.lastUpdated = time.Now()
}

func (s *AppState) appendLogLocked(line string) {
	stamped := time.Now().Format("15:04:05") + " " + line
	s.logs = append(s.logs, stamped)
	if s.logLimit > 0 && len(s.logs) > s.logLimit {
		s.logs = s.logs[len(s.logs)-s.logLimit:]
	}
}
