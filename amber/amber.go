/*
 * amber.go, part of mdkit.
 *
 *
 * Copyright 2023 A. Villagran
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Lesser General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public
 * License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

// Package amber drives the sander molecular dynamics engine. A
// Process owns a working directory with the run files, launches the
// engine, follows its energy output live through a filesystem watcher
// and exposes the accumulated records, the trajectory and the latest
// coordinates.
package amber

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avillagran/mdkit"
	"github.com/avillagran/mdkit/protocol"
)

// waitPoll is the interval at which Wait checks the process for
// liveness.
const waitPoll = 100 * time.Millisecond

// Options tunes the construction of a Process. The zero value is
// usable; start from DefaultOptions.
type Options struct {
	// Name is the base name of every run file.
	Name string
	// WorkDir is the directory the run happens in. Empty means a
	// fresh scratch directory.
	WorkDir string
	// Exe is an explicit path to the sander executable. When empty
	// the executable is searched under $AMBERHOME/bin and then in
	// the PATH.
	Exe string
	// Config is a custom sander input file used instead of the one
	// generated from the protocol.
	Config string
	// Box declares the system periodic.
	Box bool
	// Seed is the random seed for the thermostat; -1 asks the
	// engine for a time-based seed.
	Seed int
}

// DefaultOptions returns the options New uses when given nil.
func DefaultOptions() *Options {
	return &Options{Name: "amber", Seed: -1}
}

// Process is a handle for one sander run.
type Process struct {
	mol     *mdkit.Molecule
	proto   protocol.Protocol
	name    string
	workDir string
	exe     string
	seed    int
	box     bool

	store *RecordStore

	mu      sync.Mutex
	cmd     *exec.Cmd
	done    chan struct{}
	watch   *watcher
	started bool
}

// New builds a Process for the first frame of mol ran under the
// given protocol, prepares its working directory and resolves the
// sander executable. Nothing is launched yet.
func New(mol *mdkit.Molecule, proto protocol.Protocol, opt *Options) (*Process, error) {
	if mol == nil || len(mol.Coords) == 0 {
		return nil, Error{message: NoMolecule, critical: true}
	}
	if proto == nil {
		return nil, Error{message: NoProtocol, critical: true}
	}
	if opt == nil {
		opt = DefaultOptions()
	}
	p := &Process{
		mol:   mol,
		proto: proto,
		name:  opt.Name,
		seed:  opt.Seed,
		box:   opt.Box,
		store: NewRecordStore(),
	}
	if p.name == "" {
		p.name = "amber"
	}
	exe, err := findSander(opt.Exe)
	if err != nil {
		return nil, err
	}
	p.exe = exe
	p.workDir = opt.WorkDir
	if p.workDir == "" {
		p.workDir = filepath.Join(os.TempDir(), "mdkit-"+uuid.NewString())
	}
	if err := os.MkdirAll(p.workDir, 0755); err != nil {
		return nil, Error{message: UnableToPrepare + ": " + err.Error(), filename: p.workDir, critical: true}
	}
	if err := p.setup(opt.Config); err != nil {
		return nil, err
	}
	return p, nil
}

// findSander resolves the sander executable: an explicit path first,
// then $AMBERHOME/bin/sander, then the PATH.
func findSander(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", Error{message: NoExecutable, filename: explicit, critical: true}
		}
		return explicit, nil
	}
	if home := os.Getenv("AMBERHOME"); home != "" {
		candidate := filepath.Join(home, "bin", "sander")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	path, err := exec.LookPath("sander")
	if err != nil {
		return "", Error{message: NoExecutable, critical: true}
	}
	return path, nil
}

// setup writes the run files: restart coordinates, topology and the
// sander input, and truncates the energy file.
func (p *Process) setup(customCfg string) error {
	if err := writeRst7(p.file("rst7"), p.name, p.mol); err != nil {
		return err
	}
	if err := writePrm7(p.file("prm7"), p.name, p.mol); err != nil {
		return err
	}
	if customCfg != "" {
		content, err := os.ReadFile(customCfg)
		if err != nil {
			return Error{message: MissingConfig, filename: customCfg, critical: true}
		}
		if err := os.WriteFile(p.file("amber"), content, 0644); err != nil {
			return Error{message: err.Error(), filename: p.file("amber"), critical: true}
		}
	} else {
		cfg := protocol.Render(p.proto, p.box, p.seed)
		if err := os.WriteFile(p.file("amber"), []byte(cfg), 0644); err != nil {
			return Error{message: err.Error(), filename: p.file("amber"), critical: true}
		}
	}
	if err := os.WriteFile(p.file("nrg"), nil, 0644); err != nil {
		return Error{message: err.Error(), filename: p.file("nrg"), critical: true}
	}
	return nil
}

// file returns the path of the run file with the given extension.
func (p *Process) file(ext string) string {
	return filepath.Join(p.workDir, p.name+"."+ext)
}

// WorkDir returns the directory the run happens in.
func (p *Process) WorkDir() string {
	return p.workDir
}

// Name returns the base name of the run files.
func (p *Process) Name() string {
	return p.name
}

// Exe returns the resolved sander executable.
func (p *Process) Exe() string {
	return p.exe
}

// args returns the sander command line arguments for this run.
func (p *Process) args() []string {
	a := []string{
		"-O",
		"-i", p.name + ".amber",
		"-p", p.name + ".prm7",
		"-c", p.name + ".rst7",
		"-o", "stdout",
		"-r", p.name + ".crd",
		"-inf", p.name + ".nrg",
	}
	switch proto := p.proto.(type) {
	case *protocol.Equilibration:
		if proto.Restrained {
			a = append(a, "-ref", p.name+".rst7")
		}
	case *protocol.Production:
		a = append(a, "-x", p.name+".mdcrd")
	}
	return a
}

// Start launches sander in the working directory and begins following
// its energy output. Starting an already running process is a no-op.
func (p *Process) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started && p.runningLocked() {
		return nil
	}
	args := p.args()
	cmdline := p.exe + " " + strings.Join(args, " ")
	readme := fmt.Sprintf("# To run the simulation:\n%s\n", cmdline)
	if err := os.WriteFile(filepath.Join(p.workDir, "README.txt"), []byte(readme), 0644); err != nil {
		return Error{message: err.Error(), filename: p.workDir, critical: true}
	}
	if err := os.WriteFile(p.file("nrg"), nil, 0644); err != nil {
		return Error{message: err.Error(), filename: p.file("nrg"), critical: true}
	}
	stdout, err := os.Create(p.file("out"))
	if err != nil {
		return Error{message: err.Error(), filename: p.file("out"), critical: true}
	}
	stderr, err := os.Create(p.file("err"))
	if err != nil {
		stdout.Close()
		return Error{message: err.Error(), filename: p.file("err"), critical: true}
	}
	cmd := exec.Command(p.exe, args...)
	cmd.Dir = p.workDir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		return Error{message: err.Error(), filename: p.exe, deco: []string{"Start"}, critical: true}
	}
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		stdout.Close()
		stderr.Close()
		close(done)
	}()
	p.cmd = cmd
	p.done = done
	p.started = true
	watch, err := newWatcher(p)
	if err != nil {
		// the run is still useful without live records
		watch = nil
	}
	p.watch = watch
	return nil
}

// Running reports whether the engine is currently running.
func (p *Process) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.runningLocked()
}

func (p *Process) runningLocked() bool {
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the engine exits, then stops and joins the
// watcher so no more records arrive afterwards.
func (p *Process) Wait() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return Error{message: NotRunning, critical: true}
	}
	done := p.done
	p.mu.Unlock()
	for {
		select {
		case <-done:
			p.stopWatcher()
			return nil
		case <-time.After(waitPoll):
		}
	}
}

// Kill stops the watcher and then the engine. Killing a process that
// already exited only stops the watcher.
func (p *Process) Kill() error {
	p.stopWatcher()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cmd == nil {
		return nil
	}
	if p.runningLocked() {
		if err := p.cmd.Process.Kill(); err != nil {
			return Error{message: err.Error(), deco: []string{"Kill"}, critical: true}
		}
	}
	<-p.done
	return nil
}

func (p *Process) stopWatcher() {
	p.mu.Lock()
	watch := p.watch
	p.watch = nil
	p.mu.Unlock()
	if watch != nil {
		watch.stop()
	}
}

// dialect returns the energy file dialect of the run.
func (p *Process) dialect() Dialect {
	if p.proto.Kind() == protocol.KindMinimisation {
		return Minimisation
	}
	return Dynamics
}

// updateEnergy re-reads the energy file into the record store. A
// missing file is not an error; the engine may not have written
// anything yet.
func (p *Process) updateEnergy() {
	path := p.file("nrg")
	if _, err := os.Stat(path); err != nil {
		return
	}
	p.store.UpdateFromFile(path, p.dialect())
}
