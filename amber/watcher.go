/*
 * watcher.go, part of mdkit.
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

package amber

import (
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher states. A fresh watcher is not watching; the first write to
// the energy file flips it to watching and clears whatever stale
// records the store held.
const (
	notWatching int32 = iota
	watching
)

// watcher follows the energy file of a run through fsnotify events.
type watcher struct {
	proc  *Process
	fsw   *fsnotify.Watcher
	done  chan struct{}
	state int32
}

// newWatcher starts following the working directory of p. It must be
// called after the run files exist.
func newWatcher(p *Process) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, Error{message: err.Error(), deco: []string{"newWatcher"}, critical: false}
	}
	if err := fsw.Add(p.workDir); err != nil {
		fsw.Close()
		return nil, Error{message: err.Error(), filename: p.workDir, deco: []string{"newWatcher"}, critical: false}
	}
	w := &watcher{proc: p, fsw: fsw, done: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *watcher) loop() {
	defer close(w.done)
	target := filepath.Clean(w.proc.file("nrg"))
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.onEnergyWrite()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("amber: watcher error: %v", err)
		}
	}
}

// onEnergyWrite handles one modification of the energy file. The
// first one after Start clears the store, so records from a previous
// run never mix with the new ones.
func (w *watcher) onEnergyWrite() {
	if atomic.CompareAndSwapInt32(&w.state, notWatching, watching) {
		w.proc.store.Reset()
	}
	w.proc.updateEnergy()
}

// stop closes the watcher and waits for its goroutine to finish. No
// records arrive after stop returns.
func (w *watcher) stop() {
	w.fsw.Close()
	<-w.done
}
