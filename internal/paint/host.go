// Package paint is the in-memory host shared by the terminal and HTML
// renderers. It owns decoration types, records what the engine applies to
// each document and lays the result out as styled lines.
package paint

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/phyten/taglight/internal/decoration"
)

// Handle is a decoration type created by Host.
type Handle struct {
	id       int
	opts     decoration.Options
	disposed atomic.Bool
}

func (h *Handle) Options() decoration.Options { return h.opts }
func (h *Handle) ID() int                     { return h.id }
func (h *Handle) Disposed() bool              { return h.disposed.Load() }

// Host creates numbered handles and tracks which are still live.
type Host struct {
	mu   sync.Mutex
	next int
	live map[*Handle]struct{}
}

func NewHost() *Host {
	return &Host{live: make(map[*Handle]struct{})}
}

func (h *Host) CreateDecorationType(o decoration.Options) (decoration.Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	handle := &Handle{id: h.next, opts: o}
	h.live[handle] = struct{}{}
	return handle, nil
}

func (h *Host) Dispose(d decoration.Handle) error {
	handle, ok := d.(*Handle)
	if !ok {
		return fmt.Errorf("dispose: foreign handle %T", d)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.live[handle]; !ok {
		return fmt.Errorf("dispose: handle %d is not live", handle.id)
	}
	delete(h.live, handle)
	handle.disposed.Store(true)
	return nil
}

// Live reports how many handles have not been disposed.
func (h *Host) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}

// Created reports how many handles were ever created.
func (h *Host) Created() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.next
}
