// SPDX-License-Identifier: GPL-2.0-or-later

package light

import (
	"fmt"
	"log/slog"
	"strings"
)

// MaxVisibleLights is the number of lights a manager keeps.
const MaxVisibleLights = 100

type LightingModel int

const (
	Unlit LightingModel = iota
	Forward
	Deferred
)

func (m LightingModel) String() string {
	switch m {
	case Unlit:
		return "unlit"
	case Forward:
		return "forward"
	case Deferred:
		return "deferred"
	}
	return "unknown"
}

func ParseLightingModel(s string) (LightingModel, error) {
	switch strings.ToLower(s) {
	case "unlit":
		return Unlit, nil
	case "forward":
		return Forward, nil
	case "", "deferred":
		return Deferred, nil
	}
	return Deferred, fmt.Errorf("unknown lighting model %q", s)
}

// Handle references a light in a Manager. Handles of removed lights turn
// stale and are not reused for other lights.
type Handle struct {
	slot uint32
	gen  uint32
}

// Valid reports whether the handle was ever returned by AddLight.
func (h Handle) Valid() bool {
	return h.gen != 0
}

type slot struct {
	light  Light
	gen    uint32
	active int // index in Manager.active or -1
}

// Manager owns the active dynamic lights. The order of the lights is not
// stable, removal swaps the last light into the gap.
type Manager struct {
	model   LightingModel
	slots   []slot
	free    []uint32
	active  []uint32
	dropped int
}

func NewManager(model LightingModel) *Manager {
	return &Manager{
		model:  model,
		slots:  make([]slot, 0, MaxVisibleLights),
		active: make([]uint32, 0, MaxVisibleLights),
	}
}

func (m *Manager) LightingModel() LightingModel {
	return m.model
}

// SetLightingModel changes the model. Switching to Unlit removes all lights.
func (m *Manager) SetLightingModel(model LightingModel) {
	m.model = model
	if model == Unlit {
		m.Clear()
	}
}

// AllocLight returns a white omni light with default settings.
func AllocLight() Light {
	return Light{
		Type:      Omni,
		Radius:    300,
		Fov:       90,
		Color:     [3]float32{1, 1, 1},
		Intensity: 1,
		Flags:     CastShadows,
	}
}

// AddLight takes a copy of l. It returns false and drops the light if the
// manager is unlit or full.
func (m *Manager) AddLight(l Light) (Handle, bool) {
	if m.model == Unlit || len(m.active) >= MaxVisibleLights {
		m.dropped++
		slog.Debug("Dropped dynamic light", slog.Int("active", len(m.active)), slog.String("model", m.model.String()))
		return Handle{}, false
	}
	var si uint32
	if n := len(m.free); n > 0 {
		si = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		si = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
	}
	s := &m.slots[si]
	s.gen++
	s.light = l
	s.light.dying = false
	s.light.current = l.Intensity
	s.active = len(m.active)
	m.active = append(m.active, si)
	return Handle{slot: si, gen: s.gen}, true
}

// RemoveLight removes the light at index i of the active list by moving the
// last light into its place.
func (m *Manager) RemoveLight(i int) {
	if i < 0 || i >= len(m.active) {
		return
	}
	si := m.active[i]
	last := len(m.active) - 1
	if i != last {
		moved := m.active[last]
		m.active[i] = moved
		m.slots[moved].active = i
	}
	m.active = m.active[:last]
	s := &m.slots[si]
	s.active = -1
	s.gen++
	m.free = append(m.free, si)
}

func (m *Manager) lookup(h Handle) *slot {
	if !h.Valid() || int(h.slot) >= len(m.slots) {
		return nil
	}
	s := &m.slots[h.slot]
	if s.gen != h.gen || s.active < 0 {
		return nil
	}
	return s
}

// Remove removes the light of h. It reports false for stale handles.
func (m *Manager) Remove(h Handle) bool {
	s := m.lookup(h)
	if s == nil {
		return false
	}
	m.RemoveLight(s.active)
	return true
}

// Get returns the light of h or nil if it was removed.
func (m *Manager) Get(h Handle) *Light {
	s := m.lookup(h)
	if s == nil {
		return nil
	}
	return &s.light
}

// ByKey returns the first light owned by key. Unowned lights have no key
// and are never found.
func (m *Manager) ByKey(key int) (Handle, bool) {
	if key == 0 {
		return Handle{}, false
	}
	for _, si := range m.active {
		s := &m.slots[si]
		if s.light.Key == key {
			return Handle{slot: si, gen: s.gen}, true
		}
	}
	return Handle{}, false
}

// UpdateLights advances the die and fade timers and removes expired lights.
func (m *Manager) UpdateLights(dt float32) {
	for i := 0; i < len(m.active); i++ {
		l := &m.slots[m.active[i]].light
		if l.age(dt) {
			m.RemoveLight(i)
			i--
		}
	}
}

// Count returns the number of active lights.
func (m *Manager) Count() int {
	return len(m.active)
}

// At returns the i-th active light.
func (m *Manager) At(i int) *Light {
	return &m.slots[m.active[i]].light
}

// HandleAt returns the handle of the i-th active light.
func (m *Manager) HandleAt(i int) Handle {
	si := m.active[i]
	return Handle{slot: si, gen: m.slots[si].gen}
}

// Dropped returns how many lights were rejected since the last Clear.
func (m *Manager) Dropped() int {
	return m.dropped
}

// Clear removes all lights.
func (m *Manager) Clear() {
	for len(m.active) > 0 {
		m.RemoveLight(len(m.active) - 1)
	}
	m.dropped = 0
}
