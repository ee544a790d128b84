package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nescore/internal/cpu"
	"nescore/internal/logger"
	"nescore/internal/nes"
	"nescore/internal/version"
)

// StateManager stores machine states in numbered slots, one file per slot
// per ROM.
type StateManager struct {
	saveDirectory string
	maxSlots      int
}

// SaveState is the on-disk form of a machine state.
type SaveState struct {
	Version     string    `json:"version"`
	Timestamp   time.Time `json:"timestamp"`
	ROMPath     string    `json:"rom_path"`
	ROMChecksum string    `json:"rom_checksum"`
	SlotNumber  int       `json:"slot_number"`

	CPU    CPUStateData `json:"cpu_state"`
	Frames uint64       `json:"frame_count"`
	RAM    []uint8      `json:"ram_data"`
	PRGRAM []uint8      `json:"prg_ram_data,omitempty"`
}

// CPUStateData is the processor part of a save file.
type CPUStateData struct {
	PC     uint16 `json:"pc"`
	A      uint8  `json:"a"`
	X      uint8  `json:"x"`
	Y      uint8  `json:"y"`
	SP     uint8  `json:"sp"`
	P      uint8  `json:"p"`
	Cycles int    `json:"cycles"`
}

// StateSlotInfo describes a save slot.
type StateSlotInfo struct {
	SlotNumber int
	Used       bool
	Timestamp  time.Time
	FilePath   string
	FileSize   int64
}

// NewStateManager creates a state manager saving into saveDirectory.
func NewStateManager(saveDirectory string, maxSlots int) *StateManager {
	return &StateManager{
		saveDirectory: saveDirectory,
		maxSlots:      max(maxSlots, 1),
	}
}

func (sm *StateManager) checkSlot(slot int) error {
	if slot < 0 || slot >= sm.maxSlots {
		return fmt.Errorf("%w: %d", ErrSlot, slot)
	}
	return nil
}

// SaveState writes the state of m to a slot.
func (sm *StateManager) SaveState(m *nes.Machine, slot int, romPath string) error {
	if err := sm.checkSlot(slot); err != nil {
		return err
	}

	checksum, err := romChecksum(romPath)
	if err != nil {
		return err
	}

	s := m.SaveState()
	state := &SaveState{
		Version:     version.GetVersion(),
		Timestamp:   time.Now(),
		ROMPath:     romPath,
		ROMChecksum: checksum,
		SlotNumber:  slot,
		CPU: CPUStateData{
			PC:     s.Registers.PC,
			A:      s.Registers.A,
			X:      s.Registers.X,
			Y:      s.Registers.Y,
			SP:     s.Registers.SP,
			P:      s.Registers.P,
			Cycles: s.Cycles,
		},
		Frames: s.Frames,
		RAM:    s.RAM,
		PRGRAM: s.PRGRAM,
	}

	path := sm.slotFilePath(slot, romPath)
	if err := sm.saveToFile(state, path); err != nil {
		return err
	}
	logger.Logf("states", "saved slot %d to %s", slot, path)
	return nil
}

// LoadState restores m from a slot.
func (sm *StateManager) LoadState(m *nes.Machine, slot int, romPath string) error {
	if err := sm.checkSlot(slot); err != nil {
		return err
	}

	path := sm.slotFilePath(slot, romPath)
	state, err := sm.loadFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %d", ErrNoState, slot)
	}
	if err != nil {
		return err
	}

	if err := sm.validateSaveState(state, romPath); err != nil {
		return err
	}

	err = m.LoadState(nes.State{
		Registers: cpu.Registers{
			PC: state.CPU.PC,
			SP: state.CPU.SP,
			A:  state.CPU.A,
			X:  state.CPU.X,
			Y:  state.CPU.Y,
			P:  state.CPU.P,
		},
		Cycles: state.CPU.Cycles,
		Frames: state.Frames,
		RAM:    state.RAM,
		PRGRAM: state.PRGRAM,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Logf("states", "loaded slot %d from %s", slot, path)
	return nil
}

func (sm *StateManager) saveToFile(state *SaveState, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (sm *StateManager) loadFromFile(path string) (*SaveState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state SaveState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &state, nil
}

// validateSaveState checks that a state belongs to the ROM being run. The
// checksum decides; the path may differ.
func (sm *StateManager) validateSaveState(state *SaveState, romPath string) error {
	if state.Version == "" {
		return ErrStateVersion
	}

	checksum, err := romChecksum(romPath)
	if err != nil {
		return err
	}
	if state.ROMChecksum != checksum {
		return ErrStateROM
	}
	return nil
}

func (sm *StateManager) slotFilePath(slot int, romPath string) string {
	name := filepath.Base(romPath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(sm.saveDirectory, fmt.Sprintf("%s_slot_%d.state", name, slot))
}

// romChecksum returns the SHA-256 of the ROM file.
func romChecksum(romPath string) (string, error) {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SlotInfo returns information about every slot for a ROM.
func (sm *StateManager) SlotInfo(romPath string) []StateSlotInfo {
	slots := make([]StateSlotInfo, sm.maxSlots)
	for i := range slots {
		slots[i].SlotNumber = i

		path := sm.slotFilePath(i, romPath)
		stat, err := os.Stat(path)
		if err != nil {
			continue
		}
		slots[i].Used = true
		slots[i].FilePath = path
		slots[i].FileSize = stat.Size()
		slots[i].Timestamp = stat.ModTime()
		if state, err := sm.loadFromFile(path); err == nil {
			slots[i].Timestamp = state.Timestamp
		}
	}
	return slots
}

// DeleteState removes the state in a slot.
func (sm *StateManager) DeleteState(slot int, romPath string) error {
	if err := sm.checkSlot(slot); err != nil {
		return err
	}
	err := os.Remove(sm.slotFilePath(slot, romPath))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %d", ErrNoState, slot)
	}
	return err
}

// HasSaveState returns true if a slot holds a state.
func (sm *StateManager) HasSaveState(slot int, romPath string) bool {
	if sm.checkSlot(slot) != nil {
		return false
	}
	_, err := os.Stat(sm.slotFilePath(slot, romPath))
	return err == nil
}

// MaxSlots returns the number of save slots.
func (sm *StateManager) MaxSlots() int {
	return sm.maxSlots
}
