package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
)

var (
	// ErrNoConfig means the flash holds no settings record (erased or foreign data).
	ErrNoConfig = errors.New("config: no settings record")
	// ErrCorrupt means a record was found but failed validation.
	ErrCorrupt = errors.New("config: corrupt settings record")
)

const (
	recordVersion = 1
	fieldCount    = 6
	headerSize    = 5
	recordSize    = headerSize + fieldCount + 4
)

var recordMagic = [4]byte{'D', 'M', 'D', 'C'}

// Flash is the slice of hal.Flash the store needs.
type Flash interface {
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Store persists Items in one erase block of flash.
type Store struct {
	flash Flash
	off   uint32
}

// NewStore returns a Store using the erase block at off.
func NewStore(flash Flash, off uint32) *Store {
	return &Store{flash: flash, off: off}
}

// Load reads the settings record.
func (s *Store) Load() (Items, error) {
	var rec [recordSize]byte
	n, err := s.flash.ReadAt(rec[:], s.off)
	if err != nil {
		return Items{}, fmt.Errorf("config: read at %d: %w", s.off, err)
	}
	if n < recordSize || [4]byte(rec[:4]) != recordMagic {
		return Items{}, ErrNoConfig
	}
	if rec[4] != recordVersion {
		return Items{}, fmt.Errorf("version %d: %w", rec[4], ErrCorrupt)
	}
	body := rec[:headerSize+fieldCount]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(rec[headerSize+fieldCount:]) {
		return Items{}, fmt.Errorf("checksum mismatch: %w", ErrCorrupt)
	}

	f := rec[headerSize:]
	it := Items{
		DST:        int(f[0]),
		TimeFormat: int(f[1]),
		Brightness: int(f[2]),
		ClockDelay: int(f[3]),
		DotColour:  int(f[4]),
		ClockFont:  int(f[5]),
	}
	return it.Clamped(), nil
}

// LoadOrDefaults returns the stored settings, or Defaults and the load error.
func (s *Store) LoadOrDefaults() (Items, error) {
	it, err := s.Load()
	if err != nil {
		return Defaults(), err
	}
	return it, nil
}

// Save erases the settings block and writes it.
func (s *Store) Save(it Items) error {
	it = it.Clamped()

	var rec [recordSize]byte
	copy(rec[:4], recordMagic[:])
	rec[4] = recordVersion
	f := rec[headerSize:]
	f[0] = byte(it.DST)
	f[1] = byte(it.TimeFormat)
	f[2] = byte(it.Brightness)
	f[3] = byte(it.ClockDelay)
	f[4] = byte(it.DotColour)
	f[5] = byte(it.ClockFont)
	binary.LittleEndian.PutUint32(rec[headerSize+fieldCount:], crc32.ChecksumIEEE(rec[:headerSize+fieldCount]))

	if block := s.flash.EraseBlockBytes(); block > 0 {
		start := s.off - s.off%block
		if err := s.flash.Erase(start, block); err != nil {
			return fmt.Errorf("config: erase at %d: %w", start, err)
		}
	}
	if _, err := s.flash.WriteAt(rec[:], s.off); err != nil {
		return fmt.Errorf("config: write at %d: %w", s.off, err)
	}
	return nil
}
