package config

import (
	"errors"
	"testing"
)

type memFlash struct {
	data   []byte
	erases int
}

func newMemFlash(size int) *memFlash {
	f := &memFlash{data: make([]byte, size)}
	for i := range f.data {
		f.data[i] = 0xFF
	}
	return f
}

func (f *memFlash) EraseBlockBytes() uint32 { return 256 }

func (f *memFlash) ReadAt(p []byte, off uint32) (int, error) {
	return copy(p, f.data[off:]), nil
}

func (f *memFlash) WriteAt(p []byte, off uint32) (int, error) {
	for i, b := range p {
		if f.data[int(off)+i]&b != b {
			return 0, errors.New("write requires erase")
		}
	}
	return copy(f.data[off:], p), nil
}

func (f *memFlash) Erase(off, size uint32) error {
	f.erases++
	for i := off; i < off+size; i++ {
		f.data[i] = 0xFF
	}
	return nil
}

func TestLoadErasedFlash(t *testing.T) {
	s := NewStore(newMemFlash(1024), 0)
	if _, err := s.Load(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("Load() err = %v, want %v", err, ErrNoConfig)
	}
	it, err := s.LoadOrDefaults()
	if err == nil {
		t.Fatal("LoadOrDefaults() err = nil, want error")
	}
	if it != Defaults() {
		t.Fatalf("LoadOrDefaults() = %+v, want defaults", it)
	}
}

func TestSaveLoad(t *testing.T) {
	f := newMemFlash(1024)
	s := NewStore(f, 256)
	want := Items{DST: 1, TimeFormat: Format12HourAMPM, Brightness: 40, ClockDelay: 6, DotColour: 3, ClockFont: 1}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}

	// A second save must erase first or the flash write would fail.
	want.Brightness = 10
	if err := s.Save(want); err != nil {
		t.Fatalf("second Save() err = %v", err)
	}
	if f.erases != 2 {
		t.Fatalf("erases = %d, want 2", f.erases)
	}
	if got, _ := s.Load(); got.Brightness != 10 {
		t.Fatalf("Brightness = %d, want 10", got.Brightness)
	}
}

func TestLoadDetectsCorruption(t *testing.T) {
	f := newMemFlash(1024)
	s := NewStore(f, 0)
	if err := s.Save(Defaults()); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	f.data[headerSize+2] ^= 0x01

	if _, err := s.Load(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() err = %v, want %v", err, ErrCorrupt)
	}
}

func TestSaveClamps(t *testing.T) {
	s := NewStore(newMemFlash(1024), 0)
	if err := s.Save(Items{DST: 5, Brightness: 99, ClockDelay: -1, DotColour: 12}); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	want := Items{DST: 1, Brightness: MaxBrightness, ClockDelay: 0, DotColour: NumColours - 1}
	if got != want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestDelay(t *testing.T) {
	it := Defaults()
	if it.Delay() != ClockDelays[1] {
		t.Fatalf("Delay() = %v, want %v", it.Delay(), ClockDelays[1])
	}
	it.ClockDelay = 99
	if it.Delay() != ClockDelays[NumClockDelays-1] {
		t.Fatalf("Delay() out of range = %v", it.Delay())
	}
}
