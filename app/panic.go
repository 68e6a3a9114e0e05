package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"dmdclock/dmd"
	"dmdclock/font"
	"dmdclock/hal"
)

// recoverStep turns a panic inside a frame into an error, after logging the
// stack and putting the message on the panel.
func recoverStep(h hal.HAL, errp *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("dmdclock panic: %v", v))
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}
	if d := h.Display(); d != nil {
		frame := panicFrame(fmt.Sprint(v))
		d.SetBrightness(dmd.MaxBrightness)
		_ = d.SetFrame(frame)
	}
	*errp = fmt.Errorf("panic: %v", v)
}

// panicFrame wraps "PANIC" and msg in the system font across the frame.
func panicFrame(msg string) *dmd.Dotmap {
	frame := dmd.NewFrame()
	f := font.System
	cols := dmd.FrameWidth / max(f.Width("0"), 1)

	y := 0
	for _, line := range []string{"PANIC", strings.ToUpper(msg)} {
		for len(line) > 0 {
			if y+f.Height() > dmd.FrameHeight {
				return frame
			}
			chunk, rest := takeRunes(line, cols)
			frame.Overlay(f.Render(chunk), 0, y)
			y += f.Height()
			line = strings.TrimLeft(rest, " ")
		}
	}
	return frame
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
