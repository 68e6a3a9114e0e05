// Package clock layers daylight saving time over the hardware real-time clock.
package clock

import "time"

// RTC is the battery-backed hardware clock. It keeps standard time.
type RTC interface {
	Now() time.Time
	Set(t time.Time) error
}

// Clock reads and programs an RTC in local wall time, adding one hour while
// DST is on.
type Clock struct {
	rtc RTC
	dst func() bool
}

// New returns a Clock. dst is consulted on every call so a DST change applies
// immediately; nil means DST is never applied.
func New(rtc RTC, dst func() bool) *Clock {
	if dst == nil {
		dst = func() bool { return false }
	}
	return &Clock{rtc: rtc, dst: dst}
}

// NowDST returns the wall time shown to the user.
func (c *Clock) NowDST() time.Time {
	t := c.rtc.Now()
	if c.dst() {
		t = t.Add(time.Hour)
	}
	return t
}

// SetDST programs the RTC so that NowDST reads back t.
func (c *Clock) SetDST(t time.Time) error {
	if c.dst() {
		t = t.Add(-time.Hour)
	}
	return c.rtc.Set(t)
}

// Fields is the time-of-day part of a timestamp.
type Fields struct {
	Hour   int
	Minute int
	Second int
}

// Break splits the time of day out of t.
func Break(t time.Time) Fields {
	return Fields{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Make rebuilds a timestamp on base's date from f.
func Make(base time.Time, f Fields) time.Time {
	y, m, d := base.Date()
	return time.Date(y, m, d, f.Hour, f.Minute, f.Second, 0, base.Location())
}
