// Package qrtoken implements the time-sliced token scheme behind rotating
// checkpoint QR codes. The active token is a pure function of wall-clock
// time and the configured rotation interval, so the admin preview and the
// public display surface always agree without any shared state.
package qrtoken

import (
	"fmt"
	"time"
)

const msPerMinute = 60 * 1000

func intervalMs(rotateEveryMinutes int) int64 {
	if rotateEveryMinutes < 1 {
		rotateEveryMinutes = 1
	}
	return int64(rotateEveryMinutes) * msPerMinute
}

// Slot returns the current token slot: floor(nowMs / intervalMs).
func Slot(now time.Time, rotateEveryMinutes int) int64 {
	return now.UnixMilli() / intervalMs(rotateEveryMinutes)
}

// SecondsUntilRotation returns the whole seconds remaining before the slot
// advances, floored at zero.
func SecondsUntilRotation(now time.Time, rotateEveryMinutes int) int {
	interval := intervalMs(rotateEveryMinutes)
	nowMs := now.UnixMilli()
	nextAt := ((nowMs + interval - 1) / interval) * interval
	left := (nextAt - nowMs) / 1000
	if left < 0 {
		left = 0
	}
	return int(left)
}

// Payload assembles the scanned payload. Dynamic checkpoints append the
// current slot; static checkpoints emit the base payload unchanged.
func Payload(base string, dynamic bool, now time.Time, rotateEveryMinutes int) string {
	if !dynamic {
		return base
	}
	return fmt.Sprintf("%s|token:%d", base, Slot(now, rotateEveryMinutes))
}
