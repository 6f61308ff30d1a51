/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package fdur extends time.Duration with day notation, matching every
// timeout field in the configuration surface (keepAliveTimeout,
// readTimeout, writeTimeout, ConIdleTimeout, ...).
package fdur

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration. MaxDuration is the "no timeout" sentinel
// referenced throughout the scheduler and stream contracts.
type Duration time.Duration

// MaxDuration is the sentinel meaning "no timeout" for any suspension API.
const MaxDuration = Duration(1<<63 - 1)

func Seconds(i int64) Duration { return Duration(time.Duration(i) * time.Second) }
func Minutes(i int64) Duration { return Duration(time.Duration(i) * time.Minute) }
func Hours(i int64) Duration   { return Duration(time.Duration(i) * time.Hour) }
func Days(i int64) Duration    { return Duration(time.Duration(i) * 24 * time.Hour) }

// FromStd converts a time.Duration to Duration without modification.
func FromStd(d time.Duration) Duration { return Duration(d) }

// Time returns the equivalent time.Duration.
func (d Duration) Time() time.Duration { return time.Duration(d) }

// IsMax reports whether d is the "no timeout" sentinel.
func (d Duration) IsMax() bool { return d == MaxDuration }

// String renders the duration with a leading "<n>d" component when it
// spans one or more full days, e.g. "5d23h15m13s".
func (d Duration) String() string {
	if d.IsMax() {
		return "unlimited"
	}
	std := time.Duration(d)
	if std < 0 {
		return "-" + Duration(-std).String()
	}
	days := std / (24 * time.Hour)
	rest := std % (24 * time.Hour)
	if days == 0 {
		return rest.String()
	}
	return fmt.Sprintf("%dd%s", days, rest.String())
}

// Parse parses a day-aware duration string such as "5d23h15m13s" or any
// plain time.ParseDuration-compatible string.
func Parse(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("fdur: empty duration")
	}
	if idx := strings.IndexByte(s, 'd'); idx > 0 {
		if _, err := strconv.Atoi(s[:idx]); err == nil {
			days, _ := strconv.Atoi(s[:idx])
			rest := s[idx+1:]
			var restDur time.Duration
			if rest != "" {
				d, err := time.ParseDuration(rest)
				if err != nil {
					return 0, err
				}
				restDur = d
			}
			return Duration(time.Duration(days)*24*time.Hour + restDur), nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return Duration(d), nil
}

// MarshalText implements encoding.TextMarshaler for config file round-trips.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler for config file round-trips.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
