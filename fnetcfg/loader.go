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

package fnetcfg

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/nabbar/fibernet/ferr"
)

// Loader wraps a spf13/viper instance bound to one config file, decoding
// into fdur.Duration-aware, validator-tagged structs and forwarding
// fsnotify change events (via viper's own watcher) to registered
// callbacks, one per component key, the way a reload-capable server wires
// its components independently.
type Loader struct {
	mu       sync.Mutex
	vpr      *viper.Viper
	watching bool
	onChange []func()
}

// NewLoader reads path (format inferred from its extension) into a fresh
// viper instance.
func NewLoader(path string) (*Loader, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, ferr.New(ferr.UsageError, "fnetcfg: read config "+path, err)
	}
	return &Loader{vpr: v}, nil
}

func decodeHooks() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
}

// Load unmarshals the sub-tree at key into out and validates it.
func (l *Loader) Load(key string, out interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.vpr.UnmarshalKey(key, out, decodeHooks()); err != nil {
		return ferr.New(ferr.UsageError, "fnetcfg: decode key "+key, err)
	}
	return Validate(out)
}

// LoadServer loads and validates a ServerConfig at key.
func (l *Loader) LoadServer(key string) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := l.Load(key, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient loads and validates a ClientConfig at key.
func (l *Loader) LoadClient(key string) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := l.Load(key, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OnChange registers fn to run (on viper's watcher goroutine) whenever the
// underlying file changes on disk. The first call to OnChange also starts
// the watch; fsnotify has no unwatch primitive viper exposes, so a Loader's
// watch runs for the process lifetime once started.
func (l *Loader) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.onChange = append(l.onChange, fn)
	if l.watching {
		return
	}
	l.watching = true

	l.vpr.OnConfigChange(func(_ fsnotify.Event) {
		l.mu.Lock()
		cbs := append([]func(){}, l.onChange...)
		l.mu.Unlock()
		for _, cb := range cbs {
			cb()
		}
	})
	l.vpr.WatchConfig()
}

// Raw exposes the underlying viper instance for callers that need
// component-style access (flags, env binding) beyond this package's
// typed Load helpers.
func (l *Loader) Raw() *viper.Viper {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.vpr
}
