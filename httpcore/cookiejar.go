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

package httpcore

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Cookie is one stored cookie.
type Cookie struct {
	Name, Value string
	Domain      string
	Path        string
	Secure      bool
	Expires     time.Time // zero = session cookie, never filtered by expiry
}

func (c Cookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && now.After(c.Expires)
}

func domainMatch(cookieDomain, host string, symmetricWWW bool) bool {
	cd := strings.TrimPrefix(strings.ToLower(cookieDomain), ".")
	h := strings.ToLower(host)
	if cd == h {
		return true
	}
	if strings.HasSuffix(h, "."+cd) {
		return true
	}
	if !symmetricWWW {
		return false
	}
	return strings.TrimPrefix(cd, "www.") == strings.TrimPrefix(h, "www.")
}

func pathMatch(cookiePath, reqPath string) bool {
	if cookiePath == "" || cookiePath == "/" {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	return len(reqPath) == len(cookiePath) || reqPath[len(cookiePath)] == '/'
}

// CookieJarConfig configures a CookieJar.
type CookieJarConfig struct {
	// Path persists the jar to disk if non-empty, loaded immediately if
	// the file already exists.
	Path string
	// SymmetricWWW relaxes domain matching so a cookie set for
	// "example.com" also matches "www.example.com" and vice versa, the
	// way common browsers behave even though RFC 6265 doesn't require
	// it. Off unless set to true; the zero value does not turn it on.
	SymmetricWWW bool
}

// CookieJar is a domain/path-scoped cookie store with an optional
// file-backed persistence path.
type CookieJar struct {
	mu      sync.Mutex
	cookies []Cookie
	cfg     CookieJarConfig
}

// NewCookieJar returns a jar per cfg. A zero-valued CookieJarConfig{}
// gives an in-memory jar with SymmetricWWW off.
func NewCookieJar(cfg CookieJarConfig) (*CookieJar, error) {
	j := &CookieJar{cfg: cfg}
	if cfg.Path == "" {
		return j, nil
	}
	if err := j.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return j, nil
}

// SetFromResponse stores every Set-Cookie value from a response, scoped
// to host/defaultPath.
func (j *CookieJar) SetFromResponse(host, defaultPath string, setCookies []string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, sc := range setCookies {
		c, ok := parseSetCookie(sc, host, defaultPath)
		if !ok {
			continue
		}
		j.replace(c)
	}
	if j.cfg.Path != "" {
		_ = j.persist()
	}
}

func (j *CookieJar) replace(c Cookie) {
	for i := range j.cookies {
		if j.cookies[i].Name == c.Name && j.cookies[i].Domain == c.Domain && j.cookies[i].Path == c.Path {
			j.cookies[i] = c
			return
		}
	}
	j.cookies = append(j.cookies, c)
}

// CookieHeader returns the Cookie header value for a request to host/path
// over secure or not, filtering expired, domain-mismatched, path-mismatched
// and secure-only-on-plaintext cookies.
func (j *CookieJar) CookieHeader(host, path string, secure bool) string {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	var parts []string
	for _, c := range j.cookies {
		if c.expired(now) {
			continue
		}
		if c.Secure && !secure {
			continue
		}
		if !domainMatch(c.Domain, host, j.cfg.SymmetricWWW) || !pathMatch(c.Path, path) {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

func parseSetCookie(sc, host, defaultPath string) (Cookie, bool) {
	attrs := strings.Split(sc, ";")
	if len(attrs) == 0 {
		return Cookie{}, false
	}
	nv := strings.SplitN(strings.TrimSpace(attrs[0]), "=", 2)
	if len(nv) != 2 {
		return Cookie{}, false
	}
	c := Cookie{Name: strings.TrimSpace(nv[0]), Value: strings.TrimSpace(nv[1]), Domain: host, Path: defaultPath}

	for _, a := range attrs[1:] {
		a = strings.TrimSpace(a)
		kv := strings.SplitN(a, "=", 2)
		key := strings.ToLower(kv[0])
		val := ""
		if len(kv) == 2 {
			val = kv[1]
		}
		switch key {
		case "domain":
			c.Domain = val
		case "path":
			c.Path = val
		case "secure":
			c.Secure = true
		case "max-age":
			if n, err := strconv.Atoi(val); err == nil {
				c.Expires = time.Now().Add(time.Duration(n) * time.Second)
			}
		case "expires":
			if t, err := time.Parse(time.RFC1123, val); err == nil {
				c.Expires = t
			}
		}
	}
	return c, true
}

// load reads the persisted jar: one cookie per line, serialized as a
// Set-Cookie attribute sequence with an extra leading "host\t" field.
func (j *CookieJar) load() error {
	data, err := os.ReadFile(j.cfg.Path)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			continue
		}
		host := line[:tab]
		c, ok := parseSetCookie(line[tab+1:], host, "/")
		if ok {
			j.cookies = append(j.cookies, c)
		}
	}
	return nil
}

// persist rewrites the jar file by scan-and-replace into a temp file then
// rename, so a crash mid-write never leaves a half-written jar.
func (j *CookieJar) persist() error {
	tmp := j.cfg.Path + ".tmp"
	var b strings.Builder
	for _, c := range j.cookies {
		b.WriteString(c.Domain)
		b.WriteByte('\t')
		b.WriteString(fmt.Sprintf("%s=%s", c.Name, c.Value))
		if c.Path != "" {
			b.WriteString("; Path=" + c.Path)
		}
		if c.Secure {
			b.WriteString("; Secure")
		}
		if !c.Expires.IsZero() {
			b.WriteString("; Expires=" + c.Expires.Format(time.RFC1123))
		}
		b.WriteByte('\n')
	}
	if err := os.WriteFile(tmp, []byte(b.String()), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, j.cfg.Path)
}
