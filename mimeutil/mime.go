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

// Package mimeutil maps file extensions to MIME types and parses/builds
// Content-Type parameter strings (charset, boundary), grounded on the
// extension table and parameter quoting rules shown in badu-http's mime
// package.
package mimeutil

import (
	"path/filepath"
	"strings"
)

// byExt is a small built-in table covering the content types this module's
// static file serving and multipart code actually emits; callers needing
// the full IANA registry should consult the operating system's mime.types
// instead of extending this table ad hoc.
var byExt = map[string]string{
	".html": "text/html; charset=utf-8",
	".htm":  "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript",
	".json": "application/json",
	".txt":  "text/plain; charset=utf-8",
	".xml":  "application/xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".wasm": "application/wasm",
	".gz":   "application/gzip",
}

// TypeByExtension returns the MIME type for a file extension (with or
// without a leading dot), or "" if unknown.
func TypeByExtension(ext string) string {
	if ext == "" {
		return ""
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	return byExt[strings.ToLower(ext)]
}

// TypeByFileName returns TypeByExtension(filepath.Ext(name)), defaulting
// to "application/octet-stream" when the extension is unrecognized.
func TypeByFileName(name string) string {
	if t := TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// ParseContentType splits a Content-Type header value into its base media
// type and parameter map ("text/plain; charset=utf-8" -> "text/plain",
// {"charset":"utf-8"}).
func ParseContentType(v string) (mediaType string, params map[string]string) {
	params = map[string]string{}
	parts := strings.Split(v, ";")
	if len(parts) == 0 {
		return "", params
	}
	mediaType = strings.ToLower(strings.TrimSpace(parts[0]))
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.Trim(strings.TrimSpace(kv[1]), `"`)
		params[key] = val
	}
	return mediaType, params
}

// FormatContentType reassembles a media type and parameters back into a
// header value, quoting any parameter value containing a ';' or space.
func FormatContentType(mediaType string, params map[string]string) string {
	var b strings.Builder
	b.WriteString(mediaType)
	for k, v := range params {
		b.WriteString("; ")
		b.WriteString(k)
		b.WriteString("=")
		if strings.ContainsAny(v, "; \t") {
			b.WriteString(`"`)
			b.WriteString(v)
			b.WriteString(`"`)
		} else {
			b.WriteString(v)
		}
	}
	return b.String()
}
