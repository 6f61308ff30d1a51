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
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/headerutil"
	"github.com/nabbar/fibernet/stream"
	"github.com/nabbar/fibernet/transport"
)

// ClientRequest is one outgoing request. Body may be nil for a bodiless
// request; when set, its length is read via stream.LengthKnower if
// available, else chunked framing is used.
type ClientRequest struct {
	Method string
	URL    *url.URL
	Header headerutil.Header
	Body   stream.Reader
}

// ClientResponse is one parsed response.
type ClientResponse struct {
	Status     int
	ProtoMajor int
	ProtoMinor int
	Header     headerutil.Header
	Body       stream.Reader
}

// Client is a pooled HTTP/1.x client. Connections are borrowed from and
// returned to pool, keyed by scheme/host/port, with redirects followed up
// to MaxRedirects.
type Client struct {
	Pool           *transport.Pool
	MaxRedirects   int
	MaxHeaderBytes int
	Jar            *CookieJar
}

// NewClient returns a Client borrowing connections from pool.
func NewClient(pool *transport.Pool) *Client {
	return &Client{Pool: pool, MaxRedirects: 10, MaxHeaderBytes: 16 * 1024}
}

func (c *Client) maxHeaderBytes() int {
	if c.MaxHeaderBytes > 0 {
		return c.MaxHeaderBytes
	}
	return 16 * 1024
}

// Do sends req, following redirects per RFC (303 downgrades to GET; 307
// and 308 preserve method and body provided the body is re-readable, i.e.
// backed by stream.Memory or another Seeker), bounded by MaxRedirects.
func (c *Client) Do(ctx context.Context, req *ClientRequest) (*ClientResponse, error) {
	cur := req
	for redirects := 0; ; redirects++ {
		resp, err := c.roundTrip(ctx, cur)
		if err != nil {
			return nil, err
		}
		if resp.Status < 300 || resp.Status >= 400 {
			return resp, nil
		}
		loc := resp.Header.Get(headerutil.Location)
		if loc == "" {
			return resp, nil
		}
		if redirects >= c.MaxRedirects {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: too many redirects")
		}

		next, nerr := nextRequest(cur, resp, loc)
		if nerr != nil {
			return nil, nerr
		}
		cur = next
	}
}

func nextRequest(prev *ClientRequest, resp *ClientResponse, loc string) (*ClientRequest, error) {
	target, err := prev.URL.Parse(loc)
	if err != nil {
		return nil, ferr.New(ferr.ProtocolError, "httpcore: invalid redirect location", err)
	}

	method := prev.Method
	body := prev.Body
	switch resp.Status {
	case 303:
		method = "GET"
		body = nil
	case 307, 308:
		if body != nil {
			sk, ok := body.(stream.Seeker)
			if !ok {
				return nil, ferr.New(ferr.UsageError, "httpcore: redirect requires a re-readable body")
			}
			if _, serr := sk.Seek(0, 0); serr != nil {
				return nil, ferr.New(ferr.IOError, "httpcore: rewind redirect body", serr)
			}
		}
	default:
		method = "GET"
		body = nil
	}

	return &ClientRequest{Method: method, URL: target, Header: prev.Header.Clone(), Body: body}, nil
}

// idempotentMethod reports whether method may be transparently retried on
// a fresh connection after a transient IO error on a reused one.
func idempotentMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "PUT", "DELETE", "OPTIONS":
		return true
	default:
		return false
	}
}

func (c *Client) roundTrip(ctx context.Context, req *ClientRequest) (*ClientResponse, error) {
	key := clientKey(req.URL)
	conn, reused, err := c.Pool.Borrow(ctx, key)
	if err != nil {
		return nil, err
	}

	resp, err := c.roundTripOnce(conn, key, req)
	if err != nil && reused && idempotentMethod(req.Method) && isIOError(err) && retryableBody(req.Body) {
		// The borrowed connection may have gone idle-dead between the
		// liveness probe in Pool.Borrow and this write; a fresh dial sees
		// the same request as if it were the first attempt.
		if sk, ok := req.Body.(stream.Seeker); ok {
			if _, serr := sk.Seek(0, 0); serr != nil {
				return nil, err
			}
		}
		var fresh *stream.Conn
		fresh, _, err = c.Pool.Borrow(ctx, key)
		if err != nil {
			return nil, err
		}
		resp, err = c.roundTripOnce(fresh, key, req)
	}
	return resp, err
}

func (c *Client) roundTripOnce(conn *stream.Conn, key transport.Key, req *ClientRequest) (*ClientResponse, error) {
	if err := c.writeRequest(conn, req); err != nil {
		_ = conn.Close()
		return nil, err
	}

	buffered := stream.NewBuffered(conn)
	resp, err := c.parseResponse(buffered, req.Method)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if c.Jar != nil {
		c.Jar.SetFromResponse(req.URL.Hostname(), req.URL.Path, resp.Header.Values(headerutil.SetCookie))
	}

	if !responseKeepAlive(resp) {
		defer func() { _ = conn.Close() }()
	} else {
		defer c.Pool.Return(key, conn)
	}
	return resp, nil
}

// retryableBody reports whether body can be resent unchanged: either there
// is none, or it can be rewound to its start.
func retryableBody(body stream.Reader) bool {
	if body == nil {
		return true
	}
	_, ok := body.(stream.Seeker)
	return ok
}

// isIOError reports whether err is the kind of transient transport failure
// (peer reset, write after the server closed, truncated status line) that
// justifies retrying on a fresh connection rather than surfacing it.
func isIOError(err error) bool {
	fe := ferr.Get(err)
	return fe != nil && (fe.Kind() == ferr.KindIOError || fe.Kind() == ferr.KindProtocolError)
}

func clientKey(u *url.URL) transport.Key {
	tlsOn := u.Scheme == "https"
	host := u.Host
	if !strings.Contains(host, ":") {
		if tlsOn {
			host += ":443"
		} else {
			host += ":80"
		}
	}
	return transport.Key{Network: "tcp", Address: host, TLS: tlsOn}
}

func (c *Client) writeRequest(conn *stream.Conn, req *ClientRequest) error {
	h := req.Header
	if h == nil {
		h = headerutil.New()
	}
	if h.Get(headerutil.Host) == "" {
		h.Set(headerutil.Host, req.URL.Host)
	}
	if c.Jar != nil {
		if ck := c.Jar.CookieHeader(req.URL.Hostname(), req.URL.Path, req.URL.Scheme == "https"); ck != "" {
			h.Set(headerutil.Cookie, ck)
		}
	}

	path := req.URL.EscapedPath()
	if path == "" {
		path = "/"
	}
	if req.URL.RawQuery != "" {
		path += "?" + req.URL.RawQuery
	}

	var bodyLen int64 = -1
	if req.Body != nil {
		if lk, ok := req.Body.(stream.LengthKnower); ok {
			if n, known := lk.Len(); known {
				bodyLen = n
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s HTTP/1.1\r\n", req.Method, path)
	if req.Body != nil && bodyLen < 0 {
		h.Set(headerutil.TransferEncoding, "chunked")
	} else if req.Body != nil {
		h.Set(headerutil.ContentLength, strconv.FormatInt(bodyLen, 10))
	}
	for _, k := range h.Keys() {
		for _, v := range h.Values(k) {
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\r\n")
		}
	}
	b.WriteString("\r\n")
	if _, err := conn.Write([]byte(b.String()), stream.ModeAll); err != nil {
		return ferr.New(ferr.IOError, "httpcore: write request", err)
	}

	if req.Body == nil {
		return nil
	}

	var out stream.Writer = conn
	var chunked *stream.ChunkedWriter
	if bodyLen < 0 {
		chunked = stream.NewChunkedWriter(conn)
		out = chunked
	}
	buf := make([]byte, 32*1024)
	for {
		n, rerr := req.Body.Read(buf, stream.ModeOnce)
		if n > 0 {
			if _, werr := out.Write(buf[:n], stream.ModeAll); werr != nil {
				return ferr.New(ferr.IOError, "httpcore: write request body", werr)
			}
		}
		if rerr != nil {
			break
		}
	}
	if chunked != nil {
		return chunked.Finalize()
	}
	return nil
}

func (c *Client) parseResponse(b *stream.Buffered, reqMethod string) (*ClientResponse, error) {
	line, err := b.ReadUntil('\n', c.maxHeaderBytes())
	if err != nil {
		return nil, ferr.New(ferr.ProtocolError, "httpcore: read status line", err)
	}
	statusLine := strings.TrimRight(string(line), "\r\n")
	proto, status, _, err := parseStatusLine(statusLine)
	if err != nil {
		return nil, err
	}
	major, minor, err := parseHTTPVersion(proto)
	if err != nil {
		return nil, err
	}

	hdr := headerutil.New()
	total := len(line)
	var lastKey string
	for {
		line, err = b.ReadUntil('\n', c.maxHeaderBytes()-total)
		if err != nil {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: read response headers", err)
		}
		total += len(line)
		raw := strings.TrimRight(string(line), "\r\n")
		if raw == "" {
			break
		}
		if raw[0] == ' ' || raw[0] == '\t' {
			if lastKey != "" {
				vv := hdr.Values(lastKey)
				if len(vv) > 0 {
					vv[len(vv)-1] = headerutil.UnfoldObsFold(vv[len(vv)-1] + "\r\n" + raw)
				}
			}
			continue
		}
		idx := strings.IndexByte(raw, ':')
		if idx <= 0 {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: malformed response header")
		}
		name := strings.TrimSpace(raw[:idx])
		hdr.Add(name, strings.TrimSpace(raw[idx+1:]))
		lastKey = headerutil.CanonicalKey(name)
	}

	resp := &ClientResponse{Status: status, ProtoMajor: major, ProtoMinor: minor, Header: hdr}
	resp.Body, err = resolveResponseBody(resp, b, reqMethod)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func parseStatusLine(line string) (proto string, status int, reason string, err error) {
	sp1 := strings.IndexByte(line, ' ')
	if sp1 <= 0 {
		return "", 0, "", ferr.New(ferr.ProtocolError, "httpcore: malformed status line")
	}
	rest := line[sp1+1:]
	sp2 := strings.IndexByte(rest, ' ')
	statusStr := rest
	if sp2 >= 0 {
		statusStr = rest[:sp2]
		reason = rest[sp2+1:]
	}
	n, cerr := strconv.Atoi(statusStr)
	if cerr != nil {
		return "", 0, "", ferr.New(ferr.ProtocolError, "httpcore: malformed status code", cerr)
	}
	return line[:sp1], n, reason, nil
}

// resolveResponseBody mirrors resolveRequestBody's framing priority, with
// two response-specific rules: 1xx/204/304 and HEAD responses never carry
// a body regardless of headers, and read-to-close applies on any
// protocol version (not just 1.0) when neither framing header is present.
func resolveResponseBody(resp *ClientResponse, src *stream.Buffered, reqMethod string) (stream.Reader, error) {
	if reqMethod == "HEAD" || resp.Status == 204 || resp.Status == 304 || (resp.Status >= 100 && resp.Status < 200) {
		return stream.NewMemory(nil), nil
	}

	te := resp.Header.Get(headerutil.TransferEncoding)
	if strings.EqualFold(strings.TrimSpace(te), "chunked") {
		return stream.NewChunkedReader(src), nil
	}

	if cl := resp.Header.Get(headerutil.ContentLength); cl != "" {
		n, err := strconv.ParseInt(cl, 10, 64)
		if err != nil || n < 0 {
			return nil, ferr.New(ferr.ProtocolError, "httpcore: invalid response Content-Length")
		}
		return stream.NewCountedReader(src, n), nil
	}

	return src, nil
}

func responseKeepAlive(resp *ClientResponse) bool {
	conn := resp.Header.Get(headerutil.Connection)
	if resp.ProtoMajor == 1 && resp.ProtoMinor == 0 {
		return equalFoldToken(conn, "keep-alive")
	}
	return !equalFoldToken(conn, "close")
}
