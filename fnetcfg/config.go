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

// Package fnetcfg loads server and client configuration from a file
// (JSON/YAML/TOML/etc, via spf13/viper) into validated structs
// (go-playground/validator), and turns a validated struct into the
// concrete transport/httpcore types the rest of this module runs on.
package fnetcfg

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nabbar/fibernet/fdur"
	"github.com/nabbar/fibernet/ferr"
)

// Options mirrors the server's parsing/behavior flag set: which parts of
// an incoming request are eagerly parsed, and whether the reactor is
// distributed one-per-worker or shared.
type Options struct {
	KeepAlive          bool `mapstructure:"keep_alive" json:"keep_alive" yaml:"keep_alive" toml:"keep_alive"`
	ParseURL           bool `mapstructure:"parse_url" json:"parse_url" yaml:"parse_url" toml:"parse_url"`
	ParseQueryString   bool `mapstructure:"parse_query_string" json:"parse_query_string" yaml:"parse_query_string" toml:"parse_query_string"`
	ParseCookies       bool `mapstructure:"parse_cookies" json:"parse_cookies" yaml:"parse_cookies" toml:"parse_cookies"`
	ParseFormBody      bool `mapstructure:"parse_form_body" json:"parse_form_body" yaml:"parse_form_body" toml:"parse_form_body"`
	ParseJSONBody      bool `mapstructure:"parse_json_body" json:"parse_json_body" yaml:"parse_json_body" toml:"parse_json_body"`
	ParseMultiPartBody bool `mapstructure:"parse_multi_part_body" json:"parse_multi_part_body" yaml:"parse_multi_part_body" toml:"parse_multi_part_body"`
	Distribute         bool `mapstructure:"distribute" json:"distribute" yaml:"distribute" toml:"distribute"`
	ErrorStackTraces   bool `mapstructure:"error_stack_traces" json:"error_stack_traces" yaml:"error_stack_traces" toml:"error_stack_traces"`
}

// ServerConfig is the enumerated configuration surface for one HTTP
// server. The connection-reject predicate and the error-page renderer are
// wired programmatically by the caller (they are callbacks, not data) via
// DispatchConfig's reject and errPage parameters, rather than unmarshalled
// from the file.
type ServerConfig struct {
	BindAddresses []string `mapstructure:"bind_addresses" json:"bind_addresses" yaml:"bind_addresses" toml:"bind_addresses" validate:"required,min=1"`
	Port          uint16   `mapstructure:"port" json:"port" yaml:"port" toml:"port"`
	HostName      string   `mapstructure:"host_name" json:"host_name" yaml:"host_name" toml:"host_name"`

	TLS *TLSConfig `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls" validate:"omitempty"`

	Options Options `mapstructure:"options" json:"options" yaml:"options" toml:"options"`

	MaxRequestHeaderSize int `mapstructure:"max_request_header_size" json:"max_request_header_size" yaml:"max_request_header_size" toml:"max_request_header_size"`
	MaxRequestSize       int `mapstructure:"max_request_size" json:"max_request_size" yaml:"max_request_size" toml:"max_request_size"`

	KeepAliveTimeout fdur.Duration `mapstructure:"keep_alive_timeout" json:"keep_alive_timeout" yaml:"keep_alive_timeout" toml:"keep_alive_timeout"`
	ReadTimeout      fdur.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout" toml:"read_timeout"`
	WriteTimeout     fdur.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout" toml:"write_timeout"`

	AccessLogFormat string `mapstructure:"access_log_format" json:"access_log_format" yaml:"access_log_format" toml:"access_log_format"`
}

// ClientConfig is the enumerated configuration surface for the HTTP
// client. CookieJar is an interface in the spec; here it is the concrete
// httpcore.CookieJar, enabled by CookieJarPath being non-empty.
type ClientConfig struct {
	MaxRedirects            int           `mapstructure:"max_redirects" json:"max_redirects" yaml:"max_redirects" toml:"max_redirects"`
	DefaultKeepAliveTimeout fdur.Duration `mapstructure:"default_keep_alive_timeout" json:"default_keep_alive_timeout" yaml:"default_keep_alive_timeout" toml:"default_keep_alive_timeout"`
	Proxy                   string        `mapstructure:"proxy" json:"proxy" yaml:"proxy" toml:"proxy" validate:"omitempty,url"`
	NetworkInterface        string        `mapstructure:"network_interface" json:"network_interface" yaml:"network_interface" toml:"network_interface"`

	CookieJarPath         string `mapstructure:"cookie_jar_path" json:"cookie_jar_path" yaml:"cookie_jar_path" toml:"cookie_jar_path"`
	CookieJarSymmetricWWW bool   `mapstructure:"cookie_jar_symmetric_www" json:"cookie_jar_symmetric_www" yaml:"cookie_jar_symmetric_www" toml:"cookie_jar_symmetric_www"`

	MaxPerKey int `mapstructure:"max_per_key" json:"max_per_key" yaml:"max_per_key" toml:"max_per_key"`

	TLS *TLSConfig `mapstructure:"tls" json:"tls" yaml:"tls" toml:"tls" validate:"omitempty"`
}

// Validate runs go-playground/validator struct tags over cfg, collecting
// every failing field into one error rather than stopping at the first.
func Validate(cfg interface{}) error {
	val := validator.New()
	err := val.Struct(cfg)
	if err == nil {
		return nil
	}

	if e, ok := err.(*validator.InvalidValidationError); ok {
		return ferr.New(ferr.UsageError, "fnetcfg: invalid validation target", e)
	}

	out := ferr.New(ferr.UsageError, "fnetcfg: config validation failed")
	for _, e := range err.(validator.ValidationErrors) {
		//nolint goerr113
		out.Add(fmt.Errorf("field '%s' fails constraint '%s'", e.StructNamespace(), e.ActualTag()))
	}
	return out
}
