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
	"crypto/tls"
	"os"
	"strings"

	"github.com/nabbar/fibernet/ferr"
	"github.com/nabbar/fibernet/transport"
)

// TLSConfig is the file representation of transport.TLSConfig: CertChain
// and PrivateKey each accept either a filesystem path or an inline PEM
// block (a value containing "-----BEGIN" is taken as inline PEM, any
// other value is read as a file path), mirroring how the rest
// of the ecosystem's certificate config accepts either form.
type TLSConfig struct {
	CertChain  string `mapstructure:"cert_chain" json:"cert_chain" yaml:"cert_chain" toml:"cert_chain" validate:"required_with=PrivateKey"`
	PrivateKey string `mapstructure:"private_key" json:"private_key" yaml:"private_key" toml:"private_key" validate:"required_with=CertChain"`
	RootCA     string `mapstructure:"root_ca" json:"root_ca" yaml:"root_ca" toml:"root_ca"`
	ClientCA   string `mapstructure:"client_ca" json:"client_ca" yaml:"client_ca" toml:"client_ca"`

	// PeerMode is one of "none", "require-cert", "check-peer", "trusted-cert".
	PeerMode string `mapstructure:"peer_mode" json:"peer_mode" yaml:"peer_mode" toml:"peer_mode" validate:"omitempty,oneof=none require-cert check-peer trusted-cert"`

	// Version is one of "1.0", "1.1", "1.2", "1.3", "any".
	Version string `mapstructure:"version" json:"version" yaml:"version" toml:"version" validate:"omitempty,oneof=1.0 1.1 1.2 1.3 any"`

	ServerName string `mapstructure:"server_name" json:"server_name" yaml:"server_name" toml:"server_name"`
}

func loadPEM(pathOrPEM string) (string, error) {
	if pathOrPEM == "" {
		return "", nil
	}
	if strings.Contains(pathOrPEM, "-----BEGIN") {
		return pathOrPEM, nil
	}
	b, err := os.ReadFile(pathOrPEM)
	if err != nil {
		return "", ferr.New(ferr.UsageError, "fnetcfg: read PEM file "+pathOrPEM, err)
	}
	return string(b), nil
}

func (c *TLSConfig) peerMode() transport.PeerAuth {
	switch c.PeerMode {
	case "require-cert":
		return transport.PeerAuthRequireAny
	case "check-peer":
		return transport.PeerAuthVerifyIfGiven
	case "trusted-cert":
		return transport.PeerAuthRequireAndVerify
	default:
		return transport.PeerAuthNone
	}
}

func (c *TLSConfig) versionRange() (min, max uint16) {
	switch c.Version {
	case "1.0":
		return tls.VersionTLS10, tls.VersionTLS10
	case "1.1":
		return tls.VersionTLS11, tls.VersionTLS11
	case "1.2":
		return tls.VersionTLS12, tls.VersionTLS12
	case "1.3":
		return tls.VersionTLS13, tls.VersionTLS13
	default:
		return tls.VersionTLS12, 0
	}
}

// Build parses the certificate material and returns a *transport.TLSConfig
// ready for transport.NewStreamServer / transport.NewPool.
func (c *TLSConfig) Build() (*transport.TLSConfig, error) {
	out := &transport.TLSConfig{ClientAuth: c.peerMode(), ServerName: c.ServerName}
	out.MinVersion, out.MaxVersion = c.versionRange()

	if c.CertChain != "" || c.PrivateKey != "" {
		chain, err := loadPEM(c.CertChain)
		if err != nil {
			return nil, err
		}
		key, err := loadPEM(c.PrivateKey)
		if err != nil {
			return nil, err
		}
		if err = out.AddCertificatePair(chain, key); err != nil {
			return nil, err
		}
	}

	if c.RootCA != "" {
		pem, err := loadPEM(c.RootCA)
		if err != nil {
			return nil, err
		}
		if err = out.AddRootCA(pem); err != nil {
			return nil, err
		}
	}

	if c.ClientCA != "" {
		pem, err := loadPEM(c.ClientCA)
		if err != nil {
			return nil, err
		}
		if err = out.AddClientCA(pem); err != nil {
			return nil, err
		}
	}

	return out, nil
}
