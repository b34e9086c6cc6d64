package spec

import (
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSelfSignedCertificate(t *testing.T) {
	certPEM, keyPEM, err := GenerateSelfSignedCertificate("ceph-node-3")
	require.NoError(t, err)

	block, _ := pem.Decode([]byte(certPEM))
	require.NotNil(t, block)
	require.Equal(t, "CERTIFICATE", block.Type)

	cert, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	assert.Equal(t, "ceph-node-3", cert.Subject.CommonName)
	assert.Contains(t, cert.DNSNames, "ceph-node-3")

	keyBlock, _ := pem.Decode([]byte(keyPEM))
	require.NotNil(t, keyBlock)
	assert.Equal(t, "RSA PRIVATE KEY", keyBlock.Type)
	_, err = x509.ParsePKCS1PrivateKey(keyBlock.Bytes)
	require.NoError(t, err)
}

func TestInlineCertBlock(t *testing.T) {
	out := inlineCertBlock("line1\nline2\n")
	assert.Equal(t, "|\n    line1\n    line2", out)

	// Every PEM line must sit four spaces deep so the literal block nests
	// under the spec section.
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			assert.Equal(t, "|", line)
			continue
		}
		assert.True(t, strings.HasPrefix(line, "    "), "line %d not indented: %q", i, line)
	}
}
