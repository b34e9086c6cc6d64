package spec

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/shuchitajnn/cephci/pkg/cluster"
	"github.com/shuchitajnn/cephci/pkg/logger"
)

const trustAnchorDir = "/etc/pki/ca-trust/source/anchors"

// GenerateSelfSignedCertificate creates an RSA key pair and a self-signed
// certificate for commonName, both PEM encoded. The certificate is valid for
// one year, which outlives any test run.
func GenerateSelfSignedCertificate(commonName string) (certPEM, keyPEM string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate RSA key")
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate certificate serial")
	}

	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName},
		DNSNames:              []string{commonName},
		NotBefore:             time.Now().Add(-1 * time.Hour),
		NotAfter:              time.Now().AddDate(1, 0, 0),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IsCA:                  true,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return "", "", errors.Wrap(err, "failed to create certificate")
	}

	certPEM = string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	keyPEM = string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}))
	return certPEM, keyPEM, nil
}

// inlineCertBlock formats PEM content as a YAML literal block scalar whose
// lines sit four spaces deep, matching a field nested under `spec:`.
func inlineCertBlock(pemContent string) string {
	block := "|\n" + strings.TrimRight(pemContent, "\n")
	return strings.ReplaceAll(block, "\n", "\n    ")
}

// DistributeTrustMaterial writes certPEM into the trust anchor store of every
// client- and rgw-role node and refreshes each node's CA trust. This is the
// environment-mutating half of certificate provisioning; rendering itself
// stays pure.
func DistributeTrustMaterial(ctx context.Context, c *cluster.Cluster, serviceID, certPEM string) error {
	log := logger.Get()

	// The RGW hosts run the validation clients, so they need the anchor too.
	nodes := append(c.NodesByRole("client"), c.NodesByRole("rgw")...)
	certFile := fmt.Sprintf("%s/%s.crt", trustAnchorDir, serviceID)

	for _, node := range nodes {
		if err := node.WriteFile(ctx, []byte(certPEM), certFile, true); err != nil {
			return errors.Wrapf(err, "failed to write trust anchor on %s", node.Hostname)
		}
		if _, _, err := node.ExecCommand(ctx, "update-ca-trust enable && update-ca-trust extract", true); err != nil {
			return errors.Wrapf(err, "failed to refresh trust store on %s", node.Hostname)
		}
		log.Debugf("installed trust anchor %s on %s", certFile, node.Hostname)
	}
	return nil
}
