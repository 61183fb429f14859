package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/propcheck/inspections/pkg/cryptox"
	"github.com/propcheck/inspections/pkg/jwtx"
)

// loadOrGenerateSigner reads the Ed25519 signing key from path, generating
// and persisting a fresh one on first run. The key ID is derived from the
// key material so restarts keep issuing tokens under the same kid.
func loadOrGenerateSigner(path string) (*jwtx.Signer, error) {
	pemKey, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		if err := os.WriteFile(path, pemKey, 0o600); err != nil {
			return nil, fmt.Errorf("persist signing key: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read signing key: %w", err)
	}

	sum := sha256.Sum256(pemKey)
	kid := hex.EncodeToString(sum[:8])

	signer, err := jwtx.NewSigner(kid, pemKey)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	return signer, nil
}
