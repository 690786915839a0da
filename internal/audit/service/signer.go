// Package service signs audit events so tampering with the in-memory ledger can
// be detected.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/sundacoder/ZedID/internal/audit/domain"
)

const signingInfo = "zedid-audit-event-v1"

// Signer computes and checks event signatures.
type Signer interface {
	Sign(event *domain.Event) ([]byte, error)
	Verify(event *domain.Event) error
}

// hmacSigner signs with HMAC-SHA256 under a key derived once by HKDF-SHA256.
type hmacSigner struct {
	key []byte
}

// NewSigner derives the signing key from ikm. ikm must not be empty.
func NewSigner(ikm []byte) (Signer, error) {
	if len(ikm) == 0 {
		return nil, fmt.Errorf("audit signing key material is empty")
	}

	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(signingInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive audit signing key: %w", err)
	}
	return &hmacSigner{key: key}, nil
}

// canonical encodes every signed field: fixed-size ids, then length-prefixed
// strings and metadata JSON, then the timestamp in Unix nanoseconds.
func canonical(event *domain.Event) ([]byte, error) {
	buf := make([]byte, 0, 512)
	buf = append(buf, event.ID[:]...)
	buf = append(buf, event.IdentityID[:]...)
	buf = appendLengthPrefixed(buf, []byte(event.Action))
	buf = appendLengthPrefixed(buf, []byte(event.Actor))
	buf = appendLengthPrefixed(buf, []byte(event.Resource))
	buf = appendLengthPrefixed(buf, []byte(event.Decision))

	if event.Reason != nil {
		buf = append(buf, 1)
		buf = appendLengthPrefixed(buf, []byte(*event.Reason))
	} else {
		buf = append(buf, 0)
	}

	var metadata []byte
	if len(event.Metadata) > 0 {
		// encoding/json sorts map keys, so the encoding is deterministic.
		encoded, err := json.Marshal(event.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata: %w", err)
		}
		metadata = encoded
	}
	buf = appendLengthPrefixed(buf, metadata)

	return binary.BigEndian.AppendUint64(buf, uint64(event.Timestamp.UnixNano())), nil
}

func appendLengthPrefixed(buf, data []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}

// Sign returns the 32-byte HMAC of the event.
func (s *hmacSigner) Sign(event *domain.Event) ([]byte, error) {
	data, err := canonical(event)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write(data)
	return mac.Sum(nil), nil
}

// Verify returns domain.ErrSignatureInvalid when the event does not match its signature.
func (s *hmacSigner) Verify(event *domain.Event) error {
	expected, err := s.Sign(event)
	if err != nil {
		return err
	}
	if !hmac.Equal(event.Signature, expected) {
		return domain.ErrSignatureInvalid
	}
	return nil
}
