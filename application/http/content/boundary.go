package content

import (
	"crypto/rand"
	"httpmsg/application/http/semantic"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Reference: https://datatracker.ietf.org/doc/html/rfc2046#section-5.1.1
const (
	boundaryAlphabet     = "()+,-./0123456789:=?ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"
	boundaryMaxLen       = 70
	generatedBoundaryLen = 16
)

var ErrInvalidBoundary = errors.Wrap(semantic.ErrValidation, "invalid multipart boundary")

var randReader io.Reader = rand.Reader

func generateBoundary() (string, error) {
	raw := make([]byte, generatedBoundaryLen)
	if _, err := io.ReadFull(randReader, raw); err != nil {
		return "", errors.Wrap(err, "reading random bytes for boundary")
	}

	b := new(strings.Builder)
	b.Grow(len(raw))
	for _, c := range raw {
		b.WriteByte(boundaryAlphabet[int(c)%len(boundaryAlphabet)])
	}
	return b.String(), nil
}

func validateBoundary(boundary string) error {
	if len(boundary) > boundaryMaxLen {
		return errors.Wrapf(ErrInvalidBoundary, "length must be at most %d", boundaryMaxLen)
	}

	if strings.HasSuffix(boundary, " ") {
		return errors.Wrap(ErrInvalidBoundary, "cannot end with a space")
	}

	for _, c := range boundary {
		if !strings.ContainsRune(boundaryAlphabet, c) {
			return errors.Wrapf(ErrInvalidBoundary, "contains invalid character %q", c)
		}
	}

	return nil
}
