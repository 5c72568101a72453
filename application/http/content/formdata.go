package content

import (
	"httpmsg/application/http/semantic"
	"strings"

	"github.com/pkg/errors"
)

const formDataSubtype = "form-data"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// FormData is multipart/form-data content.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7578
type FormData struct {
	*Multipart
}

func NewFormData(boundary string) (*FormData, error) {
	m, err := NewMultipart(formDataSubtype, boundary)
	if err != nil {
		return nil, err
	}
	return &FormData{Multipart: m}, nil
}

// Add sets the Content-Disposition of part, then appends it.
// Empty name or filename are omitted from the disposition.
func (c *FormData) Add(part Content, name, filename string) error {
	if err := c.ensureOpen(); err != nil {
		return err
	}
	if part == nil {
		return errors.Wrap(semantic.ErrValidation, "part cannot be nil")
	}

	values := []string{"form-data"}
	if name != "" {
		values = append(values, `name="`+quoteEscaper.Replace(name)+`"`)
	}
	if filename != "" {
		values = append(values, `filename="`+quoteEscaper.Replace(filename)+`"`)
	}

	// Validate everything first so a failure leaves the part untouched.
	headers := part.Headers()
	if headers.Has("Content-Disposition") {
		return errors.Wrap(semantic.ErrInvalidOperation, "part already has a Content-Disposition")
	}
	for _, v := range values {
		if strings.Contains(v, semantic.HeaderSeparator) {
			return errors.Wrapf(semantic.ErrValidation, "disposition parameter %q cannot include %q", v, semantic.HeaderSeparator)
		}
	}

	if err := headers.Add("Content-Disposition", values[0]); err != nil {
		return err
	}
	for _, v := range values[1:] {
		if err := headers.Append("Content-Disposition", v); err != nil {
			return err
		}
	}

	return c.Multipart.Add(part)
}
