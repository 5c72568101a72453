package main

import (
	"bytes"
	"httpmsg/application/http/content"
	"httpmsg/application/http/message"
	"httpmsg/application/http/semantic"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var errRequestFile = errors.New("invalid request file")

// requestFile is the YAML description of a single request.
//
//	method: POST
//	url: v1/items
//	headers:
//	  Accept: [application/json, text/plain]
//	json: {name: widget}
type requestFile struct {
	Method  string                  `yaml:"method"`
	URL     string                  `yaml:"url"`
	Headers map[string]headerValues `yaml:"headers"`

	ContentType string `yaml:"contentType"`

	Text      *string        `yaml:"text"`
	JSON      any            `yaml:"json"`
	File      string         `yaml:"file"`
	Multipart *multipartBody `yaml:"multipart"`
}

type multipartBody struct {
	// Subtype defaults to form-data.
	Subtype  string     `yaml:"subtype"`
	Boundary string     `yaml:"boundary"`
	Parts    []partBody `yaml:"parts"`
}

type partBody struct {
	Name        string  `yaml:"name"`
	Filename    string  `yaml:"filename"`
	Text        *string `yaml:"text"`
	File        string  `yaml:"file"`
	ContentType string  `yaml:"contentType"`
}

// headerValues accepts either a scalar or a sequence of scalars.
type headerValues []string

func (h *headerValues) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*h = headerValues{node.Value}
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*h = values
		return nil
	default:
		return errors.Errorf("line %d: header value must be a string or a list of strings", node.Line)
	}
}

func loadRequestFile(path string) (*requestFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading request file")
	}
	return parseRequestFile(raw)
}

func parseRequestFile(raw []byte) (*requestFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var rf requestFile
	if err := dec.Decode(&rf); err != nil {
		return nil, errors.Wrapf(errRequestFile, "decoding yaml: %s", err)
	}
	if err := rf.validate(); err != nil {
		return nil, err
	}
	return &rf, nil
}

func (rf *requestFile) validate() error {
	if rf.URL == "" {
		return errors.Wrap(errRequestFile, "url is required")
	}
	if rf.Method == "" {
		rf.Method = semantic.MethodGet.String()
	}

	kinds := 0
	for _, set := range []bool{rf.Text != nil, rf.JSON != nil, rf.File != "", rf.Multipart != nil} {
		if set {
			kinds++
		}
	}
	if kinds > 1 {
		return errors.Wrap(errRequestFile, "only one of text, json, file and multipart can be set")
	}

	if rf.Multipart != nil {
		for i, p := range rf.Multipart.Parts {
			if (p.Text != nil) == (p.File != "") {
				return errors.Wrapf(errRequestFile, "part %d: exactly one of text and file must be set", i)
			}
		}
	}
	return nil
}

// build creates the request. Relative file paths are resolved against dir.
func (rf *requestFile) build(dir string) (*message.Request, error) {
	req, err := message.NewRequest(semantic.ParseMethod(rf.Method), rf.URL)
	if err != nil {
		return nil, err
	}

	for name, values := range rf.Headers {
		for _, v := range values {
			if err := appendHeader(req.Headers(), name, v); err != nil {
				return nil, err
			}
		}
	}

	body, err := rf.content(dir)
	if err != nil {
		return nil, err
	}
	if body != nil {
		if err := req.SetContent(body); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (rf *requestFile) content(dir string) (content.Content, error) {
	switch {
	case rf.Text != nil:
		return content.NewString(*rf.Text, rf.ContentType), nil
	case rf.JSON != nil:
		c, err := content.NewJSON(rf.JSON)
		if err != nil {
			return nil, err
		}
		if rf.ContentType != "" {
			if err := replaceContentType(c.Headers(), rf.ContentType); err != nil {
				return nil, err
			}
		}
		return c, nil
	case rf.File != "":
		return openFile(dir, rf.File, rf.ContentType)
	case rf.Multipart != nil:
		return rf.Multipart.content(dir)
	default:
		return nil, nil
	}
}

func (m *multipartBody) content(dir string) (content.Content, error) {
	if m.Subtype == "" || m.Subtype == "form-data" {
		form, err := content.NewFormData(m.Boundary)
		if err != nil {
			return nil, err
		}
		for i, p := range m.Parts {
			part, err := p.content(dir)
			if err != nil {
				form.Close()
				return nil, errors.Wrapf(err, "part %d", i)
			}
			if err := form.Add(part, p.Name, p.Filename); err != nil {
				part.Close()
				form.Close()
				return nil, errors.Wrapf(err, "part %d", i)
			}
		}
		return form, nil
	}

	mp, err := content.NewMultipart(m.Subtype, m.Boundary)
	if err != nil {
		return nil, err
	}
	for i, p := range m.Parts {
		part, err := p.content(dir)
		if err != nil {
			mp.Close()
			return nil, errors.Wrapf(err, "part %d", i)
		}
		if err := mp.Add(part); err != nil {
			part.Close()
			mp.Close()
			return nil, errors.Wrapf(err, "part %d", i)
		}
	}
	return mp, nil
}

func (p partBody) content(dir string) (content.Content, error) {
	if p.Text != nil {
		return content.NewString(*p.Text, p.ContentType), nil
	}
	return openFile(dir, p.File, p.ContentType)
}

// openFile streams the file instead of loading it up front.
func openFile(dir, name, contentType string) (*content.Stream, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(dir, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening body file")
	}
	return content.NewStream(f, contentType), nil
}

func replaceContentType(h *semantic.Headers, contentType string) error {
	h.Del("Content-Type")
	return appendHeader(h, "Content-Type", contentType)
}
