package main

import (
	"context"
	"httpmsg/application/http"
	"httpmsg/application/http/actor/client"
	"httpmsg/application/http/content"
	"httpmsg/application/http/handler"
	"httpmsg/application/http/semantic"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

type sendOptions struct {
	base    string
	headers []string
	query   string
	schema  string
	timeout time.Duration
	noColor bool
	verbose bool
}

func newSendCmd() *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send FILE",
		Short: "Send the request described by a YAML file",
		Long: `Send reads a request description (method, url, headers and an optional
text, json, file or multipart body) from FILE and prints the response.

The command fails when the response status is not 2xx.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.base, "base", "", "Base address relative request urls resolve against")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "Extra header 'Name: value' (can be used multiple times)")
	flags.StringVarP(&opts.query, "query", "q", "", "Print only the part of a JSON response matching this gjson path")
	flags.StringVar(&opts.schema, "schema", "", "Validate a JSON response against this JSON Schema file")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 30*time.Second, "Request timeout")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the request and log at debug level")

	return cmd
}

func runSend(cmd *cobra.Command, path string, opts sendOptions) error {
	rf, err := loadRequestFile(path)
	if err != nil {
		return err
	}
	req, err := rf.build(filepath.Dir(path))
	if err != nil {
		return err
	}
	// Sending closes the request; this covers the early returns.
	defer req.Close()

	for _, raw := range opts.headers {
		name, value, ok := strings.Cut(raw, ":")
		if !ok {
			return errors.Errorf("header %q is not in 'Name: value' form", raw)
		}
		if err := appendHeader(req.Headers(), strings.TrimSpace(name), value); err != nil {
			return err
		}
	}

	var schema *jsonschema.Schema
	if opts.schema != "" {
		if schema, err = compileSchema(opts.schema); err != nil {
			return err
		}
	}

	logger := newLogger(cmd, opts.verbose)
	c, err := newClient(logger, opts)
	if err != nil {
		return err
	}
	defer c.Close()

	out := newPrinter(cmd.OutOrStdout(), opts.noColor)

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	res, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	defer res.Close()

	if opts.verbose {
		out.request(req)
	}
	out.status(res)
	out.headers(res.Headers())

	body, err := content.ReadAsBytes(ctx, res.Content())
	if err != nil {
		return errors.Wrap(err, "reading response body")
	}

	if opts.query != "" {
		result := gjson.GetBytes(body, opts.query)
		if !result.Exists() {
			out.failure("query %q matched nothing", opts.query)
		} else {
			out.body([]byte(result.String()))
		}
	} else {
		out.body(body)
	}

	if schema != nil {
		if err := validateJSON(schema, body); err != nil {
			out.failure("%s", err)
			return err
		}
	}

	return res.EnsureSuccessStatusCode()
}

func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// newClient builds client -> logging -> transport.
func newClient(logger *slog.Logger, opts sendOptions) (*client.Client, error) {
	var base *url.URL
	if opts.base != "" {
		u, err := url.Parse(opts.base)
		if err != nil {
			return nil, errors.Wrapf(semantic.ErrValidation, "parsing base address: %s", err)
		}
		base = u
	}

	transport := handler.NewNetTransport(&nethttp.Client{Timeout: opts.timeout})
	chain := handler.NewLogging(handler.NewTransportHandler(transport, logger), true, logger, clock.New())

	c, err := client.New(chain, logger, client.Options{
		DisposeHandler: true,
		BaseAddress:    base,
		DefaultHeaders: map[string][]string{"User-Agent": {"httpmsg/" + version}},
	})
	if err != nil {
		chain.Close()
		return nil, err
	}
	return c, nil
}

// appendHeader splits value on the header separator and appends every piece.
func appendHeader(h *semantic.Headers, name, value string) error {
	field := http.Field{Name: name, Value: value}
	for _, v := range field.Values(semantic.HeaderSeparator) {
		if err := h.Append(name, v); err != nil {
			return err
		}
	}
	return nil
}
