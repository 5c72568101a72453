package main

import (
	"fmt"
	"httpmsg/application/http/message"
	"httpmsg/application/http/semantic"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type palette struct {
	method      *color.Color
	url         *color.Color
	statusOK    *color.Color
	statusWarn  *color.Color
	statusError *color.Color
	headerKey   *color.Color
	headerValue *color.Color
	failure     *color.Color
}

func newPalette(colored bool) *palette {
	p := &palette{
		method:      color.New(color.FgBlue, color.Bold),
		url:         color.New(color.FgCyan),
		statusOK:    color.New(color.FgGreen, color.Bold),
		statusWarn:  color.New(color.FgYellow, color.Bold),
		statusError: color.New(color.FgRed, color.Bold),
		headerKey:   color.New(color.FgYellow),
		headerValue: color.New(color.FgWhite),
		failure:     color.New(color.FgRed),
	}
	if colored {
		for _, c := range p.all() {
			c.EnableColor()
		}
	} else {
		for _, c := range p.all() {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) all() []*color.Color {
	return []*color.Color{
		p.method, p.url, p.statusOK, p.statusWarn,
		p.statusError, p.headerKey, p.headerValue, p.failure,
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type printer struct {
	w       io.Writer
	palette *palette
}

func newPrinter(w io.Writer, noColor bool) *printer {
	return &printer{w: w, palette: newPalette(!noColor && isTerminal(w))}
}

func (p *printer) request(req *message.Request) {
	fmt.Fprintf(p.w, "%s %s\n",
		p.palette.method.Sprint(req.Method()),
		p.palette.url.Sprint(req.URL()),
	)
	p.headers(req.Headers())
	fmt.Fprintln(p.w)
}

func (p *printer) status(res *message.Response) {
	c := p.palette.statusOK
	switch code := res.StatusCode(); {
	case code >= 400:
		c = p.palette.statusError
	case code >= 300:
		c = p.palette.statusWarn
	}
	fmt.Fprintln(p.w, c.Sprintf("%d %s", int(res.StatusCode()), res.StatusCode().ReasonPhrase()))
}

func (p *printer) headers(h *semantic.Headers) {
	h.Range(func(name string, values []string) bool {
		fmt.Fprintf(p.w, "%s: %s\n",
			p.palette.headerKey.Sprint(name),
			p.palette.headerValue.Sprint(semantic.Join(values)),
		)
		return true
	})
}

func (p *printer) body(b []byte) {
	if len(b) == 0 {
		return
	}
	fmt.Fprintln(p.w)
	p.w.Write(b)
	if b[len(b)-1] != '\n' {
		fmt.Fprintln(p.w)
	}
}

func (p *printer) failure(format string, args ...any) {
	fmt.Fprintln(p.w, p.palette.failure.Sprintf(format, args...))
}
