// Command datacat reads delimited data files and prints their records,
// blocks or table.
//
//	datacat [flags] [file ...]
//
// With no files, datacat reads standard input. Files ending in .lz4 are
// decompressed on the fly.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pierrec/lz4/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shapestone/shape-datafile/internal/mmap"
	"github.com/shapestone/shape-datafile/pkg/datafile"
)

const (
	modeRecords   = "records"
	modeBlocks    = "blocks"
	modeTable     = "table"
	modeNormalize = "normalize"
)

type config struct {
	delim         string
	typeName      string
	mode          string
	outDelim      string
	maxRecordSize int
	metricsAddr   string
	mmap          bool
	files         []string
}

func parseFlags(args []string, output io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("datacat", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.delim, "delim", ",", "Field delimiter: a single character, \"tab\", \"space\" or \"auto\" to detect it")
	fs.StringVar(&cfg.typeName, "type", "string", "Field type: "+strings.Join(datafile.NewConverterRegistry().Names(), ", "))
	fs.StringVar(&cfg.mode, "mode", modeRecords, "Output mode: records, blocks, table or normalize")
	fs.StringVar(&cfg.outDelim, "out-delim", ",", "Output field delimiter: a single character, \"tab\" or \"space\"")
	fs.IntVar(&cfg.maxRecordSize, "max-record-size", 0, "Maximum line length in bytes (0 for no limit)")
	fs.BoolVar(&cfg.mmap, "mmap", false, "Memory-map input files instead of reading them")
	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "Address to serve Prometheus metrics on while reading (e.g. :9090)")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.files = fs.Args()
	return cfg, nil
}

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	var metrics *datafile.Metrics
	if cfg.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = datafile.NewMetrics(reg)

		srv := &http.Server{
			Addr:    cfg.metricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				level.Error(logger).Log("msg", "metrics server failed", "err", err)
			}
		}()
		level.Info(logger).Log("msg", "serving metrics", "addr", cfg.metricsAddr)
	}

	if err := run(cfg, os.Stdin, os.Stdout, metrics, logger); err != nil {
		level.Error(logger).Log("msg", "datacat failed", "err", err)
		os.Exit(1)
	}
}

// catter prints every input according to one configuration.
type catter struct {
	cfg      config
	parse    datafile.ParseFunc[any]
	outDelim byte
	out      *bufio.Writer
	metrics  *datafile.Metrics
	logger   log.Logger
}

func run(cfg config, stdin io.Reader, stdout io.Writer, metrics *datafile.Metrics, logger log.Logger) error {
	switch cfg.mode {
	case modeRecords, modeBlocks, modeTable, modeNormalize:
	default:
		return fmt.Errorf("unknown mode %q", cfg.mode)
	}

	conv, ok := datafile.NewConverterRegistry().Get(cfg.typeName)
	if !ok {
		return fmt.Errorf("unknown type %q", cfg.typeName)
	}
	if cfg.outDelim == "auto" {
		return errors.New("-out-delim cannot be auto")
	}
	outDelim, err := parseDelim(cfg.outDelim)
	if err != nil {
		return fmt.Errorf("-out-delim: %w", err)
	}
	if cfg.delim != "auto" {
		if _, err := parseDelim(cfg.delim); err != nil {
			return fmt.Errorf("-delim: %w", err)
		}
	}

	c := &catter{
		cfg:      cfg,
		parse:    datafile.FromConverter(conv),
		outDelim: outDelim,
		out:      bufio.NewWriter(stdout),
		metrics:  metrics,
		logger:   logger,
	}

	if len(cfg.files) == 0 {
		if err := c.cat("-", stdin); err != nil {
			c.out.Flush()
			return fmt.Errorf("<stdin>: %w", err)
		}
		return c.out.Flush()
	}

	for _, name := range cfg.files {
		if err := c.catFile(name); err != nil {
			c.out.Flush()
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return c.out.Flush()
}

// parseDelim converts a delimiter flag value to a byte.
func parseDelim(s string) (byte, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	case "space":
		return ' ', nil
	}
	if len(s) != 1 || s[0] == '\n' || s[0] >= 0x80 {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return s[0], nil
}

func (c *catter) catFile(name string) error {
	var r io.Reader
	if c.cfg.mmap {
		data, cleanup, err := mmap.MapFile(name)
		if err != nil {
			return err
		}
		defer cleanup()
		r = bytes.NewReader(data)
	} else {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	if strings.HasSuffix(name, ".lz4") {
		r = lz4.NewReader(r)
	}
	return c.cat(name, r)
}

func (c *catter) cat(name string, r io.Reader) error {
	br := bufio.NewReader(r)

	var delim byte
	if c.cfg.delim == "auto" {
		d, err := datafile.SniffDelimiter(br)
		if err != nil {
			return err
		}
		delim = d
		level.Info(c.logger).Log("msg", "detected delimiter", "file", name, "delim", fmt.Sprintf("%q", delim))
	} else {
		delim, _ = parseDelim(c.cfg.delim)
	}

	opts := datafile.DefaultReaderOptions()
	opts.FieldDelimiter = delim
	opts.MaxRecordSize = c.cfg.maxRecordSize
	opts.Metrics = c.metrics
	if c.cfg.mode == modeNormalize {
		return c.normalize(name, br, opts)
	}

	rr, err := datafile.NewRecordReaderWithOptions(br, opts)
	if err != nil {
		return err
	}

	switch c.cfg.mode {
	case modeBlocks:
		return c.printBlocks(name, rr)
	case modeTable:
		return c.printTable(name, rr)
	default:
		return c.printRecords(rr)
	}
}

func (c *catter) printRecords(rr *datafile.RecordReader) error {
	for {
		rec, err := rr.Next()
		if err != nil {
			return err
		}

		switch rec := rec.(type) {
		case datafile.Fields:
			row, err := c.convert(rec, rr.Line())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s\t%s\n", rec.Kind(), datafile.FormatFields(c.outDelim, row))
		case datafile.Comment:
			fmt.Fprintf(c.out, "%s\t%s\n", rec.Kind(), strings.TrimRight(string(rec), "\r\n"))
		case datafile.Blank:
			fmt.Fprintf(c.out, "%s\n", rec.Kind())
		case datafile.EndOfInput:
			return nil
		}
	}
}

// convert applies the configured type to every field so that records mode
// rejects the same input the other modes do.
func (c *catter) convert(fields datafile.Fields, line int) ([]any, error) {
	row := make([]any, len(fields))
	for i, field := range fields {
		v, err := c.parse(field)
		if err != nil {
			return nil, &datafile.ParseError{Line: line, Field: i + 1, Value: field, Err: err}
		}
		row[i] = v
	}
	return row, nil
}

func (c *catter) printBlocks(name string, rr *datafile.RecordReader) error {
	scanner := datafile.NewScanner(rr, c.parse)
	blocks := 0
	for scanner.Scan() {
		blocks++
		for _, row := range scanner.Block() {
			fmt.Fprintln(c.out, datafile.FormatFields(c.outDelim, row))
		}
		fmt.Fprintf(c.out, "# blanks=%d\n", scanner.Blanks())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	level.Info(c.logger).Log("msg", "read blocks", "file", name, "blocks", blocks, "leading", scanner.Leading())
	return nil
}

func (c *catter) printTable(name string, rr *datafile.RecordReader) error {
	table, err := datafile.ReadTable[any](datafile.NewTableReader(rr, c.parse))
	if err != nil {
		return err
	}

	c.out.WriteString(table.Format(datafile.WriterOptions{FieldDelimiter: c.outDelim}))
	level.Info(c.logger).Log("msg", "read table", "file", name, "rows", table.Len(), "width", table.Width())
	return nil
}

// normalize rewrites the input without comments, with trimmed fields and a
// single blank line between blocks. Undecodable lines are dropped with a warning.
func (c *catter) normalize(name string, r io.Reader, opts datafile.ReaderOptions) error {
	opts.OnBadLine = datafile.BadLineModeWarn
	opts.WarningCallback = func(line int, message string) {
		level.Warn(c.logger).Log("msg", "skipping line", "file", name, "line", line, "err", message)
	}

	node, err := datafile.ParseReaderWithOptions(r, opts)
	if err != nil {
		return err
	}
	out, err := datafile.RenderWithOptions(node, datafile.WriterOptions{FieldDelimiter: c.outDelim})
	if err != nil {
		return err
	}
	_, err = c.out.Write(out)
	return err
}
