package ingest

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// Open opens a TSV corpus file, transparently decompressing .gz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

// eachRow scans tab-separated lines and calls fn with the first two columns.
// OPUS exports may carry extra columns; those are ignored. Rows with fewer
// than two columns are reported with ok=false so the pipeline can count them.
func eachRow(r io.Reader, fn func(source, target string, ok bool) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			if err := fn("", "", false); err != nil {
				return err
			}
			continue
		}
		if err := fn(strings.TrimSpace(cols[0]), strings.TrimSpace(cols[1]), true); err != nil {
			return err
		}
	}
	return sc.Err()
}
