/*
   Reader for the adjacency-list graph format:

       rows 3 columns 3
       row 0: 1 2 -1
       row 1: 2 -1

   The header carries the row and column counts as its 2nd and 4th fields.
   Every following line skips a 4 character prefix, reads the row id up to a
   colon and then a list of column indices terminated by -1.
*/
package adjlist

import (
	"bufio"
	"context"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/Ahmed-Sermani/go-pagerank/sparse"
	"golang.org/x/xerrors"
)

const (
	rowPrefixLen = 4
	endOfRow     = -1

	// Row lines have no length limit; a node with many out-links produces a
	// line far beyond bufio.MaxScanTokenSize.
	maxLineLen = math.MaxInt32
)

var (
	ErrMalformedHeader  = xerrors.New("malformed header")
	ErrMalformedRow     = xerrors.New("malformed row")
	ErrColumnOutOfRange = xerrors.New("column index out of range")
)

// Parse reads an adjacency list from r and returns the matrix it describes.
// Every listed column becomes a cell with value 1. Row ids beyond the declared
// row count grow the row list instead of being rejected; the declared count
// stays the matrix row dimension.
func Parse(r io.Reader) (*sparse.Matrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLen)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, xerrors.Errorf("read header: %w", err)
		}
		return nil, xerrors.Errorf("empty input: %w", ErrMalformedHeader)
	}
	m, n, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, err
	}

	mat := sparse.New(m, n)
	for lineNo := 2; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := parseRow(mat, line); err != nil {
			return nil, xerrors.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Errorf("read rows: %w", err)
	}
	return mat, nil
}

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/go-pagerank/adjlist URLGetter

// URLGetter is implemented by objects that can perform HTTP requests.
// *http.Client satisfies it.
type URLGetter interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader reads adjacency lists from the local filesystem or over HTTP.
type Loader struct {
	// The client used for http(s) resources. Defaults to http.DefaultClient.
	URLGetter URLGetter
}

// Load parses the adjacency list found at resource using http.DefaultClient
// for remote resources.
func Load(ctx context.Context, resource string) (*sparse.Matrix, error) {
	return Loader{}.Load(ctx, resource)
}

// Load parses the adjacency list found at resource, which is either a path
// on the local filesystem or an http(s) URL.
func (l Loader) Load(ctx context.Context, resource string) (*sparse.Matrix, error) {
	if strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://") {
		return l.loadURL(ctx, resource)
	}

	f, err := os.Open(resource)
	if err != nil {
		return nil, xerrors.Errorf("open %s: %w", resource, err)
	}
	defer func() { _ = f.Close() }()

	mat, err := Parse(f)
	if err != nil {
		return nil, xerrors.Errorf("parse %s: %w", resource, err)
	}
	return mat, nil
}

func (l Loader) loadURL(ctx context.Context, url string) (*sparse.Matrix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, xerrors.Errorf("fetch %s: %w", url, err)
	}

	getter := l.URLGetter
	if getter == nil {
		getter = http.DefaultClient
	}
	resp, err := getter.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("fetch %s: unexpected status %q", url, resp.Status)
	}

	mat, err := Parse(resp.Body)
	if err != nil {
		return nil, xerrors.Errorf("parse %s: %w", url, err)
	}
	return mat, nil
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, 0, xerrors.Errorf("expected 4 fields, got %d: %w", len(fields), ErrMalformedHeader)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil || m < 0 {
		return 0, 0, xerrors.Errorf("row count %q: %w", fields[1], ErrMalformedHeader)
	}
	n, err := strconv.Atoi(fields[3])
	if err != nil || n < 0 {
		return 0, 0, xerrors.Errorf("column count %q: %w", fields[3], ErrMalformedHeader)
	}
	return m, n, nil
}

func parseRow(mat *sparse.Matrix, line string) error {
	if len(line) < rowPrefixLen {
		return xerrors.Errorf("line too short: %w", ErrMalformedRow)
	}
	body := line[rowPrefixLen:]
	colon := strings.IndexByte(body, ':')
	if colon < 0 {
		return xerrors.Errorf("missing ':' after row id: %w", ErrMalformedRow)
	}
	rowID, err := strconv.Atoi(strings.TrimSpace(body[:colon]))
	if err != nil || rowID < 0 {
		return xerrors.Errorf("row id %q: %w", body[:colon], ErrMalformedRow)
	}

	mat.Grow(rowID + 1)
	_, n := mat.Dims()
	for _, field := range strings.Fields(body[colon+1:]) {
		col, err := strconv.Atoi(field)
		if err != nil {
			return xerrors.Errorf("row %d: column %q: %w", rowID, field, ErrMalformedRow)
		}
		switch {
		case col == endOfRow:
			continue
		case col < 0:
			return xerrors.Errorf("row %d: column %d: %w", rowID, col, ErrMalformedRow)
		case col >= n:
			return xerrors.Errorf("row %d: column %d >= %d: %w", rowID, col, n, ErrColumnOutOfRange)
		}
		mat.Append(rowID, col, 1)
	}
	return nil
}
