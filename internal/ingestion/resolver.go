package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/JoaoVF25/dashboard/internal/domain/apperr"
	"github.com/JoaoVF25/dashboard/internal/domain/models"
	"github.com/JoaoVF25/dashboard/internal/logger"
)

// TargetColumns are the logical columns every uploaded portfolio file must
// contain, in canonical spelling. Matching against file headers is
// case- and whitespace-insensitive.
var TargetColumns = []string{"Ativo", "Quantidade"}

// csvEncodings is the fixed, ordered set of character encodings tried for
// delimited text files. Order matters: the first combination that surfaces
// the target columns wins, so results are reproducible for the same bytes.
var csvEncodings = []string{"utf-8", "iso-8859-1", "iso-8859-15", "windows-1252"}

// csvSeparators is the fixed, ordered set of field separators tried for
// delimited text files. The zero rune is the auto-detect sentinel.
var csvSeparators = []rune{';', ',', '\t', 0}

// maxSkipRows bounds how many leading noise rows (titles, export banners)
// the resolver will try to skip before giving up on a combination.
const maxSkipRows = 5

// ParseConfig identifies one parse attempt in the brute-force search.
// The winning config is reported back to the user so they can see how
// their file was read.
type ParseConfig struct {
	Encoding  string // delimited files only
	Separator rune   // delimited files only; 0 means auto-detected
	SkipRows  int
	Engine    string // workbook files only: "first-sheet" or "scan-sheets"
}

// String renders the config in the form surfaced by the upload endpoint.
func (c ParseConfig) String() string {
	if c.Engine != "" {
		return fmt.Sprintf("engine=%s skip_rows=%d", c.Engine, c.SkipRows)
	}
	sep := "auto"
	switch c.Separator {
	case ';':
		sep = "';'"
	case ',':
		sep = "','"
	case '\t':
		sep = "tab"
	}
	return fmt.Sprintf("encoding=%s separator=%s skip_rows=%d", c.Encoding, sep, c.SkipRows)
}

// Table is a raw parse result: canonical target headers plus the matching
// cell values, in the same row order as the winning attempt.
type Table struct {
	Headers []string
	Records [][]string
}

// Result is the final output of the resolver: normalized portfolio rows,
// the winning parse configuration, and how many input rows were dropped
// during normalization.
type Result struct {
	Rows    []models.PortfolioRow
	Config  ParseConfig
	Skipped int
}

// Resolver turns an uploaded byte blob of unknown encoding and layout into
// a clean (Ativo, Quantidade) table by brute-forcing a fixed search space
// of parse configurations.
//
// The search space for .csv files is encodings × separators × skip-rows;
// for .xlsx/.xls it is skip-rows × sheet engines. The first combination
// whose headers contain every target column (after trimming and
// lowercasing) wins; partial matches are rejected. Only total exhaustion
// of the space produces an error.
type Resolver struct {
	targets []string
	log     zerolog.Logger
}

// NewResolver builds a resolver for the given target columns. With no
// arguments it looks for the default TargetColumns.
func NewResolver(targets ...string) *Resolver {
	if len(targets) == 0 {
		targets = TargetColumns
	}
	return &Resolver{
		targets: targets,
		log:     logger.With("ingestion"),
	}
}

// Resolve parses content according to the filename's extension and returns
// the normalized rows.
//
// Errors:
//   - apperr.ErrUnsupportedFormat for extensions outside .csv/.xlsx/.xls,
//     signalled before any parse attempt.
//   - apperr.ErrNoReadableTable when the full search space was exhausted
//     without finding the target columns.
func (r *Resolver) Resolve(filename string, content []byte) (*Result, error) {
	var (
		table *Table
		cfg   ParseConfig
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		table, cfg, err = r.resolveCSV(content)
	case ".xlsx", ".xls":
		table, cfg, err = r.resolveWorkbook(content)
	default:
		return nil, fmt.Errorf("%w: %q (only .csv, .xlsx and .xls are accepted)", apperr.ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("file %s: %w", filename, err)
	}

	rows, skipped := Normalize(table)
	r.log.Info().
		Str("file", filename).
		Str("parse_config", cfg.String()).
		Int("rows", len(rows)).
		Int("skipped", skipped).
		Msg("file resolved")

	return &Result{Rows: rows, Config: cfg, Skipped: skipped}, nil
}

// resolveCSV walks the encoding × separator × skip-rows space in fixed
// order and returns the first table containing every target column.
func (r *Resolver) resolveCSV(content []byte) (*Table, ParseConfig, error) {
	attempts := 0
	for _, enc := range csvEncodings {
		text, ok := decode(content, enc)
		if !ok {
			// Bytes are not valid in this encoding; every separator and
			// skip count would fail identically, so move on.
			continue
		}
		for _, sep := range csvSeparators {
			for skip := 0; skip < maxSkipRows; skip++ {
				attempts++
				table := r.tryDelimited(text, sep, skip)
				if table != nil {
					return table, ParseConfig{Encoding: enc, Separator: sep, SkipRows: skip}, nil
				}
			}
		}
	}
	return nil, ParseConfig{}, fmt.Errorf("%w: columns %v not found after %d attempts",
		apperr.ErrNoReadableTable, r.targets, attempts)
}

// tryDelimited parses text with one (separator, skip) combination and
// returns the selected table, or nil when the target columns are absent.
// Malformed lines inside an otherwise matching table are logged and
// skipped, never fatal.
func (r *Resolver) tryDelimited(text string, sep rune, skip int) *Table {
	if sep == 0 {
		sep = detectSeparator(text, skip)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	// Discard leading noise rows.
	for i := 0; i < skip; i++ {
		if _, err := cr.Read(); err != nil {
			return nil
		}
	}

	header, err := cr.Read()
	if err != nil {
		return nil
	}

	idx := matchTargets(header, r.targets)
	if idx == nil {
		return nil
	}

	table := &Table{Headers: append([]string(nil), r.targets...)}
	line := skip + 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			r.log.Warn().Int("line", line).Err(err).Msg("malformed line skipped")
			continue
		}
		table.Records = append(table.Records, selectCells(rec, idx))
	}
	return table
}

// decode converts raw bytes to a string in the given encoding. The second
// return value is false when the bytes cannot be represented in it, which
// prunes that encoding's whole branch of the search space.
func decode(content []byte, enc string) (string, bool) {
	var dec *encoding.Decoder
	switch enc {
	case "utf-8":
		if !utf8.Valid(content) {
			return "", false
		}
		return string(content), true
	case "iso-8859-1":
		dec = charmap.ISO8859_1.NewDecoder()
	case "iso-8859-15":
		dec = charmap.ISO8859_15.NewDecoder()
	case "windows-1252":
		dec = charmap.Windows1252.NewDecoder()
	default:
		return "", false
	}
	out, err := dec.Bytes(content)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// detectSeparator implements the auto-detect sentinel: it counts candidate
// separators on the first line past the skipped rows and picks the most
// frequent one. Semicolon wins ties, matching the search order.
func detectSeparator(text string, skip int) rune {
	lines := strings.Split(text, "\n")
	if skip >= len(lines) {
		return ';'
	}
	line := lines[skip]

	best, bestCount := ';', 0
	for _, cand := range []rune{';', ',', '\t'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// normalizeHeader prepares a header cell for comparison: surrounding
// whitespace removed, lowercased.
func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// matchTargets maps each target column to its position in header, or
// returns nil unless every target is present. Matching is exact on the
// normalized form.
func matchTargets(header, targets []string) []int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		norm := normalizeHeader(h)
		if _, seen := pos[norm]; !seen {
			pos[norm] = i
		}
	}

	idx := make([]int, 0, len(targets))
	for _, target := range targets {
		i, ok := pos[normalizeHeader(target)]
		if !ok {
			return nil
		}
		idx = append(idx, i)
	}
	return idx
}

// selectCells extracts the cells at idx from a record, substituting empty
// strings for positions beyond the record's width.
func selectCells(rec []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		if j < len(rec) {
			out[i] = rec[j]
		}
	}
	return out
}
