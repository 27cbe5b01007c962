package wine

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"

	"github.com/YuminosukeSato/wineml/pkg/errors"
	"github.com/YuminosukeSato/wineml/pkg/log"
)

var (
	errMissingHeader = errors.New("missing header row")
	errEmptyField    = errors.New("empty value")
)

// Load reads the data file at path.
//
// A missing file yields a *errors.FileNotFoundError. A row with the wrong
// number of columns or a value that is not a finite number yields a
// *errors.ParseError; no partial dataset is returned.
func Load(path string) (*Dataset, error) {
	start := time.Now()
	logger := log.GetLoggerWithName("wine.loader")

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrapf(err, "wine: open %s", path)
	}
	defer f.Close()

	var size uint64
	if info, err := f.Stat(); err == nil {
		size = uint64(info.Size())
	}

	ds, err := Read(f, path)
	if err != nil {
		logger.Debug("Dataset rejected", log.SourceKey, path, log.ErrAttrKey, err)
		return nil, err
	}

	logger.Debug("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.SourceKey, path,
		log.SamplesKey, ds.Len(),
		log.DataSizeKey, humanize.Bytes(size),
		log.DurationMsKey, log.Since(start))
	return ds, nil
}

// Read parses a data file from r. source is used in error messages.
func Read(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = len(columns)

	var samples []WineSample
	if err := gocsv.UnmarshalCSV(&schemaReader{r: cr}, &samples); err != nil {
		return nil, toParseError(source, err)
	}

	for i, s := range samples {
		for _, name := range columns {
			v, _ := s.Value(name)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewParseError(source, i+2,
					fmt.Sprintf("column %s is not a finite number", name), nil)
			}
		}
	}

	if samples == nil {
		samples = []WineSample{}
	}
	return &Dataset{Source: source, Samples: samples}, nil
}

// schemaReader replaces the header row of the underlying reader with the
// canonical column names, so that gocsv binds fields by position.
type schemaReader struct {
	r          *csv.Reader
	headerDone bool
}

func (s *schemaReader) Read() ([]string, error) {
	row, err := s.r.Read()
	if err != nil {
		if err == io.EOF && !s.headerDone {
			return nil, errMissingHeader
		}
		return nil, err
	}
	if !s.headerDone {
		s.headerDone = true
		return Schema(), nil
	}
	line, _ := s.r.FieldPos(0)
	if err := checkEmpty(row, line); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *schemaReader) ReadAll() ([][]string, error) {
	rows, err := s.r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errMissingHeader
	}
	s.headerDone = true
	rows[0] = Schema()
	for i, row := range rows[1:] {
		if err := checkEmpty(row, i+2); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// checkEmpty rejects blank fields, which gocsv would read as zero.
func checkEmpty(row []string, line int) error {
	for j, field := range row {
		if strings.TrimSpace(field) == "" {
			return &csv.ParseError{StartLine: line, Line: line, Column: j + 1, Err: errEmptyField}
		}
	}
	return nil
}

func toParseError(source string, err error) error {
	if errors.Is(err, errMissingHeader) || errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return errors.NewParseError(source, 0, "missing header row", nil)
	}

	var pe *csv.ParseError
	if !errors.As(err, &pe) {
		return errors.NewParseError(source, 0, "unreadable data", err)
	}

	var reason string
	switch {
	case errors.Is(pe.Err, csv.ErrFieldCount):
		reason = fmt.Sprintf("expected %d columns", len(columns))
	case errors.Is(pe.Err, errEmptyField):
		reason = fmt.Sprintf("empty value in column %s", columnName(pe.Column))
	case errors.Is(pe.Err, csv.ErrQuote), errors.Is(pe.Err, csv.ErrBareQuote):
		reason = "malformed row"
	default:
		reason = fmt.Sprintf("invalid value in column %s", columnName(pe.Column))
	}
	return errors.NewParseError(source, pe.Line, reason, pe.Err)
}

func columnName(col int) string {
	if col < 1 || col > len(columns) {
		return fmt.Sprintf("#%d", col)
	}
	return columns[col-1]
}
