// Package csvfile holds the pieces shared by the CSV-backed stores: BOM
// handling, header checks and the cell types that gocsv cannot express
// with its defaults.
package csvfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "studyroutine/internal/platform/errors"
)

const dateLayout = "2006-01-02"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM drops a leading UTF-8 byte order mark.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// RequireHeader checks that the first record names every wanted column.
// Extra columns are allowed.
func RequireHeader(data []byte, want []string) error {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: file is empty", apperrors.ErrDataCorruption)
	}
	if err != nil {
		return fmt.Errorf("%w: read header: %v", apperrors.ErrDataCorruption, err)
	}
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = struct{}{}
	}
	var missing []string
	for _, w := range want {
		if _, ok := have[w]; !ok {
			missing = append(missing, w)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing column(s) %s", apperrors.ErrDataCorruption, strings.Join(missing, ", "))
	}
	return nil
}

// Date is an ISO civil date cell.
type Date struct {
	time.Time
}

func (d Date) MarshalCSV() (string, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) UnmarshalCSV(value string) error {
	value = strings.TrimSpace(value)
	for _, layout := range []string{dateLayout, time.DateTime} {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, day := t.Date()
			d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", value)
}

// Bool is a completion flag cell. It writes True/False and reads any
// casing of true/false as well as 1/0.
type Bool bool

func (b Bool) MarshalCSV() (string, error) {
	if b {
		return "True", nil
	}
	return "False", nil
}

func (b *Bool) UnmarshalCSV(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		*b = true
	case "false", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean %q", value)
	}
	return nil
}

// Int is a required non-negative integer cell.
type Int int

func (n Int) MarshalCSV() (string, error) {
	return strconv.Itoa(int(n)), nil
}

func (n *Int) UnmarshalCSV(value string) error {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || v < 0 {
		return fmt.Errorf("invalid index %q", value)
	}
	*n = Int(v)
	return nil
}
