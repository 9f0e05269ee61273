// Package export writes flattened comment records to CSV or JSON files.
//
// Sinks consume records one at a time, in the order the walker emits them,
// so downstream writing never has to buffer a whole comment tree. File
// sinks write through a temp file and rename on Close, leaving no
// half-written output behind on failure.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ytcomments/youtube"
)

// Columns is the CSV header: exactly these seven columns, in this order.
var Columns = []string{
	"comment_type",
	"author",
	"text",
	"likes",
	"published",
	"parent_author",
	"parent_text",
}

// Sink consumes an ordered stream of comment records.
type Sink interface {
	// Write appends one record to the output.
	Write(rec youtube.CommentRecord) error
	// Close finalizes the output. It must be called for the output to be valid.
	Close() error
}

// NewFileSink creates a sink writing to the given path, choosing the
// format from the extension: .csv writes CSV, anything else a JSON array.
// The file only appears at path once Close succeeds.
func NewFileSink(path string) (Sink, error) {
	out, err := NewAtomicWriter(path)
	if err != nil {
		return nil, err
	}

	var sink Sink
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		sink, err = NewCSVSink(out)
	} else {
		sink = NewJSONSink(out)
	}
	if err != nil {
		out.Abort()
		return nil, err
	}

	return &fileSink{inner: sink, out: out}, nil
}

// fileSink commits the atomic writer once the inner sink closed cleanly.
type fileSink struct {
	inner Sink
	out   *AtomicWriter
}

func (f *fileSink) Write(rec youtube.CommentRecord) error {
	return f.inner.Write(rec)
}

func (f *fileSink) Close() error {
	if err := f.inner.Close(); err != nil {
		f.out.Abort()
		return err
	}
	return f.out.Commit()
}

// CSVSink writes records as CSV rows with a header row.
type CSVSink struct {
	w *csv.Writer
}

// NewCSVSink creates a CSV sink and writes the header row.
func NewCSVSink(w io.Writer) (*CSVSink, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return &CSVSink{w: cw}, nil
}

// Write appends one record as a CSV row.
func (s *CSVSink) Write(rec youtube.CommentRecord) error {
	return s.w.Write([]string{
		rec.Type,
		rec.Author,
		rec.Text,
		strconv.FormatInt(rec.Likes, 10),
		publishedString(rec.Published),
		rec.ParentAuthor,
		rec.ParentText,
	})
}

// Close flushes buffered rows.
func (s *CSVSink) Close() error {
	s.w.Flush()
	return s.w.Error()
}

// publishedString renders a publish time as RFC3339 UTC, or empty for the
// zero time. Both sinks use it so CSV and JSON agree on missing timestamps.
func publishedString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// jsonRecord mirrors CommentRecord with the publish time pre-rendered, so
// the JSON output carries the same value the CSV cell would.
type jsonRecord struct {
	Type         string `json:"comment_type"`
	Author       string `json:"author"`
	Text         string `json:"text"`
	Likes        int64  `json:"likes"`
	Published    string `json:"published"`
	ParentAuthor string `json:"parent_author"`
	ParentText   string `json:"parent_text"`
}

// JSONSink writes records as a JSON array, streamed element by element.
type JSONSink struct {
	w     io.Writer
	err   error
	count int
}

// NewJSONSink creates a JSON array sink.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

// Write appends one record as an array element.
func (s *JSONSink) Write(rec youtube.CommentRecord) error {
	if s.err != nil {
		return s.err
	}

	data, err := json.MarshalIndent(jsonRecord{
		Type:         rec.Type,
		Author:       rec.Author,
		Text:         rec.Text,
		Likes:        rec.Likes,
		Published:    publishedString(rec.Published),
		ParentAuthor: rec.ParentAuthor,
		ParentText:   rec.ParentText,
	}, "  ", "  ")
	if err != nil {
		s.err = err
		return err
	}

	prefix := "[\n  "
	if s.count > 0 {
		prefix = ",\n  "
	}
	if _, err := io.WriteString(s.w, prefix); err != nil {
		s.err = err
		return err
	}
	if _, err := s.w.Write(data); err != nil {
		s.err = err
		return err
	}

	s.count++
	return nil
}

// Close terminates the array. An empty stream produces "[]".
func (s *JSONSink) Close() error {
	if s.err != nil {
		return s.err
	}
	if s.count == 0 {
		_, err := io.WriteString(s.w, "[]\n")
		return err
	}
	_, err := io.WriteString(s.w, "\n]\n")
	return err
}
