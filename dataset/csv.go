package dataset

import (
	"io"
	"os"

	"github.com/kshedden/dstream/dstream"
	"github.com/pkg/errors"
)

// Schema describes how the columns of a cohort CSV file are typed.  Time
// and Status name the follow-up time and event indicator columns and are
// always read as float64; they do not need to be repeated in Float64.
type Schema struct {

	// Time is the follow-up time column name.
	Time string

	// Status is the event indicator column name (1=event, 0=censored).
	Status string

	// Float64 lists the numeric covariate columns to read.
	Float64 []string

	// String lists the categorical covariate columns to read.
	String []string

	// ChunkSize is the read chunk size; 0 selects a default.
	ChunkSize int
}

// Load reads a cohort from a CSV file with a header row.  Rows with
// missing values in any schema column are dropped.
func Load(path string, sc Schema) (*Cohort, error) {

	fid, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening cohort file %s", path)
	}
	defer fid.Close()

	c, err := LoadReader(fid, sc)
	if err != nil {
		return nil, errors.Wrapf(err, "reading cohort file %s", path)
	}
	return c, nil
}

// LoadReader reads a cohort from CSV data with a header row.
func LoadReader(r io.Reader, sc Schema) (*Cohort, error) {

	if sc.Time == "" || sc.Status == "" {
		return nil, errors.New("schema must name the time and status columns")
	}

	chunk := sc.ChunkSize
	if chunk <= 0 {
		chunk = 200
	}

	fl := append([]string{sc.Time, sc.Status}, sc.Float64...)
	tc := &dstream.CSVTypeConf{Float64: fl, String: sc.String}

	dx := dstream.FromCSV(r).TypeConf(tc).ChunkSize(chunk).HasHeader().Done()
	da := dstream.MemCopy(dx, false)
	da = dstream.DropNA(da)
	da = dstream.MemCopy(da, false)

	// Every schema column must actually be present in the file.
	have := make(map[string]bool)
	for _, na := range da.Names() {
		have[na] = true
	}
	for _, na := range append(fl, sc.String...) {
		if !have[na] {
			return nil, errors.Errorf("schema column %s not found in the data", na)
		}
	}

	c := &Cohort{
		fcols:     make(map[string][]float64),
		scols:     make(map[string][]string),
		timevar:   sc.Time,
		statusvar: sc.Status,
	}

	for _, na := range da.Names() {
		da.Reset()
		switch v := dstream.GetCol(da, na).(type) {
		case []float64:
			c.fcols[na] = v
		case []string:
			c.scols[na] = v
		default:
			return nil, errors.Errorf("column %s has unsupported type", na)
		}
		c.names = append(c.names, na)
	}

	return c, validate(c)
}

func validate(c *Cohort) error {

	tm, ok := c.fcols[c.timevar]
	if !ok {
		return errors.Errorf("time column %s not found", c.timevar)
	}
	st, ok := c.fcols[c.statusvar]
	if !ok {
		return errors.Errorf("status column %s not found", c.statusvar)
	}
	if len(tm) == 0 {
		return errors.New("cohort is empty after dropping missing values")
	}
	c.nrow = len(tm)

	for _, na := range c.names {
		if v, ok := c.fcols[na]; ok && len(v) != c.nrow {
			return errors.Errorf("column %s has %d values, expected %d", na, len(v), c.nrow)
		}
		if v, ok := c.scols[na]; ok && len(v) != c.nrow {
			return errors.Errorf("column %s has %d values, expected %d", na, len(v), c.nrow)
		}
	}

	for i, t := range tm {
		if t < 0 {
			return errors.Errorf("negative follow-up time %f at row %d", t, i)
		}
		if st[i] != 0 && st[i] != 1 {
			return errors.Errorf("status value %f at row %d is not 0 or 1", st[i], i)
		}
	}

	return nil
}
