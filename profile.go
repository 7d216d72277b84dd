package galmaru

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//FormatError describes a malformed row in a profile table
type FormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
}

//Profile stores an observed radial surface brightness profile
type Profile struct {
	R   []float64 // radius in arcseconds
	Mag []float64 // surface brightness in magnitudes
	Err []float64 // per-point uncertainty in magnitudes
}

var profileCols = [3]string{"radius", "brightness", "uncertainty"}

//ReadProfile will read a whitespace-delimited table of (radius, brightness, uncertainty)
//rows into a Profile. Blank lines and lines starting with '#' are skipped, and any
//columns past the third are ignored. Every uncertainty must be strictly positive.
func ReadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	defer f.Close()
	prof := new(Profile)
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, &FormatError{Path: path, Line: lineno, Reason: fmt.Sprintf("expected 3 columns, got %d", len(fields))}
		}
		var vals [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, &FormatError{Path: path, Line: lineno, Reason: fmt.Sprintf("bad %s value %q", profileCols[i], fields[i])}
			}
			vals[i] = v
		}
		if vals[2] <= 0. {
			return nil, &FormatError{Path: path, Line: lineno, Reason: fmt.Sprintf("uncertainty must be > 0, got %g", vals[2])}
		}
		prof.R = append(prof.R, vals[0])
		prof.Mag = append(prof.Mag, vals[1])
		prof.Err = append(prof.Err, vals[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	if len(prof.R) == 0 {
		return nil, &FormatError{Path: path, Line: lineno, Reason: "no observations in file"}
	}
	return prof, nil
}

//Len returns the number of observations
func (p *Profile) Len() int {
	return len(p.R)
}

//MeanRadius returns the mean observed radius
func (p *Profile) MeanRadius() float64 {
	return stat.Mean(p.R, nil)
}

//MaxRadius returns the largest observed radius
func (p *Profile) MaxRadius() float64 {
	return floats.Max(p.R)
}

//MeanMag returns the mean observed surface brightness
func (p *Profile) MeanMag() float64 {
	return stat.Mean(p.Mag, nil)
}

//MaxMag returns the faintest observed surface brightness
func (p *Profile) MaxMag() float64 {
	return floats.Max(p.Mag)
}
