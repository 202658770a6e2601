package pattern

import (
	"regexp"

	"github.com/pkg/errors"
)

// NativeCaptureCounter asks the regexp engine for the number of capturing
// groups.
type NativeCaptureCounter struct{}

func (NativeCaptureCounter) CountCaptures(requirement string) (int, error) {
	re, err := regexp.Compile(requirement)
	if err != nil {
		return 0, err
	}
	return re.NumSubexp(), nil
}

// ProbeCaptureCounter counts capturing groups without introspection: the
// requirement gets an empty alternative so it always matches "", and every
// submatch slot beyond the whole match belongs to a group of the requirement.
type ProbeCaptureCounter struct{}

func (ProbeCaptureCounter) CountCaptures(requirement string) (int, error) {
	re, err := regexp.Compile(requirement + "|")
	if err != nil {
		return 0, err
	}
	match := re.FindStringSubmatch("")
	if match == nil {
		return 0, errors.Errorf("probe %q did not match the empty string", re.String())
	}
	return len(match) - 1, nil
}
