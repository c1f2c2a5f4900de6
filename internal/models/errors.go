package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingData          = errors.New("missing data")
	ErrUnrecognizedCategory = errors.New("unrecognized category")
	ErrMalformedInput       = errors.New("malformed input")
)

// MissingDataError reports a statistic whose denominator is zero.
type MissingDataError struct {
	Statistic string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("no data for %s", e.Statistic)
}

func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}

type UnrecognizedCategoryError struct {
	Value string
	Date  string
}

func (e *UnrecognizedCategoryError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("unrecognized weather category %q on %s", e.Value, e.Date)
	}
	return fmt.Sprintf("unrecognized weather category %q", e.Value)
}

func (e *UnrecognizedCategoryError) Is(target error) bool {
	return target == ErrUnrecognizedCategory
}

// MalformedInputError rejects a dataset row. Line is 1-based and counts the
// header.
type MalformedInputError struct {
	Line   int
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
