package engine

import (
	"errors"
	"strconv"
)

// FieldWriter is the sink side of a field formatter. Values are plain Go
// values: int, int32, string, geom.Point and geom.Rect.
type FieldWriter interface {
	WriteField(key string, value any) error
}

// FieldReader reads back what a FieldWriter stored. dst is a pointer to a
// value of the type that was written.
type FieldReader interface {
	ReadField(key string, dst any) error
}

// fieldKey builds the per-shape key, e.g. "Rect0" or "PenWidth3".
func fieldKey(name string, order int) string {
	return name + strconv.Itoa(order)
}

// pointKey builds the key of the j-th polygon vertex, e.g. "Point2-0".
func pointKey(order, j int) string {
	return "Point" + strconv.Itoa(order) + "-" + strconv.Itoa(j)
}

// ErrMalformed is returned when saved fields are present but describe
// impossible content, such as a negative shape count.
var ErrMalformed = errors.New("malformed document")
