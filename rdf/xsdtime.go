package rdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	xsdDateTimeLayout      = "2006-01-02T15:04:05"
	xsdDateTimeZonedLayout = "2006-01-02T15:04:05Z07:00"
	xsdDateLayout          = "2006-01-02"
	xsdDateZonedLayout     = "2006-01-02Z07:00"
)

// TimeLiteral encodes t as an xsd:dateTime literal in loc (UTC when nil).
// The fraction is printed only when non-zero; UTC is written as "Z".
func TimeLiteral(t time.Time, loc *time.Location) Literal {
	if loc == nil {
		loc = time.UTC
	}
	return Literal{Lexical: t.In(loc).Format(time.RFC3339Nano), Datatype: XSDDateTime}
}

// DateLiteral encodes the calendar day of t as an xsd:date literal.
func DateLiteral(t time.Time) Literal {
	return Literal{Lexical: t.Format(xsdDateLayout), Datatype: XSDDate}
}

// DurationLiteral encodes d as an xsd:duration literal using hours, minutes and seconds.
func DurationLiteral(d time.Duration) Literal {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteString("PT")
	whole := d >= time.Minute
	if h := d / time.Hour; h > 0 {
		fmt.Fprintf(&b, "%dH", h)
		d -= h * time.Hour
	}
	if m := d / time.Minute; m > 0 {
		fmt.Fprintf(&b, "%dM", m)
		d -= m * time.Minute
	}
	if d > 0 || !whole {
		b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
		b.WriteByte('S')
	}
	return Literal{Lexical: b.String(), Datatype: XSDDuration}
}

// ParseTime decodes an xsd:date or xsd:dateTime literal. Values without an
// offset are read in defaultLoc (UTC when nil).
func ParseTime(l Literal, defaultLoc *time.Location) (time.Time, error) {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	lexical := strings.Trim(l.Lexical, " \t\n\r")
	var (
		t   time.Time
		err error
	)
	switch l.Datatype {
	case XSDDateTime:
		if hasOffset(lexical, len(xsdDateTimeLayout)) {
			t, err = time.Parse(xsdDateTimeZonedLayout, lexical)
		} else {
			t, err = time.ParseInLocation(xsdDateTimeLayout, lexical, defaultLoc)
		}
	case XSDDate:
		if hasOffset(lexical, len(xsdDateLayout)) {
			t, err = time.Parse(xsdDateZonedLayout, lexical)
		} else {
			t, err = time.ParseInLocation(xsdDateLayout, lexical, defaultLoc)
		}
	default:
		return time.Time{}, fmt.Errorf("%w: %s is not an xsd:date or xsd:dateTime", ErrInvalidLiteral, l)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrInvalidLiteral, l, err)
	}
	return t, nil
}

// hasOffset reports whether a timezone follows the fixed-width prefix.
func hasOffset(lexical string, prefix int) bool {
	if len(lexical) <= prefix {
		return false
	}
	return strings.HasSuffix(lexical, "Z") || strings.ContainsAny(lexical[prefix:], "+-")
}
