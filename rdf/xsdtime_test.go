package rdf

import (
	"errors"
	"testing"
	"time"
)

func TestTimeLiteral(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	cases := []struct {
		millis int64
		loc    *time.Location
		want   string
	}{
		{1583064000000, nil, "2020-03-01T12:00:00Z"},
		{1585738800042, time.UTC, "2020-04-01T11:00:00.042Z"},
		{1585738800042, london, "2020-04-01T12:00:00.042+01:00"},
	}
	for _, tc := range cases {
		lit := TimeLiteral(time.UnixMilli(tc.millis), tc.loc)
		if lit.Lexical != tc.want || lit.Datatype != XSDDateTime {
			t.Fatalf("expected %s, got %v", tc.want, lit)
		}
	}
}

func TestParseTime(t *testing.T) {
	cases := []struct {
		lit  Literal
		want int64
	}{
		{Literal{Lexical: "2020-03-01", Datatype: XSDDate}, 1583020800000},
		{Literal{Lexical: "2020-04-01T13:00:00.000+01:00", Datatype: XSDDateTime}, 1585742400000},
		{Literal{Lexical: " 2020-04-01T12:00:00\n", Datatype: XSDDateTime}, 1585742400000},
		{Literal{Lexical: "2020-04-01T12:00:00Z", Datatype: XSDDateTime}, 1585742400000},
		{Literal{Lexical: "2020-03-01Z", Datatype: XSDDate}, 1583020800000},
	}
	for _, tc := range cases {
		got, err := ParseTime(tc.lit, nil)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", tc.lit, err)
		}
		if got.UnixMilli() != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.lit, tc.want, got.UnixMilli())
		}
	}
}

func TestParseTimeRejectsOtherLiterals(t *testing.T) {
	for _, lit := range []Literal{
		{Lexical: "true", Datatype: XSDBoolean},
		{Lexical: ""},
		{Lexical: "13", Datatype: XSDInteger},
		{Lexical: "yesterday", Datatype: XSDDateTime},
	} {
		if _, err := ParseTime(lit, nil); !errors.Is(err, ErrInvalidLiteral) {
			t.Fatalf("%v: expected ErrInvalidLiteral, got %v", lit, err)
		}
	}
}

func TestTimeLiteralRoundTrip(t *testing.T) {
	in := time.Date(2012, 4, 1, 16, 21, 0, 0, time.FixedZone("", 3600))
	out, err := ParseTime(TimeLiteral(in, nil), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Equal(in) || out.Hour() != 15 {
		t.Fatalf("expected %v in UTC, got %v", in, out)
	}
}

func TestDurationLiteral(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "PT0S"},
		{90 * time.Minute, "PT1H30M"},
		{-1500 * time.Millisecond, "-PT1.5S"},
		{2*time.Hour + 3*time.Second, "PT2H3S"},
	}
	for _, tc := range cases {
		if got := DurationLiteral(tc.d).Lexical; got != tc.want {
			t.Fatalf("%v: expected %s, got %s", tc.d, tc.want, got)
		}
	}
}
