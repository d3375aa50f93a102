package money

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input string
		want  int64
		err   error
	}{
		{input: "1.5", want: 15000},
		{input: "0", want: 0},
		{input: "2", want: 20000},
		{input: "1.017", want: 10170},
		{input: "0.0001", want: 1},
		{input: "12345.6789", want: 123456789},
		{input: "", err: ErrInvalidAmount},
		{input: "abc", err: ErrInvalidAmount},
		{input: "1.2.3", err: ErrInvalidAmount},
		{input: "-1.5", err: ErrNegativeAmount},
		{input: "0.00001", err: ErrTooManyDecimals},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.input)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("ParseAmount(%q): got err %v, want %v", tc.input, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestFormatMinor(t *testing.T) {
	cases := []struct {
		value int64
		want  string
	}{
		{value: 15000, want: "1.5000"},
		{value: 0, want: "0.0000"},
		{value: 10170, want: "1.0170"},
		{value: 1, want: "0.0001"},
		{value: -30000, want: "-3.0000"},
		{value: -1, want: "-0.0001"},
	}
	for _, tc := range cases {
		if got := FormatMinor(tc.value); got != tc.want {
			t.Errorf("FormatMinor(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
