package main

import "testing"

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		in      string
		want    colorMode
		wantErr bool
	}{
		{in: "", want: colorModeAuto},
		{in: "auto", want: colorModeAuto},
		{in: "on", want: colorModeOn},
		{in: "always", want: colorModeOn},
		{in: "off", want: colorModeOff},
		{in: "never", want: colorModeOff},
		{in: " ON ", want: colorModeOn},
		{in: "rainbow", wantErr: true},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readColorMode(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("readColorMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readColorMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{in: "", want: uiModeAuto},
		{in: "auto", want: uiModeAuto},
		{in: "on", want: uiModeOn},
		{in: "off", want: uiModeOff},
		{in: "Auto", want: uiModeAuto},
		{in: "tui", wantErr: true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
