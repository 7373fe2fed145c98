package common

import (
	"testing"
)

func TestParseTicker(t *testing.T) {
	// Ensure default exchange is NSE for these tests
	originalDefault := DefaultExchange
	DefaultExchange = "NSE"
	defer func() { DefaultExchange = originalDefault }()

	tests := []struct {
		input        string
		wantExchange string
		wantCode     string
		wantString   string
		wantEODHD    string
	}{
		// Exchange-qualified format with colon separator
		{"NSE:RELIANCE", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},
		{"BSE:TCS", "BSE", "TCS", "BSE:TCS", "TCS.BO"},
		{"NYSE:AAPL", "NYSE", "AAPL", "NYSE:AAPL", "AAPL.US"},
		{"NASDAQ:MSFT", "NASDAQ", "MSFT", "NASDAQ:MSFT", "MSFT.US"},

		// EODHD-style suffix (CODE.SUFFIX)
		{"RELIANCE.NSE", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},
		{"TCS.BO", "BSE", "TCS", "BSE:TCS", "TCS.BO"},
		{"AAPL.US", "NYSE", "AAPL", "NYSE:AAPL", "AAPL.US"},

		// Bare ticker (no exchange - defaults to NSE)
		{"RELIANCE", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},
		{"INFY", "NSE", "INFY", "NSE:INFY", "INFY.NSE"},

		// Case normalization
		{"nse:reliance", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},
		{"reliance", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},

		// Whitespace handling
		{"  NSE:RELIANCE  ", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},
		{"  RELIANCE  ", "NSE", "RELIANCE", "NSE:RELIANCE", "RELIANCE.NSE"},

		// Empty input
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input)

			if result.Exchange != tt.wantExchange {
				t.Errorf("Exchange = %q, want %q", result.Exchange, tt.wantExchange)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", result.String(), tt.wantString)
			}
			if result.EODHDSymbol() != tt.wantEODHD {
				t.Errorf("EODHDSymbol() = %q, want %q", result.EODHDSymbol(), tt.wantEODHD)
			}
		})
	}
}

func TestValidateTicker(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"RELIANCE", true},
		{"NSE:RELIANCE", true},
		{"AAPL.US", true},
		{"ITC", true},
		{"360ONE", true},
		{"", false},
		{"REL IANCE", false},
		{"REL;IANCE", false},
		{"AVERYLONGTICKERCODEOVERTWENTYCHARS", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateTicker(tt.input); got != tt.want {
				t.Errorf("ValidateTicker(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTickerList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		wantErr bool
	}{
		{"two tickers", "RELIANCE,TCS", 2, false},
		{"five tickers", "A,B,C,D,E", 5, false},
		{"whitespace and empties", " RELIANCE , TCS ,", 2, false},
		{"one ticker", "RELIANCE", 0, true},
		{"six tickers", "A,B,C,D,E,F", 0, true},
		{"invalid ticker", "RELIANCE,T CS", 0, true},
		{"empty list", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTickerList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTickerList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && len(got) != tt.wantLen {
				t.Errorf("ParseTickerList(%q) returned %d tickers, want %d", tt.input, len(got), tt.wantLen)
			}
		})
	}
}
