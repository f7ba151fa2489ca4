package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestParseBool(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{in: "yes", want: true},
		{in: "Y", want: true},
		{in: "no", want: false},
		{in: "0", want: false},
		{in: "maybe", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseBool(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseBool(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseBool(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfirmYes(t *testing.T) {
	term := &Terminal{Yes: true}
	if !term.Confirm("Delete?") {
		t.Fatalf("Confirm with Yes set should return true")
	}
}

func TestAlert(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	term := &Terminal{Out: nopWriteCloser{&buf}}
	term.Alert("Please enter a title.")
	if strings.TrimSpace(buf.String()) != "Please enter a title." {
		t.Fatalf("Alert() wrote %q", buf.String())
	}
}

func TestValidators(t *testing.T) {
	if err := required("need it")(" "); err == nil || err.Error() != "need it" {
		t.Fatalf("required() = %v", err)
	}
	if err := validDate(""); err != nil {
		t.Fatalf("empty date should be valid: %v", err)
	}
	if err := validDate("2024-02-30"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	if err := validDate("2024-02-29"); err != nil {
		t.Fatalf("leap day rejected: %v", err)
	}
}
