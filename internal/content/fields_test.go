package content

import (
	"testing"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{"plain", "10", 10, true},
		{"padded", "  42 ", 42, true},
		{"trailing text", "12 personas", 12, true},
		{"decimal truncates", "4.7", 4, true},
		{"negative", "-3", -3, true},
		{"zero", "0", 0, true},
		{"empty", "", 0, false},
		{"letters", "diez", 0, false},
		{"sign only", "-", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseInt(%q) = %d, %v, want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"4.5", 4.5, true},
		{"3", 3, true},
		{"5.", 5, true},
		{".5", 0.5, true},
		{"4,5", 4, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseFloat(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseFloat(%q) = %v, %v, want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestChecked(t *testing.T) {
	f := Fields{"a": "on", "b": "true", "c": "false", "d": "", "e": "1"}
	want := map[string]bool{"a": true, "b": true, "c": false, "d": false, "e": true, "missing": false}
	for key, w := range want {
		if got := Checked(f, key); got != w {
			t.Errorf("Checked(%q) = %v, want %v", key, got, w)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" senderismo, ,aves ,  cultura")
	want := []string{"senderismo", "aves", "cultura"}
	if len(got) != len(want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Cómbita", "combita"},
		{"JARDÍN", "jardin"},
		{"Boyacá", "boyaca"},
		{"ñandú", "nandu"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLongDateES(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-10-15T12:00:00Z", "15 de octubre de 2026"},
		{"2025-01-03T00:00:00Z", "3 de enero de 2025"},
		{"2024-12-31T23:00:00Z", "31 de diciembre de 2024"},
	}
	for _, tt := range tests {
		ts := ParseTimestamp(tt.in)
		if got := LongDateES(ts); got != tt.want {
			t.Errorf("LongDateES(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
