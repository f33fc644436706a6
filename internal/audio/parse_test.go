package audio

import "testing"

func TestParseWpctlVolume(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{"plain", "Volume: 0.65\n", 0.65, false},
		{"muted", "Volume: 0.40 [MUTED]\n", 0.40, false},
		{"over unity clamped", "Volume: 1.25\n", 1.0, false},
		{"garbage", "error: no default sink\n", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWpctlVolume(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestParsePactlVolume(t *testing.T) {
	out := "Volume: front-left: 42000 /  64% / -11.67 dB,   front-right: 42000 /  64% / -11.67 dB\n"
	got, err := parsePactlVolume(out)
	if err != nil {
		t.Fatalf("parsePactlVolume: %v", err)
	}
	if got != 0.64 {
		t.Errorf("got %f, want 0.64", got)
	}

	if _, err := parsePactlVolume("Volume: unknown\n"); err == nil {
		t.Error("expected error for output without a percentage")
	}
}

func TestParsePercent(t *testing.T) {
	got, err := parsePercent(" 73\n")
	if err != nil {
		t.Fatalf("parsePercent: %v", err)
	}
	if got != 0.73 {
		t.Errorf("got %f, want 0.73", got)
	}

	if _, err := parsePercent("missing value"); err == nil {
		t.Error("expected error for non-numeric output")
	}
}
