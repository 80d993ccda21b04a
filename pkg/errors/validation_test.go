package errors

import "testing"

func TestValidateCityCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid IATA style", "NYC", false},
		{"valid lowercase", "tyo", false},
		{"valid two letters", "HK", false},
		{"valid four letters", "SHAN", false},
		{"empty", "", true},
		{"too short", "N", true},
		{"too long", "TOKYO", true},
		{"digits", "NY1", true},
		{"control characters", "N\x00C", true},
		{"non-ascii", "TŌK", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCityCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCityCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCity) {
				t.Errorf("expected INVALID_CITY code, got %s", GetCode(err))
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "data/fares.csv", false},
		{"valid absolute", "/tmp/fares.csv", false},
		{"empty", "", true},
		{"null byte", "fares\x00.csv", true},
		{"control character", "fares\n.csv", true},
		{"too long", string(make([]byte, 501)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
