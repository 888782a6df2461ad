package source

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc1123z", "Tue, 12 Mar 2024 10:00:00 +0000", "2024-03-12"},
		{"rfc1123 gmt", "Mon, 01 Jan 2024 09:15:00 GMT", "2024-01-01"},
		{"rfc3339", "2024-05-01T08:30:00Z", "2024-05-01"},
		{"keeps source offset", "Wed, 31 Jan 2024 23:30:00 -0500", "2024-01-31"},
		{"date only", "2023-11-20", "2023-11-20"},
		{"surrounding whitespace", "  2023-11-20  ", "2023-11-20"},
		{"empty", "", NoDate},
		{"blank", "   ", NoDate},
		{"words", "sometime last week", NoDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.input); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
