package calculator

import "testing"

func TestUtilityShare(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		percentage string
		want       string
	}{
		{name: "quarter", total: "100", percentage: "25", want: "25"},
		{name: "three quarters", total: "100", percentage: "75", want: "75"},
		{name: "rounds half up", total: "10.01", percentage: "50", want: "5.01"},
		{name: "rounds to nearest cent", total: "33.33", percentage: "30", want: "10"},
		{name: "third of a hundred", total: "100", percentage: "33.333", want: "33.33"},
		{name: "zero percentage", total: "180.40", percentage: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UtilityShare(dec(tt.total), dec(tt.percentage))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("UtilityShare(%s, %s) = %s, want %s", tt.total, tt.percentage, got, tt.want)
			}
		})
	}
}
