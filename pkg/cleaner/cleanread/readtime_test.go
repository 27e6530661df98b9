package cleanread

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{"  two   words ", 2},
		{"line\nbreaks\tand tabs", 4},
	}

	for _, tt := range tests {
		if got := CountWords(tt.text); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestReadTimeMinutes(t *testing.T) {
	tests := []struct {
		words, wpm, want int
	}{
		{0, 225, 0},
		{1, 225, 1},
		{225, 225, 1},
		{226, 225, 2},
		{450, 225, 2},
		{100, 0, 1},
		{300, 100, 3},
	}

	for _, tt := range tests {
		if got := ReadTimeMinutes(tt.words, tt.wpm); got != tt.want {
			t.Errorf("ReadTimeMinutes(%d, %d) = %d, want %d", tt.words, tt.wpm, got, tt.want)
		}
	}
}

func TestFormatReadTime(t *testing.T) {
	tests := map[int]string{
		-1: "--",
		0:  "--",
		1:  "1 min",
		2:  "2 mins",
		15: "15 mins",
	}

	for minutes, want := range tests {
		if got := FormatReadTime(minutes); got != want {
			t.Errorf("FormatReadTime(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestResult_ReadTimeLabel_Nil(t *testing.T) {
	var r *Result
	if got := r.ReadTimeLabel(); got != NoReadTime {
		t.Errorf("nil ReadTimeLabel() = %q, want %q", got, NoReadTime)
	}
}
