package booking

import "testing"

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"noon", "12:00 PM", true},
		{"midnight", "12:00 AM", true},
		{"breakfast", "9:00 AM", true},
		{"brunch", "11:00 AM", true},
		{"lunch", "1:00 PM", true},
		{"dinner", "7:00 PM", true},
		{"morning", "10:00 AM", true},
		{"afternoon", "2:00 PM", true},
		{"evening", "7:00 PM", true},
		{"tonight", "8:00 PM", true},
		{"7pm", "7:00 PM", true},
		{"7 am", "7:00 AM", true},
		{"7:30", "7:30 PM", true},
		{"7:30 am", "7:30 AM", true},
		{"4:15", "4:15 AM", true},
		{"12 pm", "12:00 PM", true},
		{"12 am", "12:00 AM", true},
		{"19:00", "7:00 PM", true},
		{"6 o'clock", "6:00 PM", true},
		{"11 oclock am", "11:00 AM", true},
		{"25:00", "", false},
		{"7:75 pm", "", false},
		{"13 pm", "", false},
		{"soon", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeTime(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeTime(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseGuests(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"4", 4},
		{"12", 12},
		{"two", 2},
		{"Twelve", 12},
		{"dozen", 12},
		{"couple", 2},
		{"a few", 3},
		{"several", 4},
		{"0", DefaultGuests},
		{"lots", DefaultGuests},
		{"", DefaultGuests},
	}
	for _, tt := range tests {
		if got := ParseGuests(tt.raw); got != tt.want {
			t.Errorf("ParseGuests(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestTablesFor(t *testing.T) {
	tests := []struct{ guests, want int }{
		{1, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3}, {0, 0},
	}
	for _, tt := range tests {
		if got := TablesFor(tt.guests, 4); got != tt.want {
			t.Errorf("TablesFor(%d) = %d, want %d", tt.guests, got, tt.want)
		}
	}
}

func TestClockMinutes(t *testing.T) {
	if m, ok := ClockMinutes("7:30 PM"); !ok || m != 19*60+30 {
		t.Errorf("ClockMinutes(7:30 PM) = %d, %v", m, ok)
	}
	if m, ok := ClockMinutes("12:00 am"); !ok || m != 0 {
		t.Errorf("ClockMinutes(12:00 am) = %d, %v", m, ok)
	}
	if _, ok := ClockMinutes("later"); ok {
		t.Error("ClockMinutes(later) should fail")
	}
}
