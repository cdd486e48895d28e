package grade

import "testing"

func TestFromID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		expected string
	}{
		{name: "Fourth grade", id: "11410003", expected: "4t ESO"},
		{name: "Fifth grade", id: "11510082", expected: "5è ESO"},
		{name: "First grade uses the irregular ordinal", id: "11110001", expected: "1r ESO"},
		{name: "Second grade uses the irregular ordinal", id: "11210001", expected: "2n ESO"},
		{name: "Third grade uses the irregular ordinal", id: "11310001", expected: "3r ESO"},
		{name: "Grade outside the table gets the regular ordinal", id: "11710001", expected: "7è ESO"},
		{name: "Too short falls back", id: "11", expected: "4t ESO"},
		{name: "Empty falls back", id: "", expected: "4t ESO"},
		{name: "Non-digit grade falls back", id: "11X10001", expected: "4t ESO"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromID(tc.id); got != tc.expected {
				t.Errorf("FromID(%q) = %q, expected %q", tc.id, got, tc.expected)
			}
		})
	}
}
