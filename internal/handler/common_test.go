package handler

import "testing"

func TestPaginateDefaults(t *testing.T) {
	page, perPage := paginate("", "")
	if page != 1 || perPage != 50 {
		t.Errorf("paginate(\"\", \"\") = (%d, %d), want (1, 50)", page, perPage)
	}
}

func TestPaginateValues(t *testing.T) {
	page, perPage := paginate("3", "10")
	if page != 3 || perPage != 10 {
		t.Errorf("paginate(3, 10) = (%d, %d), want (3, 10)", page, perPage)
	}
}

func TestPaginateRejectsBadInput(t *testing.T) {
	tests := []struct {
		page, perPage string
	}{
		{"0", "0"},
		{"-1", "-5"},
		{"abc", "xyz"},
		{"1.5", "2.5"},
	}
	for _, tt := range tests {
		page, perPage := paginate(tt.page, tt.perPage)
		if page != 1 || perPage != 50 {
			t.Errorf("paginate(%q, %q) = (%d, %d), want defaults (1, 50)", tt.page, tt.perPage, page, perPage)
		}
	}
}
