package ingestion

import "testing"

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"100", 100, true},
		{" 100 ", 100, true},
		{"100,5", 100, true},
		{"100.9", 100, true},
		{"0", 0, true},
		{"-5", -5, true},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseQuantity(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseQuantity(%q) = %d,%v want %d,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNormalize_AggregationAndOrder(t *testing.T) {
	table := &Table{
		Headers: []string{"Ativo", "Quantidade"},
		Records: [][]string{
			{"vale3", "50"},
			{"PETR4", "100"},
			{"VALE3", "25"},
			{"", "10"},
		},
	}
	rows, skipped := Normalize(table)
	if skipped != 1 {
		t.Fatalf("want 1 skipped got %d", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows got %d", len(rows))
	}
	// First appearance order is preserved, quantities are summed.
	if rows[0].Asset != "VALE3" || rows[0].Quantity != 75 {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	if rows[1].Asset != "PETR4" || rows[1].Quantity != 100 {
		t.Fatalf("unexpected second row %+v", rows[1])
	}
}
