package checkout

import "testing"

func TestEffectivePriceCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		priceCents  int64
		discountPct int
		want        int64
	}{
		{
			name:        "no_discount_passes_through",
			priceCents:  1999,
			discountPct: 0,
			want:        1999,
		},
		{
			name:        "quarter_off_19_99_rounds_half_up",
			priceCents:  1999, // 19.99 * 0.75 = 14.9925 -> 14.99
			discountPct: 25,
			want:        1499,
		},
		{
			name:        "half_cent_rounds_up",
			priceCents:  1990, // 19.90 * 0.75 = 14.925 -> 14.93
			discountPct: 25,
			want:        1493,
		},
		{
			name:        "half_off_even_price",
			priceCents:  4000,
			discountPct: 50,
			want:        2000,
		},
		{
			name:        "ten_percent_off",
			priceCents:  2499, // 24.99 * 0.90 = 22.491 -> 22.49
			discountPct: 10,
			want:        2249,
		},
		{
			name:        "full_discount_is_free",
			priceCents:  5999,
			discountPct: 100,
			want:        0,
		},
		{
			name:        "zero_price_stays_zero",
			priceCents:  0,
			discountPct: 30,
			want:        0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := EffectivePriceCents(tt.priceCents, tt.discountPct)
			if got != tt.want {
				t.Fatalf("effective price mismatch: want %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDedupPreservesFirstOccurrence(t *testing.T) {
	t.Parallel()

	got := dedup([]int64{3, 1, 3, 2, 1})
	want := []int64{3, 1, 2}

	if len(got) != len(want) {
		t.Fatalf("dedup length mismatch: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("dedup order mismatch at %d: want %v, got %v", i, want, got)
		}
	}
}
