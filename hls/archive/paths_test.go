package archive

import (
	"testing"
	"time"

	"github.com/example/go-hls/hls"
)

func TestLinkPath(t *testing.T) {
	date := time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)
	want := "links/HLSS30_2.0/2025/10/2025-10-03.json"
	if got := LinkPath(hls.CollectionS30, date); got != want {
		t.Fatalf("LinkPath = %q, want %q", got, want)
	}

	// Single-digit months and days are zero-padded.
	date = time.Date(2024, time.February, 9, 12, 30, 0, 0, time.UTC)
	want = "links/HLSL30_2.0/2024/02/2024-02-09.json"
	if got := LinkPath(hls.CollectionL30, date); got != want {
		t.Fatalf("LinkPath = %q, want %q", got, want)
	}
}

func TestLinkPrefix(t *testing.T) {
	want := "links/HLSS30_2.0/2025/03"
	if got := LinkPrefix(hls.CollectionS30, 2025, 3); got != want {
		t.Fatalf("LinkPrefix = %q, want %q", got, want)
	}
}

func TestArchivePath(t *testing.T) {
	want := "v1/HLSL30_2.0/year=2025/month=03/HLSL30_2.0-2025-03.parquet"
	if got := ArchivePath("v1", hls.CollectionL30, 2025, 3); got != want {
		t.Fatalf("ArchivePath = %q, want %q", got, want)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"20251001", "2025-10-01"} {
		got, err := ParseDate(input)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", input, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %s, want %s", input, got, want)
		}
	}
	for _, bad := range []string{"", "2025/10/01", "20251301", "october"} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("ParseDate(%q): expected error", bad)
		}
	}
}

func TestParseMonth(t *testing.T) {
	for _, input := range []string{"202510", "2025-10"} {
		year, month, err := ParseMonth(input)
		if err != nil {
			t.Fatalf("ParseMonth(%q): %v", input, err)
		}
		if year != 2025 || month != 10 {
			t.Fatalf("ParseMonth(%q) = %d-%d", input, year, month)
		}
	}
	for _, bad := range []string{"", "2025", "202513", "2025/10"} {
		if _, _, err := ParseMonth(bad); err == nil {
			t.Fatalf("ParseMonth(%q): expected error", bad)
		}
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := map[[2]int]int{
		{2025, 10}: 31,
		{2025, 11}: 30,
		{2025, 2}:  28,
		{2024, 2}:  29,
		{2025, 12}: 31,
	}
	for ym, want := range cases {
		if got := lastDayOfMonth(ym[0], ym[1]); got != want {
			t.Fatalf("lastDayOfMonth(%d, %d) = %d, want %d", ym[0], ym[1], got, want)
		}
	}
}
