package naming_test

import (
	"testing"

	"better/internal/naming"
)

var vocabulary = []string{
	"flac", "flac 24bit", "flac 16-44", "24-96", "16-44",
	"alac", "320", "256", "v0", "v1", "v2", "256 vbr",
}

func newPolicy(t *testing.T, prefixes ...string) *naming.Policy {
	t.Helper()
	policy, err := naming.New(vocabulary, prefixes)
	if err != nil {
		t.Fatalf("naming.New: %v", err)
	}
	return policy
}

func TestDestinationName(t *testing.T) {
	policy := newPolicy(t, "FL ", "UL ", "FL")

	cases := []struct {
		name   string
		source string
		codec  string
		want   string
	}{
		{"replaces tag", "/music/Artist - Album (2001) [FLAC]", "320", "Artist - Album (2001) [320]"},
		{"case-insensitive tag", "/music/Artist - Album [Flac 24bit]", "v0", "Artist - Album [V0]"},
		{"appends when untagged", "/music/Artist - Album  ", "v0", "Artist - Album [V0]"},
		{"unknown bracket kept", "/music/Artist - Album [Deluxe]", "alac", "Artist - Album [Deluxe] [ALAC]"},
		{"tag in parent ignored", "/music/[FLAC]/Artist - Album", "320", "Artist - Album [320]"},
		{"retags lossy tag", "/music/Artist - Album [V2]", "320", "Artist - Album [320]"},
		{"collapses multiple tags", "/music/Artist - Album [FLAC] [24-96]", "320", "Artist - Album [320]"},
		{"tag in middle", "/music/Artist - Album [FLAC] (Remaster)", "v0", "Artist - Album [V0] (Remaster)"},
		{"first prefix only", "/music/FL Artist - Album [FLAC]", "320", "Artist - Album [320]"},
		{"relative source", "Album [16-44]", "v1", "Album [V1]"},
		{"backslash is part of the name", `/music/Live \ Studio [FLAC]`, "320", `Live \ Studio [320]`},
		{"tag before backslash still qualifies", `/music/Album [FLAC]\bonus`, "v0", `Album [V0]\bonus`},
		{"partial tag not matched", "/music/Album [FLAC 24bit remaster]", "v0", "Album [FLAC 24bit remaster] [V0]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.DestinationName(tc.source, tc.codec); got != tc.want {
				t.Fatalf("DestinationName(%q, %q) = %q, want %q", tc.source, tc.codec, got, tc.want)
			}
		})
	}
}

func TestDestinationNameIsDeterministicAndIdempotentPerCodec(t *testing.T) {
	policy := newPolicy(t)
	source := "/music/Artist - Album [FLAC]"
	first := policy.DestinationName(source, "320")
	for i := 0; i < 10; i++ {
		if got := policy.DestinationName(source, "320"); got != first {
			t.Fatalf("non-deterministic result %q vs %q", got, first)
		}
	}
	// Re-tagging an already transcoded name swaps the tag instead of stacking.
	if got := policy.DestinationName("/out/"+first, "v0"); got != "Artist - Album [V0]" {
		t.Fatalf("unexpected re-tag result %q", got)
	}
}

func TestOnlyOnePrefixStripped(t *testing.T) {
	policy := newPolicy(t, "UL ", "FL ")
	if got := policy.DestinationName("/music/UL FL Album [FLAC]", "v0"); got != "FL Album [V0]" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestHasCodecTag(t *testing.T) {
	policy := newPolicy(t)
	if !policy.HasCodecTag("/a/Album [ALAC]") {
		t.Fatal("expected tag to be detected")
	}
	if policy.HasCodecTag("/a/[ALAC]/Album") {
		t.Fatal("tag in a parent directory should not count")
	}
}

func TestNewRequiresVocabulary(t *testing.T) {
	if _, err := naming.New([]string{" ", ""}, nil); err == nil {
		t.Fatal("expected error for empty vocabulary")
	}
}
