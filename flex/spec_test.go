package flex

import (
	"testing"

	"github.com/merbanan/rtl-433-sub002/decoder"
)

func TestParseBasicFields(t *testing.T) {
	s, err := Parse("my-sensor:OOK_PCM:100:220:1200")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.Name != "my-sensor" {
		t.Errorf("Name = %q, want my-sensor", s.Name)
	}
	if s.Mod != decoder.OOKPCM {
		t.Errorf("Mod = %v, want OOK_PCM", s.Mod)
	}
	if s.Timings.ShortWidth != 100 || s.Timings.LongWidth != 220 || s.Timings.ResetLimit != 1200 {
		t.Errorf("Timings = %+v, unexpected", s.Timings)
	}
}

func TestParseOptionalTimingFields(t *testing.T) {
	s, err := Parse("x:OOK_PPM:100:220:1200:300:20:50")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.Timings.GapLimit != 300 || s.Timings.Tolerance != 20 || s.Timings.SyncWidth != 50 {
		t.Fatalf("Timings = %+v, unexpected", s.Timings)
	}
}

func TestParseRejectsUnknownModulation(t *testing.T) {
	if _, err := Parse("x:NOT_A_MOD:100:220:1200"); err == nil {
		t.Fatalf("expected error for unknown modulation")
	}
}

func TestParseRejectsTooFewFields(t *testing.T) {
	if _, err := Parse("x:OOK_PCM:100:220"); err == nil {
		t.Fatalf("expected error for missing reset limit")
	}
}

func TestParseOptionsInvertCountOnly(t *testing.T) {
	s, err := Parse("x:OOK_PCM:100:220:1200,invert,countonly")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if !s.Invert || !s.CountOnly {
		t.Fatalf("Invert=%v CountOnly=%v, want both true", s.Invert, s.CountOnly)
	}
}

func TestParseCountFilters(t *testing.T) {
	s, err := Parse("x:OOK_PCM:100:220:1200,bits=32,rows>2,repeats<5")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.BitsFilter == nil || s.BitsFilter.Op != CountEQ || s.BitsFilter.Value != 32 {
		t.Fatalf("BitsFilter = %+v", s.BitsFilter)
	}
	if s.RowsFilter == nil || s.RowsFilter.Op != CountGT || s.RowsFilter.Value != 2 {
		t.Fatalf("RowsFilter = %+v", s.RowsFilter)
	}
	if s.RepeatsFilter == nil || s.RepeatsFilter.Op != CountLT || s.RepeatsFilter.Value != 5 {
		t.Fatalf("RepeatsFilter = %+v", s.RepeatsFilter)
	}
}

func TestParseMatchBitspec(t *testing.T) {
	s, err := Parse("x:OOK_PCM:100:220:1200,match={8}0xAB")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if s.MatchBits != 8 {
		t.Fatalf("MatchBits = %d, want 8", s.MatchBits)
	}
	if len(s.Match) != 1 || s.Match[0] != 0xAB {
		t.Fatalf("Match = %x, want ab", s.Match)
	}
}

func TestParseGetRule(t *testing.T) {
	s, err := Parse("x:OOK_PCM:100:220:1200,get=@8:{8}:temperature")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(s.Gets) != 1 {
		t.Fatalf("len(Gets) = %d, want 1", len(s.Gets))
	}
	g := s.Gets[0]
	if g.BitOffset != 8 || g.BitCount != 8 || g.Name != "temperature" {
		t.Fatalf("GetRule = %+v, unexpected", g)
	}
}
