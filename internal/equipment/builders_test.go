package equipment

import (
	"testing"

	"github.com/nightsky-studio/zzzcalc/internal/stats"
)

func TestAgentBuilderRequiresAllFields(t *testing.T) {
	b := NewAgentBuilder().Id(1).Name("Anby")
	if b.IsBuilt() {
		t.Fatal("expected builder to be incomplete")
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected BuilderIncomplete error")
	}
}

func TestAgentBuilderBuildsOnceAllFieldsSet(t *testing.T) {
	b := NewAgentBuilder().
		Id(1).Name("Anby").
		Speciality(stats.Stun).
		Element(stats.Electric).
		Rarity(stats.RarityS)

	if !b.IsBuilt() {
		t.Fatal("expected builder to report built")
	}
	agent, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agent.Name != "Anby" || agent.Element != stats.Electric {
		t.Fatalf("unexpected agent: %+v", agent)
	}
}

func TestAgentBuilderSecondBuildFails(t *testing.T) {
	b := NewAgentBuilder().Id(1).Name("Anby").Speciality(stats.Stun).Element(stats.Electric).Rarity(stats.RarityS)
	if _, err := b.Build(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail, builders are single-use")
	}
}

func TestAgentAbilityLookupMissingIsMissingKey(t *testing.T) {
	agent := &Agent{Abilities: map[string]Ability{}}
	if _, err := agent.Ability("nonexistent"); err == nil {
		t.Fatal("expected MissingKey error")
	}
}

func TestDiscPieceBuilderRejectsMainStatMismatchedSlot(t *testing.T) {
	b := NewDiscPieceBuilder().DiscId(1).InSlot(Slot1).Rarity(stats.RarityA).
		MainStat(stats.AtkFlat, stats.Universal) // slot 1 forces HpFlat

	if b.IsBuilt() {
		t.Fatal("expected builder to reject mismatched main stat")
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("expected DomainViolation error")
	}
}

func TestDiscPieceBuilderRequiresMinimumSubStats(t *testing.T) {
	b := NewDiscPieceBuilder().DiscId(1).InSlot(Slot2).Rarity(stats.RarityS).
		MainStat(stats.AtkFlat, stats.Universal).
		AddSubStat(stats.CritRate, stats.Universal, 0).
		AddSubStat(stats.CritDmg, stats.Universal, 0)

	// S rarity requires index 2 + 1 = 3 sub-stats; only 2 supplied.
	if b.IsBuilt() {
		t.Fatal("expected builder to require at least 3 sub-stats for S rarity")
	}
}

func TestDiscPieceBuilderRejectsSubStatReusingMainStatId(t *testing.T) {
	b := NewDiscPieceBuilder().DiscId(1).InSlot(Slot2).Rarity(stats.RarityB).
		MainStat(stats.AtkFlat, stats.Universal).
		AddSubStat(stats.AtkFlat, stats.Universal, 0). // reuses main id, must be dropped
		AddSubStat(stats.CritRate, stats.Universal, 0).
		AddSubStat(stats.CritDmg, stats.Universal, 0)

	piece, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range piece.SubStats {
		if s.Qualifier.Id == stats.AtkFlat {
			t.Fatal("sub-stats must never reuse the main-stat id")
		}
	}
}

func TestDiscSetBuilderRequiresIdAndName(t *testing.T) {
	b := NewDiscSetBuilder()
	if _, err := b.Build(); err == nil {
		t.Fatal("expected BuilderIncomplete error")
	}
	b.Id(7).Name("Inferno Metal")
	set, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Id != 7 || set.Name != "Inferno Metal" {
		t.Fatalf("unexpected disc set: %+v", set)
	}
}

func TestValidMainStatTable(t *testing.T) {
	if !ValidMainStat(Slot1, stats.HpFlat) {
		t.Fatal("slot 1 must allow HpFlat")
	}
	if ValidMainStat(Slot1, stats.AtkFlat) {
		t.Fatal("slot 1 must not allow AtkFlat")
	}
	if !ValidMainStat(Slot4, stats.CritRate) {
		t.Fatal("slot 4 must allow CritRate")
	}
	if ValidMainStat(Slot4, stats.EtherRatio) {
		t.Fatal("slot 4 must not allow an elemental ratio")
	}
}
