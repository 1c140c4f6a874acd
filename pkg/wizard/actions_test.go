package wizard

import (
	"testing"

	"github.com/adforge/adforge-cli/pkg/models"
)

func TestReduceSelectDataSourceClearsSnapshot(t *testing.T) {
	s := NewState()
	s = Reduce(s, SelectDataSource{ID: "ds-1", Name: "products"})
	s = Reduce(s, SetColumns{Columns: []models.Column{{Name: "brand", Type: models.ColumnTypeString}}})
	s = Reduce(s, SetSampleRows{Rows: []models.DataRow{{"brand": "Nike"}}})

	s = Reduce(s, SelectDataSource{ID: "ds-2", Name: "feeds"})
	if s.Columns != nil || s.SampleRows != nil {
		t.Error("selecting a different source should clear columns and rows")
	}

	s = Reduce(s, SetColumns{Columns: []models.Column{{Name: "sku"}}})
	s = Reduce(s, SelectDataSource{ID: "ds-2", Name: "feeds"})
	if len(s.Columns) != 1 {
		t.Error("re-selecting the same source should keep the snapshot")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	s := NewState()
	s = Reduce(s, SetCampaignName{Pattern: "{brand}"})

	before := s.Campaign.NamePattern
	groupID := s.Hierarchy.AdGroups[0].ID
	_ = Reduce(s, SetAdGroupName{GroupID: groupID, Pattern: "changed"})
	_ = Reduce(s, SetCampaignName{Pattern: "changed"})

	if s.Campaign.NamePattern != before {
		t.Error("input state campaign pattern mutated")
	}
	if s.Hierarchy.AdGroups[0].NamePattern != "" {
		t.Error("input state hierarchy mutated")
	}
}

func TestReduceAdGroupLifecycle(t *testing.T) {
	s := NewState()
	if len(s.Hierarchy.AdGroups) != 1 {
		t.Fatalf("initial state has %d ad groups, want 1", len(s.Hierarchy.AdGroups))
	}
	firstID := s.Hierarchy.AdGroups[0].ID

	// Removing the only group is disallowed.
	s = Reduce(s, RemoveAdGroup{GroupID: firstID})
	if len(s.Hierarchy.AdGroups) != 1 {
		t.Error("removing the last remaining ad group must be a no-op")
	}

	s = Reduce(s, AddAdGroup{})
	if len(s.Hierarchy.AdGroups) != 2 {
		t.Fatalf("AddAdGroup: got %d groups, want 2", len(s.Hierarchy.AdGroups))
	}

	s = Reduce(s, RemoveAdGroup{GroupID: firstID})
	if len(s.Hierarchy.AdGroups) != 1 || s.Hierarchy.AdGroups[0].ID == firstID {
		t.Error("RemoveAdGroup should drop the named group once another exists")
	}
}

func TestReduceAdLifecycle(t *testing.T) {
	s := NewState()
	groupID := s.Hierarchy.AdGroups[0].ID
	adID := s.Hierarchy.AdGroups[0].Ads[0].ID

	// Removing the only ad in a group is disallowed.
	s = Reduce(s, RemoveAd{GroupID: groupID, AdID: adID})
	if len(s.Hierarchy.AdGroups[0].Ads) != 1 {
		t.Error("removing the last ad in a group must be a no-op")
	}

	s = Reduce(s, AddAd{GroupID: groupID})
	if len(s.Hierarchy.AdGroups[0].Ads) != 2 {
		t.Fatalf("AddAd: got %d ads, want 2", len(s.Hierarchy.AdGroups[0].Ads))
	}

	s = Reduce(s, UpdateAd{GroupID: groupID, Ad: models.AdDefinition{
		ID:       adID,
		Headline: "Buy {product}",
	}})
	if s.Hierarchy.AdGroups[0].Ads[0].Headline != "Buy {product}" {
		t.Error("UpdateAd did not apply")
	}

	s = Reduce(s, RemoveAd{GroupID: groupID, AdID: adID})
	if len(s.Hierarchy.AdGroups[0].Ads) != 1 || s.Hierarchy.AdGroups[0].Ads[0].ID == adID {
		t.Error("RemoveAd should drop the named ad once another exists")
	}
}

func TestReduceToggles(t *testing.T) {
	s := NewState()

	s = Reduce(s, TogglePlatform{Platform: models.PlatformGoogle})
	if !s.PlatformSelected(models.PlatformGoogle) {
		t.Error("platform should be selected after first toggle")
	}
	s = Reduce(s, SetPlatformBudget{Platform: models.PlatformGoogle, Amount: 100})
	s = Reduce(s, TogglePlatform{Platform: models.PlatformGoogle})
	if s.PlatformSelected(models.PlatformGoogle) {
		t.Error("platform should be deselected after second toggle")
	}
	if _, ok := s.Budgets[models.PlatformGoogle]; ok {
		t.Error("deselecting a platform should drop its budget")
	}

	s = Reduce(s, ToggleRule{RuleID: "r1"})
	s = Reduce(s, ToggleRule{RuleID: "r2"})
	s = Reduce(s, ToggleRule{RuleID: "r1"})
	if s.RuleSelected("r1") || !s.RuleSelected("r2") {
		t.Errorf("rule toggling wrong: selected=%v", s.SelectedRules)
	}
}

func TestReduceReset(t *testing.T) {
	s := NewState()
	s = Reduce(s, SelectDataSource{ID: "ds-1"})
	s = Reduce(s, SetCampaignName{Pattern: "{brand}"})
	s = Reduce(s, SetStep{Step: StepPlatform})

	s = Reduce(s, Reset{})
	if s.Step != StepDataSource || s.DataSourceID != "" || s.Campaign.NamePattern != "" {
		t.Errorf("Reset left residue: %+v", s)
	}
}

func TestStepNavigation(t *testing.T) {
	if NextStep(StepDataSource) != StepCampaign {
		t.Error("NextStep(data-source) != campaign-config")
	}
	if NextStep(StepReview) != StepReview {
		t.Error("NextStep at end should stay put")
	}
	if PrevStep(StepCampaign) != StepDataSource {
		t.Error("PrevStep(campaign-config) != data-source")
	}
	if PrevStep(StepDataSource) != StepDataSource {
		t.Error("PrevStep at start should stay put")
	}
}
