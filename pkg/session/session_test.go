package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return NewStore(t.TempDir(), log)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	s := wizard.NewState()
	s = wizard.Reduce(s, wizard.SelectDataSource{ID: "ds-1", Name: "products"})
	s = wizard.Reduce(s, wizard.SetCampaignName{Pattern: "{brand}-performance"})
	s = wizard.Reduce(s, wizard.TogglePlatform{Platform: models.PlatformGoogle})
	s = wizard.Reduce(s, wizard.SetStep{Step: wizard.StepHierarchy})

	if err := store.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataSourceID != "ds-1" || loaded.Campaign.NamePattern != "{brand}-performance" {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if loaded.Step != wizard.StepHierarchy {
		t.Errorf("Step = %s, want hierarchy", loaded.Step)
	}
	if !loaded.PlatformSelected(models.PlatformGoogle) {
		t.Error("platform selection lost in round trip")
	}
}

func TestLoadMissingSnapshot(t *testing.T) {
	store := testStore(t)
	if _, err := store.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Load on empty dir = %v, want ErrNoSnapshot", err)
	}
}

func TestLoadUpgradesLegacySnapshot(t *testing.T) {
	store := testStore(t)

	legacy := `version: 1
legacy:
  campaign_name: "{brand} sale"
  ad_group_name: "{product}"
  headline: "Buy {product}"
  description: "From {brand}"
  url: "https://shop.example/{product}"
  target_platform: "google"
`
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Campaign.NamePattern != "{brand} sale" {
		t.Errorf("campaign pattern = %q", s.Campaign.NamePattern)
	}
	if len(s.Hierarchy.AdGroups) != 1 {
		t.Fatalf("got %d ad groups, want 1", len(s.Hierarchy.AdGroups))
	}
	g := s.Hierarchy.AdGroups[0]
	if g.NamePattern != "{product}" || len(g.Ads) != 1 {
		t.Errorf("upgraded group wrong: %+v", g)
	}
	if g.Ads[0].Headline != "Buy {product}" || g.Ads[0].FinalURL != "https://shop.example/{product}" {
		t.Errorf("upgraded ad wrong: %+v", g.Ads[0])
	}
	if g.ID == "" || g.Ads[0].ID == "" {
		t.Error("upgrade should mint ids")
	}
	if !s.PlatformSelected(models.PlatformGoogle) {
		t.Error("legacy target platform should carry over")
	}
}

func TestLoadRejectsUnknownVersion(t *testing.T) {
	store := testStore(t)
	if err := os.MkdirAll(filepath.Dir(store.Path()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("version: 99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("unknown version should fail to load")
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)
	if err := store.Clear(); err != nil {
		t.Errorf("Clear on missing snapshot should be fine: %v", err)
	}
	if err := store.Save(wizard.NewState()); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Error("snapshot should be gone after Clear")
	}
}

func TestWriterDebounces(t *testing.T) {
	store := testStore(t)
	w := NewWriter(store, 30*time.Millisecond)

	s := wizard.NewState()
	s = wizard.Reduce(s, wizard.SelectDataSource{ID: "ds-first"})
	w.Update(s)
	s = wizard.Reduce(s, wizard.SelectDataSource{ID: "ds-last"})
	w.Update(s)

	// Before the window closes nothing should be on disk.
	if _, err := store.Load(); !errors.Is(err, ErrNoSnapshot) {
		t.Error("write landed before debounce window closed")
	}

	time.Sleep(100 * time.Millisecond)

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataSourceID != "ds-last" {
		t.Errorf("DataSourceID = %q, want the latest update to win", loaded.DataSourceID)
	}
}

func TestWriterFlush(t *testing.T) {
	store := testStore(t)
	w := NewWriter(store, time.Hour)

	s := wizard.Reduce(wizard.NewState(), wizard.SelectDataSource{ID: "ds-1"})
	w.Update(s)
	w.Flush()

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load after Flush failed: %v", err)
	}
	if loaded.DataSourceID != "ds-1" {
		t.Errorf("DataSourceID = %q, want ds-1", loaded.DataSourceID)
	}
}
