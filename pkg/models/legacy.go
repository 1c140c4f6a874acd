package models

import "github.com/google/uuid"

// LegacyCampaignSetup is the flat schema-v1 shape: a single implicit ad
// group carrying exactly one ad mapping. Old session snapshots still use
// it; everything else in the codebase works on HierarchyConfig.
type LegacyCampaignSetup struct {
	CampaignName   string   `json:"campaign_name" yaml:"campaign_name"`
	AdGroupName    string   `json:"ad_group_name" yaml:"ad_group_name"`
	Headline       string   `json:"headline" yaml:"headline"`
	Description    string   `json:"description" yaml:"description"`
	URL            string   `json:"url,omitempty" yaml:"url,omitempty"`
	Keywords       []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	TargetPlatform Platform `json:"target_platform,omitempty" yaml:"target_platform,omitempty"`
}

// UpgradeLegacySetup converts a v1 flat setup into the canonical campaign
// config plus a single-group hierarchy. Fresh ids are generated; the v1
// shape never stored any.
func UpgradeLegacySetup(l LegacyCampaignSetup) (CampaignConfig, HierarchyConfig) {
	campaign := CampaignConfig{
		NamePattern: l.CampaignName,
		Platform:    l.TargetPlatform,
	}
	hierarchy := HierarchyConfig{
		AdGroups: []AdGroupDefinition{{
			ID:          uuid.NewString(),
			NamePattern: l.AdGroupName,
			Keywords:    append([]string(nil), l.Keywords...),
			Ads: []AdDefinition{{
				ID:          uuid.NewString(),
				Headline:    l.Headline,
				Description: l.Description,
				FinalURL:    l.URL,
			}},
		}},
	}
	return campaign, hierarchy
}
