package models

import "github.com/google/uuid"

// Platform identifies an ad platform a campaign can target.
type Platform string

const (
	PlatformGoogle    Platform = "google"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformTikTok    Platform = "tiktok"
)

// CampaignConfig holds the campaign-level wizard settings. NamePattern is a
// pattern string; see pkg/pattern.
type CampaignConfig struct {
	NamePattern string   `json:"name_pattern" yaml:"name_pattern"`
	Objective   string   `json:"objective,omitempty" yaml:"objective,omitempty"`
	Budget      float64  `json:"budget,omitempty" yaml:"budget,omitempty"`
	Platform    Platform `json:"platform,omitempty" yaml:"platform,omitempty"`
}

// AdDefinition is one ad template inside an ad group. Headline and
// Description are required patterns; the URL fields are optional patterns.
type AdDefinition struct {
	ID           string `json:"id" yaml:"id"`
	Headline     string `json:"headline" yaml:"headline"`
	Description  string `json:"description" yaml:"description"`
	DisplayURL   string `json:"display_url,omitempty" yaml:"display_url,omitempty"`
	FinalURL     string `json:"final_url,omitempty" yaml:"final_url,omitempty"`
	CallToAction string `json:"call_to_action,omitempty" yaml:"call_to_action,omitempty"`
}

// AdGroupDefinition is one ad group template: a name pattern plus at least
// one ad template. IDs are generated once and stay stable across edits.
type AdGroupDefinition struct {
	ID          string         `json:"id" yaml:"id"`
	NamePattern string         `json:"name_pattern" yaml:"name_pattern"`
	Ads         []AdDefinition `json:"ads" yaml:"ads"`
	Keywords    []string       `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// HierarchyConfig is the canonical multi-ad-group shape (schema v2).
type HierarchyConfig struct {
	AdGroups []AdGroupDefinition `json:"ad_groups" yaml:"ad_groups"`
}

// NewAdDefinition creates an empty ad template with a fresh id.
func NewAdDefinition() AdDefinition {
	return AdDefinition{ID: uuid.NewString()}
}

// NewAdGroupDefinition creates an ad group holding one empty ad, the
// minimum a group is allowed to contain.
func NewAdGroupDefinition() AdGroupDefinition {
	return AdGroupDefinition{
		ID:  uuid.NewString(),
		Ads: []AdDefinition{NewAdDefinition()},
	}
}

// NewHierarchyConfig creates the minimal valid hierarchy: one group, one ad.
func NewHierarchyConfig() HierarchyConfig {
	return HierarchyConfig{AdGroups: []AdGroupDefinition{NewAdGroupDefinition()}}
}

// Clone returns a deep copy. The wizard reducer replaces whole state values
// rather than mutating in place, so edits always start from a copy.
func (h HierarchyConfig) Clone() HierarchyConfig {
	out := HierarchyConfig{AdGroups: make([]AdGroupDefinition, len(h.AdGroups))}
	for i, g := range h.AdGroups {
		cg := g
		cg.Ads = append([]AdDefinition(nil), g.Ads...)
		cg.Keywords = append([]string(nil), g.Keywords...)
		out.AdGroups[i] = cg
	}
	return out
}

// FindAdGroup returns the index of the group with the given id, or -1.
func (h HierarchyConfig) FindAdGroup(id string) int {
	for i, g := range h.AdGroups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// GenerationStats summarizes a completed generation run.
type GenerationStats struct {
	CampaignCount int `json:"campaign_count" yaml:"campaign_count"`
	AdGroupCount  int `json:"ad_group_count" yaml:"ad_group_count"`
	AdCount       int `json:"ad_count" yaml:"ad_count"`
	RowsProcessed int `json:"rows_processed" yaml:"rows_processed"`
	RowsExcluded  int `json:"rows_excluded" yaml:"rows_excluded"`
}

// GeneratedCampaign is the backend's record of one created campaign.
type GeneratedCampaign struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Platform Platform `json:"platform" yaml:"platform"`
	AdGroups int      `json:"ad_groups" yaml:"ad_groups"`
	Ads      int      `json:"ads" yaml:"ads"`
}

// GenerationResult is what the backend returns from a generation request.
type GenerationResult struct {
	Campaigns []GeneratedCampaign `json:"campaigns" yaml:"campaigns"`
	Stats     GenerationStats     `json:"stats" yaml:"stats"`
	Warnings  []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
