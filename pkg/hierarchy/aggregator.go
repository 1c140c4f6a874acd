// Package hierarchy groups sample rows into the campaign → ad group → ad
// preview tree shown by the wizard.
package hierarchy

import (
	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/pattern"
)

// Ad is one interpolated ad inside the preview tree.
type Ad struct {
	Headline    string
	Description string
}

// AdGroup is one bucket of ads sharing an interpolated group name.
type AdGroup struct {
	Name string
	Ads  []Ad
}

// Campaign is one bucket of ad groups sharing an interpolated campaign name.
type Campaign struct {
	Name     string
	AdGroups []AdGroup
}

// GroupedPreview is the derived preview tree plus its aggregate counts.
// It is recomputed from scratch on every change; nothing here is stored.
type GroupedPreview struct {
	Campaigns     []Campaign
	CampaignCount int
	AdGroupCount  int
	AdCount       int
}

// Aggregate buckets rows by interpolated string value: rows interpolating
// to the same campaign name merge into one campaign, and within a campaign
// the same rule applies to ad group names. Ads accumulate per row: two
// identical rows landing in the same ad group each contribute their own
// ads. Buckets keep first-appearance order so the preview is stable while
// the user types.
func Aggregate(campaignNamePattern string, adGroups []models.AdGroupDefinition, rows []models.DataRow) *GroupedPreview {
	preview := &GroupedPreview{}
	campaignIndex := make(map[string]int)
	groupIndex := make(map[string]map[string]int)

	for _, row := range rows {
		campaignName := pattern.Interpolate(campaignNamePattern, row)

		ci, ok := campaignIndex[campaignName]
		if !ok {
			ci = len(preview.Campaigns)
			campaignIndex[campaignName] = ci
			groupIndex[campaignName] = make(map[string]int)
			preview.Campaigns = append(preview.Campaigns, Campaign{Name: campaignName})
		}

		for _, def := range adGroups {
			groupName := pattern.Interpolate(def.NamePattern, row)

			gi, ok := groupIndex[campaignName][groupName]
			if !ok {
				gi = len(preview.Campaigns[ci].AdGroups)
				groupIndex[campaignName][groupName] = gi
				preview.Campaigns[ci].AdGroups = append(preview.Campaigns[ci].AdGroups, AdGroup{Name: groupName})
			}

			for _, ad := range def.Ads {
				preview.Campaigns[ci].AdGroups[gi].Ads = append(preview.Campaigns[ci].AdGroups[gi].Ads, Ad{
					Headline:    pattern.Interpolate(ad.Headline, row),
					Description: pattern.Interpolate(ad.Description, row),
				})
			}
		}
	}

	preview.CampaignCount = len(preview.Campaigns)
	for _, c := range preview.Campaigns {
		preview.AdGroupCount += len(c.AdGroups)
		for _, g := range c.AdGroups {
			preview.AdCount += len(g.Ads)
		}
	}
	return preview
}

// Stats converts the preview counts into the shared stats shape.
func (p *GroupedPreview) Stats(rowsProcessed, rowsExcluded int) models.GenerationStats {
	return models.GenerationStats{
		CampaignCount: p.CampaignCount,
		AdGroupCount:  p.AdGroupCount,
		AdCount:       p.AdCount,
		RowsProcessed: rowsProcessed,
		RowsExcluded:  rowsExcluded,
	}
}
