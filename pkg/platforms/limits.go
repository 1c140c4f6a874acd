// Package platforms holds the static per-platform character limits the
// preview side panel checks interpolated text against.
package platforms

import "github.com/adforge/adforge-cli/pkg/models"

// Limits is the set of character limits one platform enforces.
type Limits struct {
	CampaignName int
	AdGroupName  int
	Headline     int
	Description  int
}

var limitsByPlatform = map[models.Platform]Limits{
	models.PlatformGoogle:    {CampaignName: 255, AdGroupName: 255, Headline: 30, Description: 90},
	models.PlatformFacebook:  {CampaignName: 400, AdGroupName: 400, Headline: 40, Description: 125},
	models.PlatformInstagram: {CampaignName: 400, AdGroupName: 400, Headline: 40, Description: 125},
	models.PlatformLinkedIn:  {CampaignName: 255, AdGroupName: 255, Headline: 70, Description: 150},
	models.PlatformTwitter:   {CampaignName: 255, AdGroupName: 255, Headline: 70, Description: 280},
	models.PlatformTikTok:    {CampaignName: 512, AdGroupName: 512, Headline: 100, Description: 100},
}

// For returns the limits for a platform. ok is false for unknown platforms.
func For(p models.Platform) (Limits, bool) {
	l, ok := limitsByPlatform[p]
	return l, ok
}

// All returns every known platform, in a fixed display order.
func All() []models.Platform {
	return []models.Platform{
		models.PlatformGoogle,
		models.PlatformFacebook,
		models.PlatformInstagram,
		models.PlatformLinkedIn,
		models.PlatformTwitter,
		models.PlatformTikTok,
	}
}

// CheckText reports whether text fits within limit, and by how many
// characters it overflows when it does not. Limits are counted in runes,
// matching how ad platforms count user-visible characters.
func CheckText(text string, limit int) (ok bool, overflow int) {
	n := len([]rune(text))
	if n <= limit {
		return true, 0
	}
	return false, n - limit
}
