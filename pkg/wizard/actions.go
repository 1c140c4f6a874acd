package wizard

import (
	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/rules"
)

// Action is one serializable wizard transition. Every state change goes
// through Reduce with one of the concrete action types below; there is no
// other mutation path.
type Action interface {
	isAction()
}

type SelectDataSource struct {
	ID   string
	Name string
}

type SetColumns struct{ Columns []models.Column }

type SetSampleRows struct{ Rows []models.DataRow }

type SetAvailableRules struct{ Rules []rules.Rule }

type SetCampaignName struct{ Pattern string }

type SetCampaignObjective struct{ Objective string }

type AddAdGroup struct{}

type RemoveAdGroup struct{ GroupID string }

type SetAdGroupName struct {
	GroupID string
	Pattern string
}

type SetAdGroupKeywords struct {
	GroupID  string
	Keywords []string
}

type AddAd struct{ GroupID string }

type RemoveAd struct {
	GroupID string
	AdID    string
}

type UpdateAd struct {
	GroupID string
	Ad      models.AdDefinition
}

type ToggleRule struct{ RuleID string }

type TogglePlatform struct{ Platform models.Platform }

type SetPlatformBudget struct {
	Platform models.Platform
	Amount   float64
}

type SetStep struct{ Step Step }

type SetResult struct{ Result *models.GenerationResult }

type Reset struct{}

func (SelectDataSource) isAction()     {}
func (SetColumns) isAction()           {}
func (SetSampleRows) isAction()        {}
func (SetAvailableRules) isAction()    {}
func (SetCampaignName) isAction()      {}
func (SetCampaignObjective) isAction() {}
func (AddAdGroup) isAction()           {}
func (RemoveAdGroup) isAction()        {}
func (SetAdGroupName) isAction()       {}
func (SetAdGroupKeywords) isAction()   {}
func (AddAd) isAction()                {}
func (RemoveAd) isAction()             {}
func (UpdateAd) isAction()             {}
func (ToggleRule) isAction()           {}
func (TogglePlatform) isAction()       {}
func (SetPlatformBudget) isAction()    {}
func (SetStep) isAction()              {}
func (SetResult) isAction()            {}
func (Reset) isAction()                {}

// Reduce applies one action and returns the replacement state. The input
// state is never modified. Disallowed edits (removing the last ad group, or
// the last ad within a group) return the state unchanged.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SelectDataSource:
		next := s.clone()
		if next.DataSourceID != act.ID {
			// A new source invalidates the fetched snapshot.
			next.Columns = nil
			next.SampleRows = nil
		}
		next.DataSourceID = act.ID
		next.DataSourceName = act.Name
		return next

	case SetColumns:
		next := s.clone()
		next.Columns = append([]models.Column(nil), act.Columns...)
		return next

	case SetSampleRows:
		next := s.clone()
		next.SampleRows = append([]models.DataRow(nil), act.Rows...)
		return next

	case SetAvailableRules:
		next := s.clone()
		next.AvailableRules = append([]rules.Rule(nil), act.Rules...)
		return next

	case SetCampaignName:
		next := s.clone()
		next.Campaign.NamePattern = act.Pattern
		return next

	case SetCampaignObjective:
		next := s.clone()
		next.Campaign.Objective = act.Objective
		return next

	case AddAdGroup:
		next := s.clone()
		next.Hierarchy.AdGroups = append(next.Hierarchy.AdGroups, models.NewAdGroupDefinition())
		return next

	case RemoveAdGroup:
		if len(s.Hierarchy.AdGroups) <= 1 {
			return s
		}
		i := s.Hierarchy.FindAdGroup(act.GroupID)
		if i < 0 {
			return s
		}
		next := s.clone()
		next.Hierarchy.AdGroups = append(next.Hierarchy.AdGroups[:i], next.Hierarchy.AdGroups[i+1:]...)
		return next

	case SetAdGroupName:
		i := s.Hierarchy.FindAdGroup(act.GroupID)
		if i < 0 {
			return s
		}
		next := s.clone()
		next.Hierarchy.AdGroups[i].NamePattern = act.Pattern
		return next

	case SetAdGroupKeywords:
		i := s.Hierarchy.FindAdGroup(act.GroupID)
		if i < 0 {
			return s
		}
		next := s.clone()
		next.Hierarchy.AdGroups[i].Keywords = append([]string(nil), act.Keywords...)
		return next

	case AddAd:
		i := s.Hierarchy.FindAdGroup(act.GroupID)
		if i < 0 {
			return s
		}
		next := s.clone()
		next.Hierarchy.AdGroups[i].Ads = append(next.Hierarchy.AdGroups[i].Ads, models.NewAdDefinition())
		return next

	case RemoveAd:
		i := s.Hierarchy.FindAdGroup(act.GroupID)
		if i < 0 || len(s.Hierarchy.AdGroups[i].Ads) <= 1 {
			return s
		}
		next := s.clone()
		ads := next.Hierarchy.AdGroups[i].Ads
		for j, ad := range ads {
			if ad.ID == act.AdID {
				next.Hierarchy.AdGroups[i].Ads = append(ads[:j], ads[j+1:]...)
				return next
			}
		}
		return s

	case UpdateAd:
		i := s.Hierarchy.FindAdGroup(act.GroupID)
		if i < 0 {
			return s
		}
		next := s.clone()
		for j, ad := range next.Hierarchy.AdGroups[i].Ads {
			if ad.ID == act.Ad.ID {
				next.Hierarchy.AdGroups[i].Ads[j] = act.Ad
				return next
			}
		}
		return s

	case ToggleRule:
		next := s.clone()
		for i, id := range next.SelectedRules {
			if id == act.RuleID {
				next.SelectedRules = append(next.SelectedRules[:i], next.SelectedRules[i+1:]...)
				return next
			}
		}
		next.SelectedRules = append(next.SelectedRules, act.RuleID)
		return next

	case TogglePlatform:
		next := s.clone()
		for i, p := range next.Platforms {
			if p == act.Platform {
				next.Platforms = append(next.Platforms[:i], next.Platforms[i+1:]...)
				delete(next.Budgets, act.Platform)
				return next
			}
		}
		next.Platforms = append(next.Platforms, act.Platform)
		return next

	case SetPlatformBudget:
		next := s.clone()
		next.Budgets[act.Platform] = act.Amount
		return next

	case SetStep:
		next := s.clone()
		next.Step = act.Step
		return next

	case SetResult:
		next := s.clone()
		next.Result = act.Result
		return next

	case Reset:
		return NewState()

	default:
		return s
	}
}
