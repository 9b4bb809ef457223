// Package profile owns the application-side user record: subscription tier,
// monthly usage accounting, analysis preferences, and onboarding progress.
// The auth account itself lives with the account provider; a profile row is
// keyed by the provider's user ID.
package profile

import "time"

// SubscriptionTier enumerates the billing tiers.
type SubscriptionTier string

const (
	TierFree       SubscriptionTier = "free"
	TierPro        SubscriptionTier = "pro"
	TierEnterprise SubscriptionTier = "enterprise"
)

// UsageLimit returns the tier's monthly match allowance. Zero means
// unlimited; unknown tiers fall back to the free allowance.
func (t SubscriptionTier) UsageLimit() int {
	switch t {
	case TierPro:
		return 100
	case TierEnterprise:
		return 0
	default:
		return 10
	}
}

// AnalysisDepth is the user's preferred CV analysis depth.
type AnalysisDepth string

const (
	DepthBasic         AnalysisDepth = "basic"
	DepthStandard      AnalysisDepth = "standard"
	DepthComprehensive AnalysisDepth = "comprehensive"
)

// OnboardingProgress tracks the setup wizard state, stored on the profile.
type OnboardingProgress struct {
	CurrentStep    int      `json:"currentStep"`
	CompletedSteps []string `json:"completedSteps"`
	Skipped        bool     `json:"skipped"`
}

// Profile is one user's application record.
type Profile struct {
	ID                     string
	Email                  string
	FullName               string
	Company                string
	SubscriptionTier       SubscriptionTier
	MonthlyUsageCount      int
	UsageResetDate         time.Time
	PreferredAnalysisDepth AnalysisDepth
	Onboarding             OnboardingProgress
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// NextUsageResetDate returns the first day of the month after now, UTC
// midnight. New profiles start their usage window there.
func NextUsageResetDate(now time.Time) time.Time {
	year, month, _ := now.UTC().Date()
	return time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
}
