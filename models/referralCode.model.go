package models

import (
	"gorm.io/gorm"
)

// ReferralCode maps a short shareable code to an ambassador and a campaign
// (course slug). Codes are immutable once minted. The global unique index on
// Code and the composite index on (user_id, campaign_id) are what keep
// issuance stable under concurrent link requests.
type ReferralCode struct {
	gorm.Model
	Code       string `gorm:"uniqueIndex;not null" json:"code"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_ambassador_campaign" json:"userId"`
	CampaignID string `gorm:"not null;uniqueIndex:idx_ambassador_campaign" json:"campaignId"`
	User       User   `gorm:"foreignKey:UserID" json:"-"`
}

func (ReferralCode) TableName() string {
	return "referral_codes"
}
