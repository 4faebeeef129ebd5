package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttributedEnrollment links a completed payment to the referral code placed
// at checkout. PaymentRef is the idempotency key: the unique index on it is
// the sole source of truth for exactly-once attribution under webhook
// redelivery. Rows are never mutated after insert.
type AttributedEnrollment struct {
	gorm.Model
	EnrollmentRef      string         `gorm:"type:varchar(64);not null" json:"enrollmentRef"`
	UserID             uint           `gorm:"not null;index" json:"userId"` // referring ambassador
	ReferralCode       string         `gorm:"not null;index" json:"referralCode"`
	CampaignID         string         `gorm:"not null" json:"campaignId"`
	PaymentRef         string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"paymentRef"`
	Amount             float64        `gorm:"not null" json:"amount"`
	Currency           string         `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	GatewayResponseRaw datatypes.JSON `json:"-"`
	User               User           `gorm:"foreignKey:UserID" json:"-"`
}

func (AttributedEnrollment) TableName() string {
	return "attributed_enrollments"
}
