package models

import (
	"time"

	"github.com/crm/touchpoints/internal/domain/crm"
	"github.com/google/uuid"
)

// CorporateCustomerModel is the GORM model for the corporate_customers table.
type CorporateCustomerModel struct {
	BaseModel
	Name             string `gorm:"type:varchar(255);not null;uniqueIndex:idx_corporate_customers_name"`
	SubscriptionTier string `gorm:"type:varchar(64);not null"`
}

// TableName specifies the table name
func (CorporateCustomerModel) TableName() string {
	return "corporate_customers"
}

// ToDomain converts CorporateCustomerModel to a domain CorporateCustomer
func (m *CorporateCustomerModel) ToDomain() *crm.CorporateCustomer {
	return &crm.CorporateCustomer{
		BaseEntity:       m.BaseModel.ToDomain(),
		Name:             m.Name,
		SubscriptionTier: m.SubscriptionTier,
	}
}

// CorporateCustomerModelFromDomain creates a CorporateCustomerModel from a domain CorporateCustomer
func CorporateCustomerModelFromDomain(c *crm.CorporateCustomer) *CorporateCustomerModel {
	model := &CorporateCustomerModel{
		Name:             c.Name,
		SubscriptionTier: c.SubscriptionTier,
	}
	model.FromDomainBaseEntity(c.BaseEntity)
	return model
}

// TouchpointsModel is the GORM model for the touchpoints table. Milestone
// dates are nullable; a fresh record has all four unset.
type TouchpointsModel struct {
	BaseModel
	CustomerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	WelcomeOutreach     *time.Time `gorm:"type:timestamptz"`
	TechnicalOnboarding *time.Time `gorm:"type:timestamptz"`
	FollowUpCall        *time.Time `gorm:"type:timestamptz"`
	FeedbackSession     *time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the table name
func (TouchpointsModel) TableName() string {
	return "touchpoints"
}

// ToDomain converts TouchpointsModel to a domain Touchpoints
func (m *TouchpointsModel) ToDomain() *crm.Touchpoints {
	return &crm.Touchpoints{
		BaseEntity:          m.BaseModel.ToDomain(),
		CustomerID:          m.CustomerID,
		WelcomeOutreach:     m.WelcomeOutreach,
		TechnicalOnboarding: m.TechnicalOnboarding,
		FollowUpCall:        m.FollowUpCall,
		FeedbackSession:     m.FeedbackSession,
	}
}

// TouchpointsModelFromDomain creates a TouchpointsModel from a domain Touchpoints
func TouchpointsModelFromDomain(record *crm.Touchpoints) *TouchpointsModel {
	model := &TouchpointsModel{
		CustomerID:          record.CustomerID,
		WelcomeOutreach:     record.WelcomeOutreach,
		TechnicalOnboarding: record.TechnicalOnboarding,
		FollowUpCall:        record.FollowUpCall,
		FeedbackSession:     record.FeedbackSession,
	}
	model.FromDomainBaseEntity(record.BaseEntity)
	return model
}
