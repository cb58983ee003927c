package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent is the audit entry written once per verified webhook delivery.
// Only Processed and Error are set after creation, within the same handling pass.
type WebhookEvent struct {
	ID            string         `gorm:"column:id;type:varchar(128);primary_key" json:"id"`
	Type          string         `gorm:"column:type;type:varchar(128);not null" json:"type"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime:false" json:"created_at"`
	Processed     bool           `gorm:"column:processed;not null;default:false" json:"processed"`
	CustomerEmail string         `gorm:"column:customer_email;type:varchar(256)" json:"customer_email"`
	Error         *string        `gorm:"column:error;type:text" json:"error,omitempty"`
	Data          datatypes.JSON `gorm:"column:data;type:jsonb" json:"data,omitempty"`
	ReceivedAt    time.Time      `gorm:"column:received_at;index" json:"received_at"`
}

func (WebhookEvent) TableName() string { return "webhook_event" }

func (e *WebhookEvent) Clone() *WebhookEvent {
	if e == nil {
		return nil
	}
	c := *e
	if e.Error != nil {
		msg := *e.Error
		c.Error = &msg
	}
	if e.Data != nil {
		c.Data = append(datatypes.JSON(nil), e.Data...)
	}
	return &c
}
