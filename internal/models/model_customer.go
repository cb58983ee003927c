package models

import "time"

// Customer is a CRM customer row as stored in the dashboard's customers table.
// Mrr and Ltv are in major currency units, matching the dashboard data.
type Customer struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id" mapstructure:"id"`
	Name      string    `gorm:"column:name" json:"name" mapstructure:"name"`
	Email     string    `gorm:"column:email" json:"email" mapstructure:"email"`
	Tier      string    `gorm:"column:tier" json:"tier" mapstructure:"tier"`
	Status    string    `gorm:"column:status" json:"status" mapstructure:"status"`
	Mrr       float64   `gorm:"column:mrr" json:"mrr" mapstructure:"mrr"`
	Ltv       float64   `gorm:"column:ltv" json:"ltv" mapstructure:"ltv"`
	JoinDate  time.Time `gorm:"column:join_date" json:"join_date" mapstructure:"join_date"`
	CreatedAt time.Time `json:"created_at" mapstructure:"created_at"`
}

func (Customer) TableName() string { return "customers" }

// Joined returns the join date, falling back to the row creation time.
func (c *Customer) Joined() time.Time {
	if !c.JoinDate.IsZero() {
		return c.JoinDate
	}
	return c.CreatedAt
}
