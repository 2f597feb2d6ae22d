package leads

import "time"

type GSTBasic struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	GSTIN                string     `gorm:"column:gstin;type:text;not null;uniqueIndex" json:"gstin"`
	RegistrationDate     *time.Time `gorm:"column:registration_date;type:date" json:"registration_date,omitempty"`
	PAN                  *string    `gorm:"column:pan;type:text;index" json:"pan,omitempty"`
	Mobile               *string    `gorm:"column:mobile;type:text" json:"mobile,omitempty"`
	Email                *string    `gorm:"column:email;type:text" json:"email,omitempty"`
	LegalName            *string    `gorm:"column:legal_name;type:text" json:"legal_name,omitempty"`
	TradeName            *string    `gorm:"column:trade_name;type:text" json:"trade_name,omitempty"`
	BusinessConstitution *string    `gorm:"column:business_constitution;type:text" json:"business_constitution,omitempty"`
	Pincode              *string    `gorm:"column:pincode;type:text" json:"pincode,omitempty"`
	Address              *string    `gorm:"column:address;type:text" json:"address,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index" json:"updated_at"`
}

func (GSTBasic) TableName() string { return "gst_basics" }

// GSTBusinessNature tags a GSTIN with one declared nature of business
// ("Retail Business", "Wholesale Business", ...). Rows are joined to
// gst_basics by gstin, never by id, and are only ever added.
type GSTBusinessNature struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	GSTIN          string `gorm:"column:gstin;type:text;not null;uniqueIndex:idx_gst_business_natures_gstin_nature,priority:1" json:"gstin"`
	BusinessNature string `gorm:"column:business_nature;type:text;not null;uniqueIndex:idx_gst_business_natures_gstin_nature,priority:2" json:"business_nature"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (GSTBusinessNature) TableName() string { return "gst_business_natures" }
