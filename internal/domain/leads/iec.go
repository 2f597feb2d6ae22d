package leads

import "time"

// IECLead is an Importer-Exporter Code registration issued by DGFT.
type IECLead struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	IECCode       string     `gorm:"column:iec_code;type:text;not null;uniqueIndex" json:"iec_code"`
	PAN           *string    `gorm:"column:pan;type:text;index" json:"pan,omitempty"`
	FirmName      *string    `gorm:"column:firm_name;type:text" json:"firm_name,omitempty"`
	Email         *string    `gorm:"column:email;type:text" json:"email,omitempty"`
	Mobile        *string    `gorm:"column:mobile;type:text" json:"mobile,omitempty"`
	Status        *string    `gorm:"column:status;type:text;index" json:"status,omitempty"`
	IssueDate     *time.Time `gorm:"column:issue_date;type:date" json:"issue_date,omitempty"`
	FileNumber    *string    `gorm:"column:file_number;type:text" json:"file_number,omitempty"`
	DGFTRAOffice  *string    `gorm:"column:dgft_ra_office;type:text" json:"dgft_ra_office,omitempty"`
	DOB           *time.Time `gorm:"column:dob;type:date" json:"dob,omitempty"`
	CancelledDate *time.Time `gorm:"column:cancelled_date;type:date" json:"cancelled_date,omitempty"`
	SuspendedDate *time.Time `gorm:"column:suspended_date;type:date" json:"suspended_date,omitempty"`
	FileDate      *time.Time `gorm:"column:file_date;type:date" json:"file_date,omitempty"`
	Nature        *string    `gorm:"column:nature;type:text" json:"nature,omitempty"`
	Category      *string    `gorm:"column:category;type:text" json:"category,omitempty"`
	Pincode       *string    `gorm:"column:pincode;type:text" json:"pincode,omitempty"`
	Address       *string    `gorm:"column:address;type:text" json:"address,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index" json:"updated_at"`
}

func (IECLead) TableName() string { return "iec_leads" }
