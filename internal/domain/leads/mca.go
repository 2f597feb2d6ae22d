package leads

import "time"

// MCANewLead is one director row of a newly registered company, as published
// in the MCA registration sheets. A company with several directors occupies
// several rows, one per (CIN, DIN) pair.
type MCANewLead struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Company                 string     `gorm:"column:company;type:text;not null;default:''" json:"company"`
	CIN                     string     `gorm:"column:cin;type:text;not null;uniqueIndex:idx_mca_new_leads_cin_din,priority:1" json:"cin"`
	CEmail                  *string    `gorm:"column:c_email;type:text" json:"c_email,omitempty"`
	DateOfRegistration      *time.Time `gorm:"column:date_of_registration;type:date" json:"date_of_registration,omitempty"`
	ROC                     *string    `gorm:"column:roc;type:text" json:"roc,omitempty"`
	Category                *string    `gorm:"column:category;type:text" json:"category,omitempty"`
	Class                   *string    `gorm:"column:class;type:text" json:"class,omitempty"`
	Subcategory             *string    `gorm:"column:subcategory;type:text" json:"subcategory,omitempty"`
	AuthorizedCapital       *string    `gorm:"column:authorized_capital;type:text" json:"authorized_capital,omitempty"`
	PaidupCapital           *string    `gorm:"column:paidup_capital;type:text" json:"paidup_capital,omitempty"`
	ActivityCode            *string    `gorm:"column:activity_code;type:text" json:"activity_code,omitempty"`
	ActivityDescription     *string    `gorm:"column:activity_description;type:text" json:"activity_description,omitempty"`
	DateJoin                *time.Time `gorm:"column:date_join;type:date" json:"date_join,omitempty"`
	RegisteredOfficeAddress *string    `gorm:"column:registered_office_address;type:text" json:"registered_office_address,omitempty"`
	TypeCompany             *string    `gorm:"column:type_company;type:text" json:"type_company,omitempty"`
	DIN                     string     `gorm:"column:din;type:text;not null;uniqueIndex:idx_mca_new_leads_cin_din,priority:2" json:"din"`
	DirectorName            *string    `gorm:"column:director_name;type:text" json:"director_name,omitempty"`
	Designation             *string    `gorm:"column:designation;type:text" json:"designation,omitempty"`
	DateOfBirth             *time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth,omitempty"`
	Mobile                  *string    `gorm:"column:mobile;type:text" json:"mobile,omitempty"`
	Email                   *string    `gorm:"column:email;type:text" json:"email,omitempty"`
	Gender                  *string    `gorm:"column:gender;type:text" json:"gender,omitempty"`
	Pincode                 *string    `gorm:"column:pincode;type:text" json:"pincode,omitempty"`
	City                    *string    `gorm:"column:city;type:text;index" json:"city,omitempty"`
	State                   *string    `gorm:"column:state;type:text;index" json:"state,omitempty"`
	Country                 *string    `gorm:"column:country;type:text" json:"country,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index" json:"updated_at"`
}

func (MCANewLead) TableName() string { return "mca_new_leads" }
