package records

import (
	"fmt"
	"strings"

	"github.com/yungbote/leadbridge-backend/internal/domain/leads"
)

type Kind string

const (
	KindMCA Kind = "mca"
	KindIEC Kind = "iec"
	KindGST Kind = "gst"
)

type ColumnType string

const (
	ColumnText ColumnType = "text"
	ColumnDate ColumnType = "date"
)

// Column maps one sheet header onto one table column.
type Column struct {
	Name   string
	Source string
	Type   ColumnType
}

// Spec describes how one record kind is validated, shaped and stored.
type Spec struct {
	Kind  Kind
	Table string
	// Columns is the canonical schema, in insert order.
	Columns []Column
	// Mandatory lists raw sheet headers a row must carry to be kept.
	Mandatory []string
	// KeyColumns is the natural key; these columns are never updated.
	KeyColumns []string
	// Defaults replaces a null text column with a fixed value.
	Defaults map[string]string
	// NaturesSource names the header fanned out into gst_business_natures.
	NaturesSource string
	// Model is the gorm model backing Table.
	Model any
}

func (s *Spec) FansOutNatures() bool { return s.NaturesSource != "" }

// UpdateColumns returns every non-key column, in schema order.
func (s *Spec) UpdateColumns() []string {
	keys := make(map[string]struct{}, len(s.KeyColumns))
	for _, k := range s.KeyColumns {
		keys[k] = struct{}{}
	}
	out := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if _, isKey := keys[c.Name]; !isKey {
			out = append(out, c.Name)
		}
	}
	return out
}

func text(name, source string) Column { return Column{Name: name, Source: source, Type: ColumnText} }
func date(name, source string) Column { return Column{Name: name, Source: source, Type: ColumnDate} }

var registry = map[Kind]*Spec{
	KindMCA: {
		Kind:  KindMCA,
		Table: "mca_new_leads",
		Columns: []Column{
			text("company", "Company"),
			text("cin", "CIN"),
			text("c_email", "CEmail"),
			date("date_of_registration", "DATE OF REGISTRATION"),
			text("roc", "ROC"),
			text("category", "CATEGORY"),
			text("class", "CLASS"),
			text("subcategory", "SUBCATEGORY"),
			text("authorized_capital", "AUTHORIZED CAPITAL"),
			text("paidup_capital", "PAIDUP CAPITAL"),
			text("activity_code", "ACTIVITY CODE"),
			text("activity_description", "ACTIVITY DESCRIPTION"),
			date("date_join", "DATE JOIN"),
			text("registered_office_address", "Registered Office Address"),
			text("type_company", "TYPE COMPANY"),
			text("din", "DIN"),
			text("director_name", "DIRECTOR NAME"),
			text("designation", "DESIGNATION"),
			date("date_of_birth", "Date Of Birth"),
			text("mobile", "Mobile"),
			text("email", "Email"),
			text("gender", "Gender"),
			text("pincode", "PINCODE"),
			text("city", "City"),
			text("state", "State"),
			text("country", "COUNTRY"),
		},
		Mandatory:  []string{"CIN", "DIN"},
		KeyColumns: []string{"cin", "din"},
		Defaults:   map[string]string{"company": ""},
		Model:      &leads.MCANewLead{},
	},
	KindIEC: {
		Kind:  KindIEC,
		Table: "iec_leads",
		Columns: []Column{
			text("iec_code", "IEC"),
			text("pan", "PAN"),
			text("firm_name", "FIRM NAME"),
			text("email", "EMAIL"),
			text("mobile", "MOBILE"),
			text("status", "STATUS"),
			date("issue_date", "ISSUE DATE"),
			text("file_number", "FILE NUMBER"),
			text("dgft_ra_office", "DGFT RA Office"),
			date("dob", "DOB"),
			date("cancelled_date", "CANCELLED DATE"),
			date("suspended_date", "SUSPENDED DATE"),
			date("file_date", "FILE DATE"),
			text("nature", "NATURE"),
			text("category", "CATEGORY"),
			text("pincode", "PINCODE"),
			text("address", "ADDRESS"),
		},
		Mandatory:  []string{"IEC"},
		KeyColumns: []string{"iec_code"},
		Model:      &leads.IECLead{},
	},
	KindGST: {
		Kind:  KindGST,
		Table: "gst_basics",
		Columns: []Column{
			text("gstin", "GSTIN"),
			date("registration_date", "Registration Date"),
			text("pan", "PAN"),
			text("mobile", "Mobile"),
			text("email", "Email"),
			text("legal_name", "Legal Name"),
			text("trade_name", "Trade Name"),
			text("business_constitution", "Business constitution"),
			text("pincode", "Pincode"),
			text("address", "Address"),
		},
		Mandatory:     []string{"GSTIN"},
		KeyColumns:    []string{"gstin"},
		NaturesSource: "Business Nature",
		Model:         &leads.GSTBasic{},
	},
}

// Kinds returns every registered kind in a fixed order.
func Kinds() []Kind { return []Kind{KindMCA, KindIEC, KindGST} }

// Lookup resolves a declared kind, ignoring case and surrounding space.
func Lookup(kind string) (*Spec, error) {
	spec, ok := registry[Kind(strings.ToLower(strings.TrimSpace(kind)))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecordKind, kind)
	}
	return spec, nil
}
