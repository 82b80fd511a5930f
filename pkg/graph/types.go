package graph

import (
	"github.com/dd0wney/cluso-ubo/pkg/control"
)

// Kind tags the node union
type Kind uint8

const (
	KindCompany Kind = iota
	KindPerson
	KindOrganization
	KindAddress
	KindCountry
	KindSICCode
	KindCompanyStatus
	KindPreviousName
)

// String returns the string representation of a node kind
func (k Kind) String() string {
	switch k {
	case KindCompany:
		return "company"
	case KindPerson:
		return "person"
	case KindOrganization:
		return "organization"
	case KindAddress:
		return "address"
	case KindCountry:
		return "country"
	case KindSICCode:
		return "sic_code"
	case KindCompanyStatus:
		return "company_status"
	case KindPreviousName:
		return "previous_name"
	default:
		return "unknown"
	}
}

// Node is a vertex in the ownership graph. Exactly one of the attribute
// pointers matching Kind is set; the rest are nil.
type Node struct {
	ID   string
	Kind Kind
	Name string

	Company      *CompanyAttrs
	Person       *PersonAttrs
	Organization *OrganizationAttrs
	Address      *AddressAttrs
}

// CompanyAttrs carries company-specific attributes
type CompanyAttrs struct {
	RegistrationNumber  string
	IncorporationDate   string // ISO-8601 date as supplied
	Jurisdiction        string // ISO 3166-1 alpha-2 country code
	StatusID            string // references a CompanyStatus node
	RegisteredAddressID string // references an Address node
	SICCodes            []string
}

// PersonAttrs carries natural-person attributes. DateOfBirth keeps the
// source granularity (typically month+year).
type PersonAttrs struct {
	DateOfBirth string
	Nationality string
	CountryCode string // jurisdiction of residence, if known
}

// OrganizationAttrs carries corporate-controller attributes
type OrganizationAttrs struct {
	Jurisdiction       string // ISO 3166-1 alpha-2 country code
	RegistrationNumber string
}

// AddressAttrs carries address attributes. Coordinates are optional:
// absence of geocoding never blocks graph construction.
type AddressAttrs struct {
	Raw      string
	Lat      float64
	Lon      float64
	Geocoded bool
}

// IsController reports whether the node kind can sit on the controlling
// end of an edge
func (n *Node) IsController() bool {
	return n.Kind == KindPerson || n.Kind == KindOrganization
}

// IsControllable reports whether the node kind can sit on the controlled
// end of an edge. Organizations are controllable so that chains like
// person -> organization -> company stay representable; persons are not.
func (n *Node) IsControllable() bool {
	return n.Kind == KindCompany || n.Kind == KindOrganization
}

// Jurisdiction returns the node's country code, if it carries one
func (n *Node) Jurisdiction() string {
	switch n.Kind {
	case KindCompany:
		if n.Company != nil {
			return n.Company.Jurisdiction
		}
	case KindPerson:
		if n.Person != nil {
			return n.Person.CountryCode
		}
	case KindOrganization:
		if n.Organization != nil {
			return n.Organization.Jurisdiction
		}
	}
	return ""
}

// ControlEdge is a directed control relationship from a Person or
// Organization to a Company, carrying the normalized control range and the
// raw descriptor it was parsed from.
type ControlEdge struct {
	ControllerID string
	CompanyID    string
	Range        control.Range
	Descriptor   string
}

// EdgeRecord is the load-boundary form of a control edge: the descriptor
// is still raw text, parsed exactly once during Load. Upstream ingestion
// must pass descriptors through unmodified.
type EdgeRecord struct {
	ControllerID string `validate:"required"`
	CompanyID    string `validate:"required"`
	Descriptor   string
}
