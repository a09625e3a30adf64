package handler

import (
	"strings"
	"time"

	"customercore/internal/customer/models"
	"customercore/internal/lifecycle"
	dErrors "customercore/pkg/domain-errors"
)

const (
	dateLayout        = "2006-01-02"
	maxValues         = 500
	maxContacts       = 20
	maxCommentLength  = 1000
	maxIdentifierSize = 128
)

type ValueRequest struct {
	Catalog string `json:"catalog"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// ProfileRequest carries the editable identity data. Dates use YYYY-MM-DD.
type ProfileRequest struct {
	FirstName    string                 `json:"first_name"`
	MiddleName   string                 `json:"middle_name"`
	LastName     string                 `json:"last_name"`
	BusinessName string                 `json:"business_name"`
	DateOfBirth  string                 `json:"date_of_birth"`
	Address      *models.Address        `json:"address,omitempty"`
	Contacts     []models.ContactDetail `json:"contacts,omitempty"`

	dateOfBirth *time.Time
}

func (r *ProfileRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.MiddleName = strings.TrimSpace(r.MiddleName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	for i := range r.Contacts {
		r.Contacts[i].Kind = models.ContactKind(strings.ToUpper(strings.TrimSpace(string(r.Contacts[i].Kind))))
		r.Contacts[i].Value = strings.TrimSpace(r.Contacts[i].Value)
	}
}

func (r *ProfileRequest) Validate() error {
	if len(r.Contacts) > maxContacts {
		return dErrors.New(dErrors.CodeValidation, "too many contact details")
	}
	if r.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, r.DateOfBirth)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "date_of_birth must be YYYY-MM-DD")
		}
		r.dateOfBirth = &dob
	}
	return nil
}

func (r *ProfileRequest) profile() models.Profile {
	return models.Profile{
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		BusinessName: r.BusinessName,
		DateOfBirth:  r.dateOfBirth,
		Address:      r.Address,
		Contacts:     r.Contacts,
	}
}

type CreateCustomerRequest struct {
	Identifier   string         `json:"identifier"`
	CustomerType string         `json:"customer_type"`
	Values       []ValueRequest `json:"values,omitempty"`
	ProfileRequest
}

func (r *CreateCustomerRequest) Normalize() {
	r.Identifier = strings.TrimSpace(r.Identifier)
	r.CustomerType = strings.ToUpper(strings.TrimSpace(r.CustomerType))
	r.ProfileRequest.Normalize()
	normalizeValues(r.Values)
}

func (r *CreateCustomerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Identifier == "" {
		return dErrors.New(dErrors.CodeValidation, "identifier is required")
	}
	if len(r.Identifier) > maxIdentifierSize {
		return dErrors.New(dErrors.CodeValidation, "identifier is too long")
	}
	if !models.Type(r.CustomerType).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "customer_type must be PERSON or BUSINESS")
	}
	if err := validateValues(r.Values); err != nil {
		return err
	}
	return r.ProfileRequest.Validate()
}

type ValuesRequest struct {
	Values []ValueRequest `json:"values"`
}

func (r *ValuesRequest) Normalize() {
	normalizeValues(r.Values)
}

func (r *ValuesRequest) Validate() error {
	return validateValues(r.Values)
}

func normalizeValues(values []ValueRequest) {
	for i := range values {
		values[i].Catalog = strings.TrimSpace(values[i].Catalog)
		values[i].Field = strings.TrimSpace(values[i].Field)
	}
}

func validateValues(values []ValueRequest) error {
	if len(values) > maxValues {
		return dErrors.New(dErrors.CodeValidation, "too many values")
	}
	for _, v := range values {
		if v.Catalog == "" || v.Field == "" {
			return dErrors.New(dErrors.CodeValidation, "catalog and field are required for every value")
		}
	}
	return nil
}

func toValues(values []ValueRequest) []models.Value {
	out := make([]models.Value, len(values))
	for i, v := range values {
		out[i] = models.Value{Catalog: v.Catalog, Field: v.Field, Value: v.Value}
	}
	return out
}

type CommandRequest struct {
	Command string `json:"command"`
	Comment string `json:"comment"`

	command lifecycle.Command
}

func (r *CommandRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *CommandRequest) Validate() error {
	if len(r.Comment) > maxCommentLength {
		return dErrors.New(dErrors.CodeValidation, "comment is too long")
	}
	cmd, err := lifecycle.ParseCommand(r.Command)
	if err != nil {
		return err
	}
	r.command = cmd
	return nil
}

type IdentificationRequest struct {
	Kind      string `json:"kind"`
	Number    string `json:"number"`
	IssuedBy  string `json:"issued_by"`
	ExpiresOn string `json:"expires_on"`

	expiresOn *time.Time
}

func (r *IdentificationRequest) Normalize() {
	r.Kind = strings.ToUpper(strings.TrimSpace(r.Kind))
	r.Number = strings.TrimSpace(r.Number)
	r.IssuedBy = strings.TrimSpace(r.IssuedBy)
	r.ExpiresOn = strings.TrimSpace(r.ExpiresOn)
}

func (r *IdentificationRequest) Validate() error {
	if r.Kind == "" || r.Number == "" {
		return dErrors.New(dErrors.CodeValidation, "kind and number are required")
	}
	if r.ExpiresOn != "" {
		exp, err := time.Parse(dateLayout, r.ExpiresOn)
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "expires_on must be YYYY-MM-DD")
		}
		r.expiresOn = &exp
	}
	return nil
}

type ExecuteTaskRequest struct {
	Comment string `json:"comment"`
}

func (r *ExecuteTaskRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

func (r *ExecuteTaskRequest) Validate() error {
	if len(r.Comment) > maxCommentLength {
		return dErrors.New(dErrors.CodeValidation, "comment is too long")
	}
	return nil
}
