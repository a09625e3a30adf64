package handler

import (
	"time"

	"customercore/internal/customer/models"
	taskservice "customercore/internal/task/service"
)

type ValueResponse struct {
	Catalog string `json:"catalog"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

type CustomerResponse struct {
	Identifier   string                 `json:"identifier"`
	CustomerType string                 `json:"customer_type"`
	State        string                 `json:"state"`
	FirstName    string                 `json:"first_name,omitempty"`
	MiddleName   string                 `json:"middle_name,omitempty"`
	LastName     string                 `json:"last_name,omitempty"`
	BusinessName string                 `json:"business_name,omitempty"`
	DateOfBirth  string                 `json:"date_of_birth,omitempty"`
	Address      *models.Address        `json:"address,omitempty"`
	Contacts     []models.ContactDetail `json:"contacts"`
	Values       []ValueResponse        `json:"values"`
	CreatedBy    string                 `json:"created_by"`
	CreatedAt    time.Time              `json:"created_at"`
	ModifiedBy   string                 `json:"modified_by"`
	ModifiedAt   time.Time              `json:"modified_at"`
}

type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
}

func FromCustomer(c *models.Customer) CustomerResponse {
	resp := CustomerResponse{
		Identifier:   c.Identifier,
		CustomerType: string(c.Type),
		State:        string(c.State),
		FirstName:    c.FirstName,
		MiddleName:   c.MiddleName,
		LastName:     c.LastName,
		BusinessName: c.BusinessName,
		Address:      c.Address,
		Contacts:     c.Contacts,
		Values:       make([]ValueResponse, len(c.Values)),
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		ModifiedBy:   c.ModifiedBy,
		ModifiedAt:   c.ModifiedAt,
	}
	if resp.Contacts == nil {
		resp.Contacts = []models.ContactDetail{}
	}
	if c.DateOfBirth != nil {
		resp.DateOfBirth = c.DateOfBirth.Format(dateLayout)
	}
	for i, v := range c.Values {
		resp.Values[i] = ValueResponse{Catalog: v.Catalog, Field: v.Field, Value: v.Value}
	}
	return resp
}

type CommandResponse struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Comment   string    `json:"comment,omitempty"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

type CommandListResponse struct {
	Commands []CommandResponse `json:"commands"`
}

func FromCommand(r *models.CommandRecord) CommandResponse {
	return CommandResponse{
		ID:        r.ID.String(),
		Command:   string(r.Action),
		From:      string(r.From),
		To:        string(r.To),
		Comment:   r.Comment,
		Actor:     r.Actor,
		CreatedAt: r.CreatedAt,
	}
}

type IdentificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Number    string    `json:"number"`
	IssuedBy  string    `json:"issued_by,omitempty"`
	ExpiresOn string    `json:"expires_on,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type IdentificationListResponse struct {
	Identifications []IdentificationResponse `json:"identifications"`
}

func FromIdentification(c *models.IdentificationCard) IdentificationResponse {
	resp := IdentificationResponse{
		ID:        c.ID.String(),
		Kind:      c.Kind,
		Number:    c.Number,
		IssuedBy:  c.IssuedBy,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
	if c.ExpiresOn != nil {
		resp.ExpiresOn = c.ExpiresOn.Format(dateLayout)
	}
	return resp
}

// TaskResponse is a task definition together with the customer's instance.
type TaskResponse struct {
	ID         string     `json:"id,omitempty"`
	Definition string     `json:"definition"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Mandatory  bool       `json:"mandatory"`
	Executed   bool       `json:"executed"`
	Comment    string     `json:"comment,omitempty"`
	ExecutedBy string     `json:"executed_by,omitempty"`
	ExecutedOn *time.Time `json:"executed_on,omitempty"`
}

type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

func FromEntry(e taskservice.Entry) TaskResponse {
	resp := TaskResponse{
		Definition: e.Definition.Identifier,
		Name:       e.Definition.Name,
		Type:       string(e.Definition.Type),
		Mandatory:  e.Definition.Mandatory,
	}
	if e.Instance != nil {
		resp.ID = e.Instance.ID.String()
		resp.Executed = e.Instance.Executed()
		resp.Comment = e.Instance.Comment
		resp.ExecutedBy = e.Instance.ExecutedBy
		resp.ExecutedOn = e.Instance.ExecutedOn
	}
	return resp
}

type StepTaskResponse struct {
	Definition string `json:"definition"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Blocking   bool   `json:"blocking"`
	InstanceID string `json:"instance_id,omitempty"`
}

type ProcessStepResponse struct {
	Command string             `json:"command"`
	Tasks   []StepTaskResponse `json:"tasks"`
}

type ProcessStepListResponse struct {
	Steps []ProcessStepResponse `json:"steps"`
}

func FromProcessSteps(steps []models.ProcessStep) ProcessStepListResponse {
	resp := ProcessStepListResponse{Steps: make([]ProcessStepResponse, len(steps))}
	for i, step := range steps {
		out := ProcessStepResponse{Command: string(step.Command), Tasks: make([]StepTaskResponse, len(step.Tasks))}
		for j, t := range step.Tasks {
			task := StepTaskResponse{Definition: t.Definition, Name: t.Name, Type: t.Type, Blocking: t.Blocking}
			if t.InstanceID != nil {
				task.InstanceID = t.InstanceID.String()
			}
			out.Tasks[j] = task
		}
		resp.Steps[i] = out
	}
	return resp
}
