package dto

import "github.com/cadastra/cadastra/internal/validation"

// AddressRequest is the raw address payload of a party request.
type AddressRequest struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// CreatePartyRequest is the body for POST /api/v1/parties.
type CreatePartyRequest struct {
	Kind     string         `json:"kind"`
	Name     string         `json:"name"`
	Document string         `json:"document"`
	Email    string         `json:"email,omitempty"`
	Phone    string         `json:"phone,omitempty"`
	Address  AddressRequest `json:"address"`
}

// UpdatePartyRequest is the body for PUT /api/v1/parties/{id}.
type UpdatePartyRequest struct {
	Kind     *string         `json:"kind,omitempty"`
	Name     *string         `json:"name,omitempty"`
	Document *string         `json:"document,omitempty"`
	Email    *string         `json:"email,omitempty"`
	Phone    *string         `json:"phone,omitempty"`
	Address  *AddressRequest `json:"address,omitempty"`
}

// ToPartyInput converts the request into the raw validation input.
func (r CreatePartyRequest) ToPartyInput() validation.PartyInput {
	return validation.PartyInput{
		Kind:     r.Kind,
		Name:     r.Name,
		Document: r.Document,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  validation.AddressInput(r.Address),
	}
}

// ToPartyPatchInput converts the request into the raw patch input.
func (r UpdatePartyRequest) ToPartyPatchInput() validation.PartyPatchInput {
	patch := validation.PartyPatchInput{
		Kind:     r.Kind,
		Name:     r.Name,
		Document: r.Document,
		Email:    r.Email,
		Phone:    r.Phone,
	}
	if r.Address != nil {
		addr := validation.AddressInput(*r.Address)
		patch.Address = &addr
	}
	return patch
}
