package model

import "time"

// PartyKind distinguishes which document-length rule applies to a party.
// The wire tags follow the Brazilian registry convention: PF for a natural
// person (CPF, 11 digits), PJ for an organization (CNPJ, 14 digits).
type PartyKind string

// Valid party kinds.
const (
	KindIndividual   PartyKind = "PF"
	KindOrganization PartyKind = "PJ"
)

// Valid reports whether the kind is one of the enumerated values.
func (k PartyKind) Valid() bool {
	return k == KindIndividual || k == KindOrganization
}

// DocumentLength returns the digit count the kind's document must have.
// Returns 0 for an invalid kind.
func (k PartyKind) DocumentLength() int {
	switch k {
	case KindIndividual:
		return 11
	case KindOrganization:
		return 14
	default:
		return 0
	}
}

// States lists the valid two-letter Brazilian state codes.
var States = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS",
	"MG", "PA", "PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC",
	"SP", "SE", "TO",
}

var stateSet = func() map[string]bool {
	m := make(map[string]bool, len(States))
	for _, s := range States {
		m[s] = true
	}
	return m
}()

// ValidState reports whether s is a known state code.
func ValidState(s string) bool {
	return stateSet[s]
}

// Address is a value object owned by its Party; it has no lifecycle of its
// own. PostalCode is stored digits-only (8 digits after normalization).
type Address struct {
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// Party represents a registered party, either an individual (PF) or an
// organization (PJ). Document and Phone are stored digits-only.
type Party struct {
	ID        string     `json:"id"`
	Kind      PartyKind  `json:"kind"`
	Name      string     `json:"name"`
	Document  string     `json:"document"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   Address    `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
