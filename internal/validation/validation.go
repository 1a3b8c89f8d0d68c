// Package validation implements input validation for accounts and parties.
// Identifier-like fields (documents, postal codes, phones) are normalized to
// digits before any length check; structural and cardinality issues for a
// record are collected in a single pass and reported together.
package validation

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/cadastra/cadastra/internal/model"
)

// Issue codes. Stable machine-readable identifiers; messages are for humans.
const (
	CodeRequired      = "required"
	CodeTooShort      = "too_short"
	CodeInvalidEmail  = "invalid_email"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidLength = "invalid_length"
	CodeNotAllowed    = "not_allowed"
)

// Issue is a single validation problem on one field.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Issues maps a field path (e.g. "address.postal_code") to its problems.
type Issues map[string][]Issue

func (is Issues) add(path, code, message string) {
	is[path] = append(is[path], Issue{Code: code, Message: message})
}

// Error wraps Issues so services can return them through the error channel
// and handlers can recover the structured shape with errors.As.
type Error struct {
	Issues Issues
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Issues))
}

// asError returns nil when no issues were collected.
func (is Issues) asError() error {
	if len(is) == 0 {
		return nil
	}
	return &Error{Issues: is}
}

// Digits strips every non-digit rune from s. Pure and total; applying it to
// an already digits-only string is the identity.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// CheckDocument enforces the per-kind document cardinality on an already
// normalized value. Returns nil when kind is invalid; the enum issue for the
// kind itself is reported by the caller.
func CheckDocument(kind model.PartyKind, normalized string) *Issue {
	want := kind.DocumentLength()
	if want == 0 || len(normalized) == want {
		return nil
	}
	name := "CPF"
	if kind == model.KindOrganization {
		name = "CNPJ"
	}
	return &Issue{
		Code:    CodeInvalidLength,
		Message: fmt.Sprintf("%s must have %d digits", name, want),
	}
}

// CheckPostalCode enforces the 8-digit postal code rule on an already
// normalized value.
func CheckPostalCode(normalized string) *Issue {
	if len(normalized) == 8 {
		return nil
	}
	return &Issue{Code: CodeInvalidLength, Message: "postal code must have 8 digits"}
}

// AccountInput is the raw payload for creating an account.
type AccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Account validates an account creation payload. Role defaults to "user"
// when empty.
func Account(in AccountInput) error {
	issues := Issues{}
	if len(in.Name) < 3 {
		issues.add("name", CodeTooShort, "name must have at least 3 characters")
	}
	if !validEmail(in.Email) {
		issues.add("email", CodeInvalidEmail, "email must be a valid address")
	}
	if len(in.Password) < 6 {
		issues.add("password", CodeTooShort, "password must have at least 6 characters")
	}
	if in.Role != "" && !model.Role(in.Role).Valid() {
		issues.add("role", CodeInvalidEnum, "role must be admin or user")
	}
	return issues.asError()
}

// AccountPatch validates a partial account update. Password changes are not
// accepted here; they go through the dedicated password route.
func AccountPatch(name, email, role, password *string) error {
	issues := Issues{}
	if password != nil {
		issues.add("password", CodeNotAllowed, "use the password change route")
	}
	if name != nil && len(*name) < 3 {
		issues.add("name", CodeTooShort, "name must have at least 3 characters")
	}
	if email != nil && !validEmail(*email) {
		issues.add("email", CodeInvalidEmail, "email must be a valid address")
	}
	if role != nil && !model.Role(*role).Valid() {
		issues.add("role", CodeInvalidEnum, "role must be admin or user")
	}
	return issues.asError()
}

// PartyInput is the raw payload for creating a party. Document, Phone and
// Address.PostalCode are normalized in place before the length checks run.
type PartyInput struct {
	Kind     string
	Name     string
	Document string
	Email    string
	Phone    string
	Address  AddressInput
}

// AddressInput is the raw address payload.
type AddressInput struct {
	PostalCode string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
}

// Party validates a party creation payload and returns the normalized
// input. Structural issues and the document cardinality refinement are
// reported together in one pass.
func Party(in PartyInput) (PartyInput, error) {
	issues := Issues{}

	in.Document = Digits(in.Document)
	in.Phone = Digits(in.Phone)
	in.Address.PostalCode = Digits(in.Address.PostalCode)

	kind := model.PartyKind(in.Kind)
	if !kind.Valid() {
		issues.add("kind", CodeInvalidEnum, "kind must be PF or PJ")
	}
	if len(in.Name) < 3 {
		issues.add("name", CodeTooShort, "name must have at least 3 characters")
	}
	if in.Email != "" && !validEmail(in.Email) {
		issues.add("email", CodeInvalidEmail, "email must be a valid address")
	}
	validateAddress(issues, in.Address)

	// Cardinality refinement runs in the same pass, keyed on the kind.
	if issue := CheckDocument(kind, in.Document); issue != nil {
		issues["document"] = append(issues["document"], *issue)
	}

	return in, issues.asError()
}

func validateAddress(issues Issues, a AddressInput) {
	if issue := CheckPostalCode(a.PostalCode); issue != nil {
		issues["address.postal_code"] = append(issues["address.postal_code"], *issue)
	}
	if len(a.Street) < 3 {
		issues.add("address.street", CodeTooShort, "street must have at least 3 characters")
	}
	if a.Number == "" {
		issues.add("address.number", CodeRequired, "number is required")
	}
	if len(a.District) < 2 {
		issues.add("address.district", CodeTooShort, "district must have at least 2 characters")
	}
	if len(a.City) < 2 {
		issues.add("address.city", CodeTooShort, "city must have at least 2 characters")
	}
	if !model.ValidState(a.State) {
		issues.add("address.state", CodeInvalidEnum, "state must be a valid two-letter code")
	}
}

// PartyPatchInput is the raw payload for a partial party update. Nil fields
// are left untouched.
type PartyPatchInput struct {
	Kind     *string
	Name     *string
	Document *string
	Email    *string
	Phone    *string
	Address  *AddressInput
}

// PartyPatch validates the fields present in a partial update and returns
// the normalized patch. The document-vs-kind cardinality check against the
// stored record happens in the service, where the effective kind is known.
func PartyPatch(in PartyPatchInput) (PartyPatchInput, error) {
	issues := Issues{}

	if in.Document != nil {
		d := Digits(*in.Document)
		in.Document = &d
	}
	if in.Phone != nil {
		p := Digits(*in.Phone)
		in.Phone = &p
	}
	if in.Kind != nil && !model.PartyKind(*in.Kind).Valid() {
		issues.add("kind", CodeInvalidEnum, "kind must be PF or PJ")
	}
	if in.Name != nil && len(*in.Name) < 3 {
		issues.add("name", CodeTooShort, "name must have at least 3 characters")
	}
	if in.Email != nil && *in.Email != "" && !validEmail(*in.Email) {
		issues.add("email", CodeInvalidEmail, "email must be a valid address")
	}
	if in.Address != nil {
		a := *in.Address
		a.PostalCode = Digits(a.PostalCode)
		in.Address = &a
		validateAddress(issues, a)
	}

	return in, issues.asError()
}
