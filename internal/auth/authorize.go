package auth

import "github.com/cadastra/cadastra/internal/model"

// Decision is the outcome of an authorization check.
type Decision int

// Authorization outcomes.
const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

// Authorize decides whether the identity in claims satisfies the required
// role set. Pure: no side effects, no state beyond its inputs. An empty
// required set admits any authenticated identity.
func Authorize(claims *Claims, required ...model.Role) Decision {
	if claims == nil {
		return DecisionUnauthenticated
	}
	if len(required) == 0 {
		return DecisionAllow
	}
	for _, role := range required {
		if claims.Role == role {
			return DecisionAllow
		}
	}
	return DecisionForbidden
}
