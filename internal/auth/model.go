package auth

// Operator is the domain entity: a person running the recommendation
// feature, allowed to rebuild models and run evaluations.
type Operator struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     string
}

const (
	RoleOperator = "OPERATOR"
	RoleAdmin    = "ADMIN"
)
