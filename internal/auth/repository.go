package auth

// OperatorRepository defines the data-access contract.
// Service depends ONLY on this interface.
type OperatorRepository interface {
	Save(op *Operator) error
	ExistsByEmail(email string) (bool, error)
	FindByEmail(email string) (*Operator, error)
}
