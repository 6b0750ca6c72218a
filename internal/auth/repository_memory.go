package auth

import (
	"errors"

	"github.com/google/uuid"
)

type InMemoryOperatorRepository struct {
	operators map[string]*Operator
}

func NewInMemoryOperatorRepository() *InMemoryOperatorRepository {
	return &InMemoryOperatorRepository{
		operators: make(map[string]*Operator),
	}
}

func (r *InMemoryOperatorRepository) Save(op *Operator) error {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	r.operators[op.Email] = op
	return nil
}

func (r *InMemoryOperatorRepository) ExistsByEmail(email string) (bool, error) {
	_, exists := r.operators[email]
	return exists, nil
}

func (r *InMemoryOperatorRepository) FindByEmail(email string) (*Operator, error) {
	op, ok := r.operators[email]
	if !ok {
		return nil, errors.New("operator not found")
	}
	return op, nil
}
