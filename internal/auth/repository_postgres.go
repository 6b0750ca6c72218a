package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresOperatorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresOperatorRepository(db *pgxpool.Pool) *PostgresOperatorRepository {
	return &PostgresOperatorRepository{db: db}
}

func (r *PostgresOperatorRepository) Save(op *Operator) error {
	if op.ID == "" {
		op.ID = uuid.New().String()
	}

	query := `
		INSERT INTO operators (id, name, email, password, role)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(context.Background(), query,
		op.ID, op.Name, op.Email, op.Password, op.Role,
	)
	return err
}

func (r *PostgresOperatorRepository) ExistsByEmail(email string) (bool, error) {
	query := `SELECT 1 FROM operators WHERE email=$1 LIMIT 1`
	row := r.db.QueryRow(context.Background(), query, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresOperatorRepository) FindByEmail(email string) (*Operator, error) {
	query := `
		SELECT id, name, email, password, role
		FROM operators WHERE email=$1
	`
	row := r.db.QueryRow(context.Background(), query, email)

	op := &Operator{}
	if err := row.Scan(&op.ID, &op.Name, &op.Email, &op.Password, &op.Role); err != nil {
		return nil, errors.New("operator not found")
	}
	return op, nil
}
