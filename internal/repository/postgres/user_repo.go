package postgres

import (
	"context"
	"fmt"

	"job-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (full_name, email_addr, phone_number, password_hash, sex, birth_date, address)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              RETURNING user_id`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		u.FullName, u.EmailAddr, u.PhoneNumber, u.PasswordHash, u.Sex, u.BirthDate.Ptr(), u.Address,
	).Scan(&u.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email_addr) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

func (r *userRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

func (r *userRepo) UpdateContact(ctx context.Context, id int64, c domain.ContactUpdate) error {
	query := `UPDATE users SET full_name = $2, email_addr = $3, phone_number = $4, address = $5
              WHERE user_id = $1`
	tag, err := conn(ctx, r.db).Exec(ctx, query, id, c.FullName, c.EmailAddr, c.PhoneNumber, c.Address)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("update user contact: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("update user contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
