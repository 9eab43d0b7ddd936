package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/y00ns00/cafe-mobile-order/internal/dal/postgres"
	"github.com/y00ns00/cafe-mobile-order/internal/service/apperrors"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/member"
)

// MemberDal represents the member data access layer model.
type MemberDal struct {
	Id           int64     `db:"id"`
	Name         string    `db:"name"`
	PhoneNumber  string    `db:"phone_number"`
	BirthDate    string    `db:"birth_date"`
	Status       string    `db:"status"`
	RegisteredAt time.Time `db:"registered_at"`
}

// ToModel converts MemberDal to the service layer Member model.
func (m *MemberDal) ToModel() *member.Member {
	return &member.Member{
		ID:           m.Id,
		Name:         m.Name,
		PhoneNumber:  m.PhoneNumber,
		BirthDate:    m.BirthDate,
		Status:       member.Status(m.Status),
		RegisteredAt: m.RegisteredAt,
	}
}

type PostgresMemberRepository struct {
	conn postgres.DBTX
}

func NewPostgresMemberRepository(conn postgres.DBTX) *PostgresMemberRepository {
	return &PostgresMemberRepository{
		conn: conn,
	}
}

// GetByID retrieves a member by id.
func (r *PostgresMemberRepository) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	query, args, err := sq.Select(
		"id",
		"name",
		"phone_number",
		"birth_date",
		"status",
		"registered_at",
	).
		From("members").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal MemberDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.PhoneNumber,
		&dal.BirthDate,
		&dal.Status,
		&dal.RegisteredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.Newf(apperrors.KindNotFound, "member not found, id: %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return dal.ToModel(), nil
}
