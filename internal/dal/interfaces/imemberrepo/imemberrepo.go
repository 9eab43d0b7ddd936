package imemberrepo

import (
	"context"

	"github.com/y00ns00/cafe-mobile-order/internal/service/models/member"
)

// IMemberRepository is an interface for the member postgres repository.
type IMemberRepository interface {
	GetByID(ctx context.Context, id int64) (*member.Member, error)
}
