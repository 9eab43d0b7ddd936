package membersvc

import (
	"context"

	"github.com/y00ns00/cafe-mobile-order/internal/dal/interfaces/imemberrepo"
	"github.com/y00ns00/cafe-mobile-order/internal/service/models/member"
)

// MemberService is the in-process implementation of the member capability.
type MemberService struct {
	memberRepo imemberrepo.IMemberRepository
}

// option is a function that configures the MemberService.
type option func(*MemberService)

// MustNewMemberService creates a new MemberService.
func MustNewMemberService(opts ...option) *MemberService {
	s := &MemberService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithMemberRepository sets the member repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMemberRepository(repo imemberrepo.IMemberRepository) option {
	return func(s *MemberService) {
		s.memberRepo = repo
	}
}

// GetMember retrieves a member by id.
func (s *MemberService) GetMember(ctx context.Context, memberID int64) (member.Member, error) {
	m, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return member.Member{}, err
	}

	return *m, nil
}
