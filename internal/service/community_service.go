package service

import (
	"context"
	"fmt"
	"log/slog"

	"toolshare/internal/model"
	"toolshare/internal/pkg"
	"toolshare/internal/repository/mysql"

	"gorm.io/gorm"
)

// Notifier 邀请通知，失败不影响主流程
type Notifier func(toEmail, communityName string) error

type CommunityService struct {
	repo       *mysql.CommunityRepository
	inviteRepo *mysql.InvitationRepository
	userRepo   *mysql.UserRepository
	notify     Notifier
}

func NewCommunityService(db *gorm.DB, ref *mysql.RefLookup, notify Notifier) *CommunityService {
	return &CommunityService{
		repo:       &mysql.CommunityRepository{DB: db, Ref: ref},
		inviteRepo: &mysql.InvitationRepository{DB: db, Ref: ref},
		userRepo:   &mysql.UserRepository{DB: db},
		notify:     notify,
	}
}

func (s *CommunityService) CreateCommunity(ctx context.Context, name string, creatorID uint64) (*model.Community, error) {
	if name == "" {
		return nil, pkg.FieldError("name", "required")
	}
	return s.repo.Create(ctx, name, creatorID)
}

func (s *CommunityService) GetCommunity(ctx context.Context, id uint64) (*model.Community, error) {
	return s.repo.Detail(ctx, id)
}

func (s *CommunityService) GetMemberPermissions(ctx context.Context) ([]model.MemberPermission, error) {
	return s.repo.Permissions(ctx)
}

func (s *CommunityService) GetMyCommunities(ctx context.Context, userID uint64) ([]model.Community, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *CommunityService) CreateInvite(ctx context.Context, communityID uint64, userEmail string) (*model.Invitation, error) {
	if userEmail == "" {
		return nil, pkg.FieldError("email", "required")
	}

	community, err := s.repo.FindByID(ctx, communityID)
	if err != nil {
		return nil, err
	}

	invite, err := s.inviteRepo.Create(ctx, community.ID, userEmail)
	if err != nil {
		return nil, err
	}

	if s.notify != nil {
		if err := s.notify(userEmail, community.Name); err != nil {
			slog.Warn("invite notification failed", "email", userEmail, "error", err)
		}
	}
	return invite, nil
}

// ActionInvite 受理邀请。受理人邮箱必须与邀请邮箱一致，
// 防止任意登录用户兑换别人的邀请。
func (s *CommunityService) ActionInvite(ctx context.Context, inviteID uint64, accepted bool, actingUserID uint64) (*model.Invitation, error) {
	invite, err := s.inviteRepo.FindByID(ctx, inviteID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	if user.Email != invite.UserEmail {
		return nil, fmt.Errorf("%w: invitation addressed to another email", pkg.ErrForbidden)
	}

	return s.inviteRepo.Action(ctx, inviteID, accepted, actingUserID)
}

func (s *CommunityService) GetInvitesByUserEmail(ctx context.Context, userEmail string) ([]model.Invitation, error) {
	return s.inviteRepo.ListByEmail(ctx, userEmail)
}
