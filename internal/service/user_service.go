package service

import (
	"context"
	"errors"

	"toolshare/internal/model"
	"toolshare/internal/pkg"
	"toolshare/internal/repository/mysql"
	"toolshare/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo          *mysql.UserRepository
	communityRepo *mysql.CommunityRepository
	session       *redis.SessionRepository
}

func NewUserService(db *gorm.DB, ref *mysql.RefLookup) *UserService {
	return &UserService{
		repo:          &mysql.UserRepository{DB: db},
		communityRepo: &mysql.CommunityRepository{DB: db, Ref: ref},
		session:       &redis.SessionRepository{},
	}
}

func (s *UserService) Register(ctx context.Context, email, password, firstName, lastName, postcode string) (*model.User, error) {
	if email == "" {
		return nil, pkg.FieldError("email", "required")
	}
	if password == "" {
		return nil, pkg.FieldError("password", "required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     email,
		Password:  string(hash),
		FirstName: firstName,
		LastName:  lastName,
		Postcode:  postcode,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyLogin 校验邮箱密码。不区分用户不存在和密码错误。
func (s *UserService) VerifyLogin(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid email or password")
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*pkg.Pair, error) {
	user, err := s.VerifyLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := pkg.GeneratePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	// 单点登录：覆盖旧 token
	if err := s.session.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.session.DeleteUserToken(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user, string(hash)); err != nil {
		return err
	}
	return s.Logout(userID)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) GetCommunitiesByUserID(ctx context.Context, userID uint64) ([]model.Community, error) {
	return s.communityRepo.ListByUserID(ctx, userID)
}

func (s *UserService) DeleteUserByEmail(ctx context.Context, email string) error {
	return s.repo.DeleteByEmail(ctx, email)
}
