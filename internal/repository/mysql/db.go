package mysql

import (
	"errors"
	"fmt"
	"strings"

	"toolshare/internal/model"
	"toolshare/internal/pkg"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 打开数据库连接。dsn 以 "sqlite:" 开头时走 sqlite（本地开发/测试）。
func InitDB(dsn string) error {
	conf := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var err error
	if strings.HasPrefix(dsn, "sqlite:") {
		DB, err = gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite:")), conf)
	} else {
		DB, err = gorm.Open(mysql.Open(dsn), conf)
	}
	return err
}

// Migrate 自动建表并写入必需的参考数据
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Member{},
		&model.MemberPermission{},
		&model.Invitation{},
		&model.InvitationStatus{},
		&model.Category{},
		&model.SubCategory{},
		&model.Tool{},
		&model.MembershipOutbox{},
	); err != nil {
		return err
	}

	for _, name := range []string{model.PermissionAdmin, model.PermissionMember} {
		p := model.MemberPermission{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}
	for _, name := range []string{model.StatusOpen, model.StatusAccepted, model.StatusRejected, model.StatusExpired} {
		s := model.InvitationStatus{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&s).Error; err != nil {
			return err
		}
	}
	return nil
}

// RefLookup 参考数据按名字解析一次，之后只读
type RefLookup struct {
	perms       map[string]uint64
	statuses    map[string]uint64
	statusNames map[uint64]string
}

// LoadRef 启动时调用。缺少必需的参考行属于配置完整性错误。
func LoadRef(db *gorm.DB) (*RefLookup, error) {
	ref := &RefLookup{
		perms:       make(map[string]uint64),
		statuses:    make(map[string]uint64),
		statusNames: make(map[uint64]string),
	}

	var perms []model.MemberPermission
	if err := db.Find(&perms).Error; err != nil {
		return nil, err
	}
	for _, p := range perms {
		ref.perms[p.Name] = p.ID
	}

	var statuses []model.InvitationStatus
	if err := db.Find(&statuses).Error; err != nil {
		return nil, err
	}
	for _, s := range statuses {
		ref.statuses[s.Name] = s.ID
		ref.statusNames[s.ID] = s.Name
	}

	for _, name := range []string{model.PermissionAdmin, model.PermissionMember} {
		if _, ok := ref.perms[name]; !ok {
			return nil, fmt.Errorf("%w: member permission %q missing", pkg.ErrConfiguration, name)
		}
	}
	for _, name := range []string{model.StatusOpen, model.StatusAccepted, model.StatusRejected, model.StatusExpired} {
		if _, ok := ref.statuses[name]; !ok {
			return nil, fmt.Errorf("%w: invitation status %q missing", pkg.ErrConfiguration, name)
		}
	}
	return ref, nil
}

func (r *RefLookup) PermissionID(name string) uint64 { return r.perms[name] }
func (r *RefLookup) StatusID(name string) uint64     { return r.statuses[name] }
func (r *RefLookup) StatusName(id uint64) string     { return r.statusNames[id] }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.ErrNotFound
	}
	return err
}
