package inits

import (
	"fmt"
	"jwt-auth-service/app/server/constants"
	"jwt-auth-service/app/server/models"
	"jwt-auth-service/app/server/password"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func DB(conn string, hasher *password.Hasher, adminPassword string) (db *gorm.DB, err error) {
	// 打开连接，唯一约束冲突转换为 gorm.ErrDuplicatedKey
	if db, err = gorm.Open(postgres.Open(conn), &gorm.Config{
		TranslateError: true,
	}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db, hasher, adminPassword); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Authority{},
		&models.User{},
	)
}

func initData(db *gorm.DB, hasher *password.Hasher, adminPassword string) (err error) {
	// 初始化权限，已存在的跳过
	authorities := []models.Authority{
		{Name: constants.AuthorityUser},
		{Name: constants.AuthorityAdmin},
	}
	if err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authorities).Error; err != nil {
		return fmt.Errorf("failed to create authorities: %w", err)
	}

	// 查询现有记录数量
	var counter int64

	// 初始化用户
	if err = db.Model(&models.User{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get user count: %w", err)
	} else if counter == 0 { // 没有任何用户，添加初始管理员
		// 创建密码
		var hash string
		if hash, err = hasher.Hash(adminPassword); err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}

		var admin *models.User
		if admin, err = models.NewUser(constants.DefaultAdminUsername, hash, constants.DefaultAdminNickname, authorities...); err != nil {
			return fmt.Errorf("failed to build admin user: %w", err)
		}

		// 插入记录，关联已存在的权限
		if err = db.Omit("Authorities.*").Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
