package models

type Authority struct {
	Name string `gorm:"column:authority_name;size:50;primaryKey"` // 例如 ROLE_USER
}

func (Authority) TableName() string {
	return "authority"
}
