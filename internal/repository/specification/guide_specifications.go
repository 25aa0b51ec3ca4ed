package specification

import "gorm.io/gorm"

type ByShareToken struct {
	Token string
}

func (s ByShareToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("share_token = ?", s.Token)
}
