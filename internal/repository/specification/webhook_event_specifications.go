package specification

import "gorm.io/gorm"

type ByEventKey struct {
	EventKey string
}

func (s ByEventKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_key = ?", s.EventKey)
}
