package specification

import "gorm.io/gorm"

// ByCategory filters knowledge documents by category; empty matches all.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	if s.Category == "" {
		return db
	}
	return db.Where("category = ?", s.Category)
}

// ByDocKeyPrefix selects documents whose key starts with Prefix, e.g. "pdf_stress_".
type ByDocKeyPrefix struct {
	Prefix string
}

func (s ByDocKeyPrefix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doc_key LIKE ?", s.Prefix+"%")
}
