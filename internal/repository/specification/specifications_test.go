package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type knowledgeRow struct {
	Id       int
	DocKey   string
	Category string
}

func (knowledgeRow) TableName() string { return "knowledge_documents" }

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost"}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestSpecificationsBuildSQL(t *testing.T) {
	db := dryRunDB(t)

	tests := []struct {
		name  string
		specs []Specification
		want  string
	}{
		{
			name:  "category filter",
			specs: []Specification{ByCategory{Category: "stress"}},
			want:  `SELECT * FROM "knowledge_documents" WHERE category = $1`,
		},
		{
			name:  "empty category matches all",
			specs: []Specification{ByCategory{}},
			want:  `SELECT * FROM "knowledge_documents"`,
		},
		{
			name:  "prefix with ordering",
			specs: []Specification{ByDocKeyPrefix{Prefix: "pdf_sleep_"}, OrderBy{Field: "doc_key"}},
			want:  `SELECT * FROM "knowledge_documents" WHERE doc_key LIKE $1 ORDER BY doc_key ASC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := db.Session(&gorm.Session{})
			for _, s := range tt.specs {
				q = s.Apply(q)
			}
			var rows []knowledgeRow
			stmt := q.Find(&rows).Statement
			assert.Equal(t, tt.want, stmt.SQL.String())
		})
	}
}
