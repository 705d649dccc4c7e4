package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// applyForUpdate 追加行级锁。
// sqlite 不支持 FOR UPDATE，依赖其单写者语义，退化为普通查询。
func applyForUpdate(query *gorm.DB) *gorm.DB {
	if query == nil {
		return query
	}
	if dbDialectName(query) == "sqlite" {
		return query
	}
	return query.Clauses(clause.Locking{Strength: "UPDATE"})
}
