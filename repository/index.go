// Package repository stores the service's rows in PostgreSQL through gorm.
package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// notFound maps gorm's missing-row error to the domain sentinel.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func likePattern(search string) string {
	search = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(search))
	return "%" + search + "%"
}

// uniqueSlug derives a slug from title, suffixing -1, -2... until no row of model uses it.
func uniqueSlug(tx *gorm.DB, model any, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "item"
	}
	result := base
	for i := 1; ; i++ {
		var count int64
		if err := tx.Model(model).Where("slug = ?", result).Count(&count).Error; err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if count == 0 {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}
