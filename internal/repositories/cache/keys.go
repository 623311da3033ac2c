package cache

import "fmt"

type EntityType string

const (
	EntityBalance EntityType = "balance"
)

type FieldType string

const (
	FieldTotal FieldType = "total"
	FieldLimit FieldType = "limit"
)

// GenerateKey creates a standardized cache key: entity:id:field.
func GenerateKey(entity EntityType, id interface{}, field FieldType) string {
	return fmt.Sprintf("%s:%v:%s", entity, id, field)
}
