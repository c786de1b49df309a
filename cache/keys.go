package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
)

// ListFilter enumerates the filter fields recognized by list endpoints.
// Zero values mean "not filtered". Using a fixed struct instead of an
// ad hoc map keeps key construction deterministic.
type ListFilter struct {
	CourseID  uint     `json:"course,omitempty"`
	StudentID uint     `json:"student,omitempty"`
	Status    string   `json:"status,omitempty"`
	Search    string   `json:"search,omitempty"`
	Batch     string   `json:"batch,omitempty"`
	PriceMin  *float64 `json:"price_min,omitempty"`
	PriceMax  *float64 `json:"price_max,omitempty"`
}

// SortSpec describes the ordering of a list query.
type SortSpec struct {
	Field string `json:"field,omitempty"`
	Desc  bool   `json:"desc,omitempty"`
}

// listParams is the canonical serialized form of one list query.
type listParams struct {
	Filter ListFilter `json:"filter"`
	Sort   SortSpec   `json:"sort"`
	Page   int        `json:"page"`
	Limit  int        `json:"limit"`
}

// ListKey returns the cache key for a list read of resource. Logically
// identical queries always produce the same key: the params struct has
// a fixed field set and encoding/json emits struct fields in
// declaration order, so serialization is canonical. The digest keeps
// keys fixed-size regardless of filter contents.
func ListKey(resource string, filter ListFilter, sort SortSpec, page, limit int) string {
	return fmt.Sprintf("%s:list:%s", resource, digest(listParams{
		Filter: filter,
		Sort:   sort,
		Page:   page,
		Limit:  limit,
	}))
}

// UserListKey is ListKey scoped to the acting user. Per-user views must
// carry the user id so a shared cache never leaks one user's page to
// another.
func UserListKey(resource string, userID uint, filter ListFilter, sort SortSpec, page, limit int) string {
	return fmt.Sprintf("%s:user:%d:list:%s", resource, userID, digest(listParams{
		Filter: filter,
		Sort:   sort,
		Page:   page,
		Limit:  limit,
	}))
}

// EntityKey returns the cache key for a single-entity read.
func EntityKey(resource string, id uint) string {
	return fmt.Sprintf("%s:id:%d", resource, id)
}

// ResourcePattern matches every key derived from resource.
func ResourcePattern(resource string) string {
	return resource + ":*"
}

func digest(params listParams) string {
	data, err := json.Marshal(params)
	if err != nil {
		// listParams contains no unmarshalable types; treated as unreachable
		return "invalid"
	}
	return fmt.Sprintf("%x", md5.Sum(data))
}
