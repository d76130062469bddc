package shared

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"storeflight/shared/cache"
	"storeflight/shared/constant"
	"storeflight/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into a
// column map suitable for Repository.Update.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []dto.Filter{
			{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the parts into a namespaced cache key.
func BuildCacheKey(parts ...string) string {
	return strings.Join(append([]string{constant.CacheKeyPrefix}, parts...), ":")
}

// BuildCacheKeyWithQuery appends the query params and filter values to the key
// so that every distinct listing gets its own entry.
func BuildCacheKeyWithQuery(base string, params dto.QueryParams, filter dto.FilterGroup) string {
	key := fmt.Sprintf("%s:page=%d:limit=%d:sort=%s:%s", BuildCacheKey(base), params.Page, params.Limit, params.SortBy, params.SortDir)

	_, args := filter.GetWhereClause()
	if len(args) == 0 {
		return key
	}

	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		key += fmt.Sprintf(":%s=%v", name, args[name])
	}

	return key
}

// InvalidateCaches clears every key built from the given bases, including
// the per-query variants.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, bases ...string) {
	for _, base := range bases {
		pattern := BuildCacheKey(base) + constant.Asterix

		if err := redisCache.Clear(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache")
		}
	}
}
