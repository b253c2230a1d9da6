package logs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/sanitize"
)

// RequestLog is one API request log with property style access.
type RequestLog struct {
	service *Service
	row     entity.APIRequestLog
	legacy  legacyPost
	deleted bool
}

func newRequestLog(s *Service) *RequestLog {
	return &RequestLog{
		service: s,
		legacy:  defaultLegacyPost(),
	}
}

func (l *RequestLog) fill(row *entity.APIRequestLog) {
	l.row = *row

	l.legacy.postAuthor = l.row.UserID
	l.legacy.postDate = l.row.DateCreated
	l.legacy.postDateGMT = l.row.DateCreated
	l.legacy.postExcerpt = l.row.Request
	l.legacy.postContent = l.row.Error
	l.legacy.postType = legacyPostType
}

// ID is 0 until the log was loaded or created
func (l *RequestLog) ID() int64 {
	return l.row.ID
}

// Exists reports whether the wrapper is backed by a stored row
func (l *RequestLog) Exists() bool {
	return l.row.ID != 0 && !l.deleted
}

// Deleted reports whether Delete succeeded on this wrapper
func (l *RequestLog) Deleted() bool {
	return l.deleted
}

// Record returns a copy of the stored columns
func (l *RequestLog) Record() entity.APIRequestLog {
	return l.row
}

// Get returns the value of a property. Unknown keys return (nil, false).
func (l *RequestLog) Get(key string) (interface{}, bool) {
	key = sanitize.Key(key)

	if getter, ok := getters[key]; ok {
		return getter(l), true
	}

	if prop, ok := properties[key]; ok {
		return l.service.filterField(key, prop.get(l), l.row.ID), true
	}

	return nil, false
}

// Set assigns a declared property. It returns false when the key is not
// declared or the value is rejected.
func (l *RequestLog) Set(key string, value interface{}) bool {
	key = sanitize.Key(key)

	prop, ok := properties[key]
	if !ok {
		return false
	}

	if setter, ok := setters[key]; ok {
		return setter(l, value)
	}

	return prop.set(l, value)
}

// IsSet reports whether a declared property holds a non-empty value
func (l *RequestLog) IsSet(key string) bool {
	prop, ok := properties[sanitize.Key(key)]
	if !ok {
		return false
	}

	switch v := prop.get(l).(type) {
	case string:
		return v != ""
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return v != nil
	}
}

// ToMap returns every declared property keyed by name
func (l *RequestLog) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, len(properties))
	for key, prop := range properties {
		out[key] = prop.get(l)
	}
	return out
}

// Create stores a new log from args and adopts the id assigned by the store.
func (l *RequestLog) Create(ctx context.Context, args repository.Fields) (int64, error) {
	if l.row.ID != 0 {
		return 0, ErrAlreadyCreated
	}

	s := l.service

	args = s.filterInsert(copyFields(args))
	args = sanitizeColumns(args)

	for _, action := range s.preInsert {
		action(args)
	}

	id, err := s.store.Insert(ctx, args)
	if err == nil && id != 0 {
		l.row.ID = id
		l.merge(args)
	}

	for _, action := range s.postInsert {
		action(args, l.row.ID)
	}

	if err != nil {
		s.logger.Error("Failed to create API request log", zap.Error(err))
		return 0, fmt.Errorf("failed to create api request log: %w", err)
	}

	s.logger.Debug("API request log created", zap.Int64("id", id))
	return id, nil
}

// Update writes args to the stored row. It returns false for a wrapper
// without a row.
func (l *RequestLog) Update(ctx context.Context, args repository.Fields) (bool, error) {
	if !l.Exists() {
		return false, nil
	}

	clean := sanitizeColumns(args)

	updated, err := l.service.store.Update(ctx, l.row.ID, clean)
	if err != nil {
		return false, fmt.Errorf("failed to update api request log %d: %w", l.row.ID, err)
	}

	if updated {
		l.merge(clean)
	}
	return updated, nil
}

// Delete removes the stored row. The wrapper cannot be written afterwards.
func (l *RequestLog) Delete(ctx context.Context) (bool, error) {
	if !l.Exists() {
		return false, nil
	}

	removed, err := l.service.store.Delete(ctx, l.row.ID)
	if err != nil {
		return false, fmt.Errorf("failed to delete api request log %d: %w", l.row.ID, err)
	}

	l.deleted = removed
	return removed, nil
}

func (l *RequestLog) merge(args repository.Fields) {
	for key, value := range args {
		if prop, ok := properties[key]; ok && key != "id" {
			prop.set(l, value)
		}
	}
}

func copyFields(args repository.Fields) repository.Fields {
	out := make(repository.Fields, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
