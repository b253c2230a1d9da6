package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/infrastructure/database"
)

const apiRequestLogSelect = `
	SELECT id, user_id, api_key, token, version, request, error, ip, time, date_created
	FROM api_request_logs
`

type apiRequestLogRepository struct {
	db     *database.Database
	logger *zap.Logger
	now    func() time.Time
}

// NewAPIRequestLogRepository creates a new API request log repository
func NewAPIRequestLogRepository(db *database.Database, logger *zap.Logger) repository.APIRequestLogRepository {
	return &apiRequestLogRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *apiRequestLogRepository) FindByID(ctx context.Context, id int64) (*entity.APIRequestLog, error) {
	query := apiRequestLogSelect + " WHERE id = " + r.db.Placeholder(1)

	row := r.db.DB.QueryRowContext(ctx, query, id)
	log, err := scanAPIRequestLog(row)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, return nil without error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find api request log by id: %w", err)
	}

	return log, nil
}

func (r *apiRequestLogRepository) FindAll(ctx context.Context, limit int) ([]entity.APIRequestLog, error) {
	query := apiRequestLogSelect + " ORDER BY id DESC LIMIT " + r.db.Placeholder(1)

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list api request logs: %w", err)
	}
	defer rows.Close()

	logs := make([]entity.APIRequestLog, 0)
	for rows.Next() {
		log, err := scanAPIRequestLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan api request log: %w", err)
		}
		logs = append(logs, *log)
	}

	return logs, rows.Err()
}

func (r *apiRequestLogRepository) Insert(ctx context.Context, fields repository.Fields) (int64, error) {
	if _, ok := fields["date_created"]; !ok {
		fields = withField(fields, "date_created", r.now().UTC().Format(entity.DateFormat))
	}
	columns := writableColumns(fields)

	placeholders := make([]string, len(columns))
	values := make([]interface{}, len(columns))
	for i, column := range columns {
		placeholders[i] = r.db.Placeholder(i + 1)
		values[i] = fields[column]
	}

	query := fmt.Sprintf(
		"INSERT INTO api_request_logs (%s) VALUES (%s) RETURNING id",
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	var id int64
	if err := r.db.DB.QueryRowContext(ctx, query, values...).Scan(&id); err != nil {
		r.logger.Error("Failed to save API request log",
			zap.Strings("columns", columns),
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to save api request log: %w", err)
	}

	return id, nil
}

func (r *apiRequestLogRepository) Update(ctx context.Context, id int64, fields repository.Fields) (bool, error) {
	columns := writableColumns(fields)
	if len(columns) == 0 {
		return false, nil
	}

	assignments := make([]string, len(columns))
	values := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		assignments[i] = column + " = " + r.db.Placeholder(i+1)
		values = append(values, fields[column])
	}
	values = append(values, id)

	query := fmt.Sprintf(
		"UPDATE api_request_logs SET %s WHERE id = %s",
		strings.Join(assignments, ", "),
		r.db.Placeholder(len(values)),
	)

	result, err := r.db.DB.ExecContext(ctx, query, values...)
	if err != nil {
		return false, fmt.Errorf("failed to update api request log: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update api request log: %w", err)
	}

	return affected > 0, nil
}

func (r *apiRequestLogRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := "DELETE FROM api_request_logs WHERE id = " + r.db.Placeholder(1)

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete api request log: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete api request log: %w", err)
	}

	return affected > 0, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAPIRequestLog(s scanner) (*entity.APIRequestLog, error) {
	var log entity.APIRequestLog
	err := s.Scan(
		&log.ID,
		&log.UserID,
		&log.APIKey,
		&log.Token,
		&log.Version,
		&log.Request,
		&log.Error,
		&log.IP,
		&log.Time,
		&log.DateCreated,
	)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// writableColumns returns the known columns present in fields in a stable order
func writableColumns(fields repository.Fields) []string {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		if _, ok := entity.APIRequestLogColumns[column]; ok {
			columns = append(columns, column)
		}
	}
	sort.Strings(columns)
	return columns
}

func withField(fields repository.Fields, key string, value interface{}) repository.Fields {
	out := make(repository.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[key] = value
	return out
}
