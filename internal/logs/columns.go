package logs

import (
	"commerce-api/internal/domain/entity"
	"commerce-api/internal/domain/repository"
	"commerce-api/internal/sanitize"
)

// columnDefaults are used when a numeric value does not validate
var columnDefaults = map[string]interface{}{
	"user_id": int64(0),
	"time":    float64(0),
}

// sanitizeColumns cleans args by the type tag of each column. Keys are
// normalised and the read-only id is dropped.
func sanitizeColumns(args repository.Fields) repository.Fields {
	data := make(repository.Fields, len(args))

	for rawKey, value := range args {
		key := sanitize.Key(rawKey)
		if key == "" || key == "id" {
			continue
		}

		switch entity.APIRequestLogColumns[key] {
		case "%s":
			data[key] = sanitize.String(value)

		case "%d":
			if n, ok := sanitize.AbsInt(value); ok {
				data[key] = n
			} else {
				data[key] = columnDefaults[key]
			}

		case "%f":
			if f, ok := sanitize.Float(value); ok {
				data[key] = f
			} else {
				data[key] = columnDefaults[key]
			}

		default:
			data[key] = sanitize.String(value)
		}
	}

	return data
}
