package logs

import (
	"commerce-api/internal/domain/entity"
)

const legacyPostType = "edd_log"

// legacyPost carries the content record shape older callers read logs through.
type legacyPost struct {
	postAuthor          int64
	postDate            string
	postDateGMT         string
	postContent         string
	postTitle           string
	postExcerpt         string
	postStatus          string
	commentStatus       string
	pingStatus          string
	postPassword        string
	postName            string
	toPing              string
	pinged              string
	postModified        string
	postModifiedGMT     string
	postContentFiltered string
	postParent          int64
	guid                string
	menuOrder           int64
	postMimeType        string
	commentCount        int64
	filter              string
	postType            string
}

func defaultLegacyPost() legacyPost {
	return legacyPost{
		postDate:        entity.ZeroDate,
		postDateGMT:     entity.ZeroDate,
		postStatus:      "publish",
		commentStatus:   "open",
		pingStatus:      "open",
		postModified:    entity.ZeroDate,
		postModifiedGMT: entity.ZeroDate,
	}
}

type accessor struct {
	get func(l *RequestLog) interface{}
	set func(l *RequestLog, v interface{}) bool
}

func stringProp(field func(l *RequestLog) *string) accessor {
	return accessor{
		get: func(l *RequestLog) interface{} { return *field(l) },
		set: func(l *RequestLog, v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			*field(l) = s
			return true
		},
	}
}

func intProp(field func(l *RequestLog) *int64) accessor {
	return accessor{
		get: func(l *RequestLog) interface{} { return *field(l) },
		set: func(l *RequestLog, v interface{}) bool {
			switch n := v.(type) {
			case int64:
				*field(l) = n
			case int:
				*field(l) = int64(n)
			case int32:
				*field(l) = int64(n)
			default:
				return false
			}
			return true
		},
	}
}

func floatProp(field func(l *RequestLog) *float64) accessor {
	return accessor{
		get: func(l *RequestLog) interface{} { return *field(l) },
		set: func(l *RequestLog, v interface{}) bool {
			switch f := v.(type) {
			case float64:
				*field(l) = f
			case float32:
				*field(l) = float64(f)
			default:
				return false
			}
			return true
		},
	}
}

// properties holds every declared property. Keys not listed here cannot be
// read or written.
var properties = map[string]accessor{
	"id":           intProp(func(l *RequestLog) *int64 { return &l.row.ID }),
	"user_id":      intProp(func(l *RequestLog) *int64 { return &l.row.UserID }),
	"api_key":      stringProp(func(l *RequestLog) *string { return &l.row.APIKey }),
	"token":        stringProp(func(l *RequestLog) *string { return &l.row.Token }),
	"version":      stringProp(func(l *RequestLog) *string { return &l.row.Version }),
	"request":      stringProp(func(l *RequestLog) *string { return &l.row.Request }),
	"error":        stringProp(func(l *RequestLog) *string { return &l.row.Error }),
	"ip":           stringProp(func(l *RequestLog) *string { return &l.row.IP }),
	"time":         floatProp(func(l *RequestLog) *float64 { return &l.row.Time }),
	"date_created": stringProp(func(l *RequestLog) *string { return &l.row.DateCreated }),

	"post_author":           intProp(func(l *RequestLog) *int64 { return &l.legacy.postAuthor }),
	"post_date":             stringProp(func(l *RequestLog) *string { return &l.legacy.postDate }),
	"post_date_gmt":         stringProp(func(l *RequestLog) *string { return &l.legacy.postDateGMT }),
	"post_content":          stringProp(func(l *RequestLog) *string { return &l.legacy.postContent }),
	"post_title":            stringProp(func(l *RequestLog) *string { return &l.legacy.postTitle }),
	"post_excerpt":          stringProp(func(l *RequestLog) *string { return &l.legacy.postExcerpt }),
	"post_status":           stringProp(func(l *RequestLog) *string { return &l.legacy.postStatus }),
	"comment_status":        stringProp(func(l *RequestLog) *string { return &l.legacy.commentStatus }),
	"ping_status":           stringProp(func(l *RequestLog) *string { return &l.legacy.pingStatus }),
	"post_password":         stringProp(func(l *RequestLog) *string { return &l.legacy.postPassword }),
	"post_name":             stringProp(func(l *RequestLog) *string { return &l.legacy.postName }),
	"to_ping":               stringProp(func(l *RequestLog) *string { return &l.legacy.toPing }),
	"pinged":                stringProp(func(l *RequestLog) *string { return &l.legacy.pinged }),
	"post_modified":         stringProp(func(l *RequestLog) *string { return &l.legacy.postModified }),
	"post_modified_gmt":     stringProp(func(l *RequestLog) *string { return &l.legacy.postModifiedGMT }),
	"post_content_filtered": stringProp(func(l *RequestLog) *string { return &l.legacy.postContentFiltered }),
	"post_parent":           intProp(func(l *RequestLog) *int64 { return &l.legacy.postParent }),
	"guid":                  stringProp(func(l *RequestLog) *string { return &l.legacy.guid }),
	"menu_order":            intProp(func(l *RequestLog) *int64 { return &l.legacy.menuOrder }),
	"post_mime_type":        stringProp(func(l *RequestLog) *string { return &l.legacy.postMimeType }),
	"comment_count":         intProp(func(l *RequestLog) *int64 { return &l.legacy.commentCount }),
	"filter":                stringProp(func(l *RequestLog) *string { return &l.legacy.filter }),
	"post_type":             stringProp(func(l *RequestLog) *string { return &l.legacy.postType }),
}

// getters compute a value instead of reading the stored property. Their
// result bypasses field filters.
var getters = map[string]func(l *RequestLog) interface{}{
	"id": func(l *RequestLog) interface{} { return l.row.ID },
}

// setters sanitize before assigning. The id is assigned by the store only.
var setters = map[string]func(l *RequestLog, v interface{}) bool{
	"id": func(*RequestLog, interface{}) bool { return false },
}

func init() {
	for column := range entity.APIRequestLogColumns {
		column := column
		setters[column] = func(l *RequestLog, v interface{}) bool {
			clean := sanitizeColumns(map[string]interface{}{column: v})
			return properties[column].set(l, clean[column])
		}
	}
}
