package entity

// DateFormat is the layout of date_created and the legacy post dates
const DateFormat = "2006-01-02 15:04:05"

// ZeroDate is stored when a date was never set
const ZeroDate = "0000-00-00 00:00:00"

// APIRequestLog is one row of the api_request_logs table
type APIRequestLog struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"user_id" db:"user_id"`
	APIKey      string  `json:"api_key" db:"api_key"`
	Token       string  `json:"token" db:"token"`
	Version     string  `json:"version" db:"version"`
	Request     string  `json:"request" db:"request"`
	Error       string  `json:"error" db:"error"`
	IP          string  `json:"ip" db:"ip"`
	Time        float64 `json:"time" db:"time"` // seconds spent serving the request
	DateCreated string  `json:"date_created" db:"date_created"`
}

// APIRequestLogColumns lists the writable columns with their sanitize type tag
var APIRequestLogColumns = map[string]string{
	"user_id":      "%d",
	"api_key":      "%s",
	"token":        "%s",
	"version":      "%s",
	"request":      "%s",
	"error":        "%s",
	"ip":           "%s",
	"time":         "%f",
	"date_created": "%s",
}

// UpdateAPIRequestLogRequest is the body accepted when editing a log
type UpdateAPIRequestLogRequest map[string]interface{}
