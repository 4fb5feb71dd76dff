package common

const (
	// LogSystemToken describes system log entry.
	LogSystemToken = "system"
	// LogProviderToken describes provider log entry.
	LogProviderToken = "provider"
	// LogBookingToken describes booking identifier log entry.
	LogBookingToken = "booking"
	// LogHouseToken describes house log entry.
	LogHouseToken = "house"
	// LogEntityToken describes smart-home entity log entry.
	LogEntityToken = "entity"
	// LogCategoryToken describes permission category log entry.
	LogCategoryToken = "category"
	// LogCommandToken describes device command log entry.
	LogCommandToken = "cmd"
	// LogAccessToken describes access level log entry.
	LogAccessToken = "access"
	// LogURLToken describes URL log entry.
	LogURLToken = "url"
	// LogIPToken describes caller IP log entry.
	LogIPToken = "ip"
	// LogRequestToken describes request ID log entry.
	LogRequestToken = "request_id"
)

const (
	// LogErrorToken describes error log entry.
	LogErrorToken = "error"
	// LogFileToken describes file log entry.
	LogFileToken = "file"
	// LogFieldToken describes field log entry.
	LogFieldToken = "field"
	// LogNameToken describes name log entry.
	LogNameToken = "name"
)
