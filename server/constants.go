package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// ctxtRequestID describes request ID in the context.
	ctxtRequestID muxKeys = "request_id"

	// queryBooking describes booking credential of validation request.
	queryBooking = "booking"
	// queryOpaqueKey describes booking credential of proxy requests.
	queryOpaqueKey = "opaqueBookingKey"
	// queryHouse describes house name.
	queryHouse = "house"
	// queryEntity describes entity ID.
	queryEntity = "entity"
	// queryType describes read request type.
	queryType = "type"

	// headerRequestID describes request ID header.
	headerRequestID = "X-Request-ID"
	// proxyCacheControl is set on successful reads.
	proxyCacheControl = "s-maxage=30, stale-while-revalidate"

	// routeAPI describes base api prefix.
	routeAPI = "/api"
	// routePublic describes public api prefix.
	routePublic = "/pub"

	// maxBodySize limits command body.
	maxBodySize = 1 << 16
)
