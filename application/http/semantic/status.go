package semantic

type StatusCode int

// Informational 1XX
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.2
var (
	StatusContinue           = add(100, "Continue")
	StatusSwitchingProtocols = add(101, "Switching Protocols")
)

// Successful 2XX
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.3
var (
	StatusOK                   = add(200, "OK")
	StatusCreated              = add(201, "Created")
	StatusAccepted             = add(202, "Accepted")
	StatusNonAuthoritativeInfo = add(203, "Non-Authoritative Information")
	StatusNoContent            = add(204, "No Content")
	StatusResetContent         = add(205, "Reset Content")
	StatusPartialContent       = add(206, "Partial Content")
)

// Redirection 3xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.4
var (
	StatusMultipleChoices   = add(300, "Multiple Choices")
	StatusMovedPermanently  = add(301, "Moved Permanently")
	StatusFound             = add(302, "Found")
	StatusSeeOther          = add(303, "See Other")
	StatusNotModified       = add(304, "Not Modified")
	StatusUseProxy          = add(305, "Use Proxy")
	StatusTemporaryRedirect = add(307, "Temporary Redirect")
	StatusPermanentRedirect = add(308, "Permanent Redirect")
)

// Client Error 4xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.5
var (
	StatusBadRequest           = add(400, "Bad Request")
	StatusUnauthorized         = add(401, "Unauthorized")
	StatusPaymentRequired      = add(402, "Payment Required")
	StatusForbidden            = add(403, "Forbidden")
	StatusNotFound             = add(404, "Not Found")
	StatusMethodNotAllowed     = add(405, "Method Not Allowed")
	StatusNotAcceptable        = add(406, "Not Acceptable")
	StatusProxyAuthRequired    = add(407, "Proxy Authentication Required")
	StatusRequestTimeout       = add(408, "Request Timeout")
	StatusConflict             = add(409, "Conflict")
	StatusGone                 = add(410, "Gone")
	StatusLengthRequired       = add(411, "Length Required")
	StatusPreconditionFailed   = add(412, "Precondition Failed")
	StatusContentTooLarge      = add(413, "Content Too Large")
	StatusURITooLong           = add(414, "URI Too Long")
	StatusUnsupportedMediaType = add(415, "Unsupported Media Type")
	StatusRangeNotSatisfiable  = add(416, "Range Not Satisfiable")
	StatusExpectationFailed    = add(417, "Expectation Failed")
	StatusTeapot               = add(418, "I'm a teapot") // Unused. But I like the joke.
	StatusMisdirectedRequest   = add(421, "Misdirected Request")
	StatusUnprocessableContent = add(422, "Unprocessable Content")
	StatusUpgradeRequired      = add(426, "Upgrade Required")
	StatusTooManyRequests      = add(429, "Too Many Requests")
)

// Server Error 5xx
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15.6
var (
	StatusInternalServerError     = add(500, "Internal Server Error")
	StatusNotImplemented          = add(501, "Not Implemented")
	StatusBadGateway              = add(502, "Bad Gateway")
	StatusServiceUnavailable      = add(503, "Service Unavailable")
	StatusGatewayTimeout          = add(504, "Gateway Timeout")
	StatusHTTPVersionNotSupported = add(505, "HTTP Version Not Supported")
)

var reasonPhrases = make(map[StatusCode]string)

func add(code StatusCode, reason string) StatusCode {
	reasonPhrases[code] = reason
	return code
}

// ReasonPhrase returns the registered phrase, or an empty string for unknown codes.
func (c StatusCode) ReasonPhrase() string {
	return reasonPhrases[c]
}

func (c StatusCode) IsSuccess() bool {
	return c >= 200 && c < 300
}
