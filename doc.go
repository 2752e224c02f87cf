/*

Package respond provides a high-level API for writing HTTP responses
with an easy way to configure how responses look application-wide.

A single [Responder] carries the application-wide configuration: ETag
strategy, JSON formatting, the JSONP callback parameter, the cookie signing
secret, and so on. Per request, [Responder.Context] wraps the
http.ResponseWriter and *http.Request pair in a [*Context] exposing the
response surface handlers actually use:

	status and header management
	body serialization (text, JSON, JSONP)
	content negotiation
	cookie issuance, plain and signed
	static-file delivery
	redirects

Every method that produces output terminates the underlying response exactly
once; later calls return [ErrSent] instead of writing twice.

*/
package respond
