// Package clientip resolves the address of the client behind a request.
//
// Proxy headers are only consulted when listed as trusted, in priority order;
// the connection's RemoteAddr is the fallback. Values are validated and
// normalised with net.ParseIP, so a garbage header never becomes an address.
//
//	r.Use(clientip.Middleware("CF-Connecting-IP", "X-Forwarded-For"))
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
