package middleware

import "net/http"

type routeSetter interface {
	SetRoute(string)
}

type unwrapper interface {
	Unwrap() http.ResponseWriter
}

// WithRoute tags the request/response with the route pattern before executing handler.
// The setter may sit below other writer wrappers, so Unwrap chains are followed.
func WithRoute(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for cur := w; cur != nil; {
			if setter, ok := cur.(routeSetter); ok {
				setter.SetRoute(pattern)
				break
			}
			u, ok := cur.(unwrapper)
			if !ok {
				break
			}
			cur = u.Unwrap()
		}
		next.ServeHTTP(w, r)
	})
}
