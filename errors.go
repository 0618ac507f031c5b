package chassis

import "fmt"

// UnmatchedRouteError is raised by the catch-all for a path no installed
// route matched and no exemption covers. It travels down the
// error-controller chain; unhandled, it surfaces as the transport's default
// not-found response.
type UnmatchedRouteError struct {
	Method string
	Path   string
}

func (e *UnmatchedRouteError) Error() string {
	return fmt.Sprintf("chassis: no route for %s %s", e.Method, e.Path)
}

// IntrospectionError wraps a failure to enumerate one unit's descriptors.
// The unit is skipped; registration of other units continues.
type IntrospectionError struct {
	Unit string
	Err  error
}

func (e *IntrospectionError) Error() string {
	return fmt.Sprintf("chassis: introspecting %s: %v", e.Unit, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *IntrospectionError) Unwrap() error {
	return e.Err
}
