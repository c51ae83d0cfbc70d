package endpoint

import (
	"net/url"
	"strings"
)

// GraphQLPath is where the backend serves its trip GraphQL API.
const GraphQLPath = "/otp/transmodel/v3"

// Resolve returns configured unchanged when it is an absolute URL, otherwise
// it is treated as a path below origin.
func Resolve(configured, origin string) string {
	if IsAbsolute(configured) {
		return configured
	}
	path := configured
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(origin, "/") + path
}

// IsAbsolute reports whether s carries both a scheme and a host.
func IsAbsolute(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}

// GraphQLURL appends the GraphQL path to a resolved base URL.
func GraphQLURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, GraphQLPath) {
		return base
	}
	// a base that already names the otp root only needs the API suffix
	if strings.HasSuffix(base, "/otp") {
		return base + strings.TrimPrefix(GraphQLPath, "/otp")
	}
	return base + GraphQLPath
}
