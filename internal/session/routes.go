package session

// Route paths the gate redirects to
const (
	RootPath      = "/"
	LoginPath     = "/login"
	LoginHTMLPath = "/login.html"
	DashboardPath = "/dashboard"
)

// Secured page paths
const (
	CreatePath   = "/create"
	ListPath     = "/list"
	ValidatePath = "/validate"
)

var publicPaths = map[string]struct{}{
	RootPath:      {},
	LoginPath:     {},
	LoginHTMLPath: {},
}

// IsPublic reports whether path can be visited without an identity
func IsPublic(path string) bool {
	_, ok := publicPaths[path]
	return ok
}
