package navigation

import "strings"

// AppTitle is appended to every page title.
const AppTitle = "Warehouse Workflow System"

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Route is one console view. Params are written as ":name" segments.
type Route struct {
	Name          string `json:"name"`
	Path          string `json:"path"`
	Title         string `json:"title,omitempty"`
	RequiresAuth  bool   `json:"requires_auth"`
	RequiresAdmin bool   `json:"requires_admin,omitempty"`
}

// NotFound is matched when no route fits.
var NotFound = Route{Name: "NotFound", Path: "/*", Title: "Not Found"}

// Routes is ordered; the first match wins, so static segments precede params sharing a prefix.
var Routes = []Route{
	{Name: "Login", Path: LoginPath},
	{Name: "Dashboard", Path: HomePath, Title: "Home", RequiresAuth: true},
	{Name: "PurchaseOrderList", Path: "/purchase", Title: "Purchase Orders", RequiresAuth: true},
	{Name: "PurchaseOrderImport", Path: "/purchase/import", Title: "Import Purchase Orders", RequiresAuth: true},
	{Name: "PurchaseOrderDetail", Path: "/purchase/:id", Title: "Purchase Order Detail", RequiresAuth: true},
	{Name: "WorkflowTasks", Path: "/workflow/tasks", Title: "My Tasks", RequiresAuth: true},
	{Name: "WorkflowDetail", Path: "/workflow/:id", Title: "Workflow Detail", RequiresAuth: true},
	{Name: "ConfirmationList", Path: "/confirmation", Title: "Confirmations", RequiresAuth: true},
	{Name: "ConfirmationDetail", Path: "/confirmation/:id", Title: "Confirmation Detail", RequiresAuth: true},
	{Name: "OutboundList", Path: "/outbound", Title: "Outbound Orders", RequiresAuth: true},
	{Name: "OutboundImport", Path: "/outbound/import", Title: "Import Outbound Orders", RequiresAuth: true},
	{Name: "OutboundAuditList", Path: "/outbound/audit/list", Title: "Outbound Deletion Records", RequiresAuth: true},
	{Name: "OutboundAuditDetail", Path: "/outbound/audit/detail/:id", Title: "Deletion Record Detail", RequiresAuth: true},
	{Name: "OutboundDetail", Path: "/outbound/:id", Title: "Outbound Order Detail", RequiresAuth: true},
	{Name: "InventoryList", Path: "/inventory", Title: "Inventory", RequiresAuth: true},
	{Name: "InventoryDetail", Path: "/inventory/:id", Title: "Inventory Detail", RequiresAuth: true},
	{Name: "ReportDashboard", Path: "/report", Title: "Report Dashboard", RequiresAuth: true},
	{Name: "UserProfile", Path: "/user/profile", Title: "Profile", RequiresAuth: true},
	{Name: "UserManagement", Path: "/user/management", Title: "User Management", RequiresAuth: true, RequiresAdmin: true},
}

// Match resolves location to a route and its params. The query string and trailing
// slash are ignored. Unknown locations resolve to NotFound with ok false.
func Match(location string) (Route, map[string]string, bool) {
	segments := split(location)
	for _, route := range Routes {
		if params, ok := matchSegments(split(route.Path), segments); ok {
			return route, params, true
		}
	}
	return NotFound, nil, false
}

// PageTitle is the window title shown for a route.
func PageTitle(r Route) string {
	if r.Title == "" {
		return AppTitle
	}
	return r.Title + " - " + AppTitle
}

func split(location string) []string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	location = strings.Trim(location, "/")
	if location == "" {
		return nil
	}
	return strings.Split(location, "/")
}

func matchSegments(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if segments[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}
