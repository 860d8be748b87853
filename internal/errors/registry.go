package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

func doc(code string) string {
	return "https://mdom.dev/docs/errors/" + code
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {Category: CategoryRuntime, Message: "Handle has no referenced node", DocURL: doc("E001")},
	"E002": {Category: CategoryRuntime, Message: "Unknown access variant", DocURL: doc("E002")},
	"E003": {Category: CategoryRuntime, Message: "Unknown item variant", DocURL: doc("E003")},
	"E004": {Category: CategoryRuntime, Message: "Node cannot be mounted here", DocURL: doc("E004")},

	// ============================================
	// Host Errors (E020-E039)
	// ============================================

	"E020": {Category: CategoryHost, Message: "Invalid character in name", DocURL: doc("E020")},
	"E021": {Category: CategoryHost, Message: "Hierarchy request rejected", DocURL: doc("E021")},
	"E022": {Category: CategoryHost, Message: "Selector syntax error", DocURL: doc("E022")},
	"E023": {Category: CategoryHost, Message: "Operation not supported by node", DocURL: doc("E023")},
	"E024": {Category: CategoryHost, Message: "Remote host call failed", DocURL: doc("E024")},

	// ============================================
	// Command Errors (E040-E059)
	// ============================================

	"E040": {Category: CategoryCommand, Message: "Unknown command", DocURL: doc("E040")},
	"E041": {Category: CategoryCommand, Message: "Invalid command payload", DocURL: doc("E041")},

	// ============================================
	// Transport Errors (E060-E079)
	// ============================================

	"E060": {Category: CategoryTransport, Message: "Live server transport failed", DocURL: doc("E060")},
	"E061": {Category: CategoryTransport, Message: "WebSocket message invalid", DocURL: doc("E061")},

	// ============================================
	// Store Errors (E100-E119)
	// ============================================

	"E100": {Category: CategoryStore, Message: "Document not found", DocURL: doc("E100")},
	"E101": {Category: CategoryStore, Message: "Document store I/O failed", DocURL: doc("E101")},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {Category: CategoryConfig, Message: "Invalid configuration file", DocURL: doc("E120")},
	"E121": {Category: CategoryConfig, Message: "Configuration file not found", DocURL: doc("E121")},
	"E122": {Category: CategoryConfig, Message: "Invalid port", DocURL: doc("E122")},
	"E123": {Category: CategoryConfig, Message: "Unknown store kind", DocURL: doc("E123")},
	"E124": {Category: CategoryConfig, Message: "Invalid log level", DocURL: doc("E124")},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {Category: CategoryCLI, Message: "Unknown project template", DocURL: doc("E140")},
	"E141": {Category: CategoryCLI, Message: "File already exists", DocURL: doc("E141")},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
