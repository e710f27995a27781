package models

// Permission constants
const (
	// Quote permissions
	PermissionQuoteRead  = "quote:read"
	PermissionQuoteWrite = "quote:write"

	// Catalog permissions
	PermissionCatalogRead = "catalog:read"

	// Report permissions
	PermissionReportRead = "report:read"

	// Account permissions
	PermissionChangePassword = "account:change-password"

	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionQuoteRead,
			PermissionQuoteWrite,
			PermissionCatalogRead,
			PermissionReportRead,
			PermissionChangePassword,
			PermissionReadAdmin,
			PermissionWriteAdmin,
		}
	case RoleMerchant:
		return []string{
			PermissionQuoteRead,
			PermissionQuoteWrite,
			PermissionCatalogRead,
			PermissionReportRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
