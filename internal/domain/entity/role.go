// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Built-in role names. They are seeded on start and cannot be deleted.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleViewer   = "viewer"
)

// Action is one of the four CRUD verbs a permission can grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// IsValid checks if the Action is a valid value.
func (a Action) IsValid() bool {
	return slices.Contains(Actions(), a)
}

// Resource names an API resource guarded by the permission store.
type Resource string

const (
	ResourceProducts   Resource = "products"
	ResourceCategories Resource = "categories"
	ResourceCustomers  Resource = "customers"
	ResourceOrders     Resource = "orders"
	ResourceFAQs       Resource = "faqs"
	ResourceSettings   Resource = "settings"
	ResourceCarousel   Resource = "carousel"
	ResourceQuotes     Resource = "quotes"
	ResourceSEO        Resource = "seo"
	ResourceRoles      Resource = "roles"
	ResourceUsers      Resource = "users"
	ResourceBlogs      Resource = "blogs"
	ResourceMedia      Resource = "media"
)

// Resources lists every guarded resource.
func Resources() []Resource {
	return []Resource{
		ResourceProducts, ResourceCategories, ResourceCustomers, ResourceOrders,
		ResourceFAQs, ResourceSettings, ResourceCarousel, ResourceQuotes,
		ResourceSEO, ResourceRoles, ResourceUsers, ResourceBlogs, ResourceMedia,
	}
}

// IsValid checks if the Resource is a valid value.
func (r Resource) IsValid() bool {
	return slices.Contains(Resources(), r)
}

// Grant holds the allowed actions of one role on one resource.
type Grant struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Allows reports whether the grant includes the action.
func (g Grant) Allows(action Action) bool {
	switch action {
	case ActionCreate:
		return g.Create
	case ActionRead:
		return g.Read
	case ActionUpdate:
		return g.Update
	case ActionDelete:
		return g.Delete
	default:
		return false
	}
}

// Role is a named, admin-editable permission set.
type Role struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Permissions map[Resource]Grant `json:"permissions"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// IsBuiltin reports whether the role is one of the seeded system roles.
func (r *Role) IsBuiltin() bool {
	return IsBuiltinRole(r.Name)
}

// IsBuiltinRole reports whether name is one of the seeded system roles.
func IsBuiltinRole(name string) bool {
	switch name {
	case RoleAdmin, RoleCustomer, RoleViewer:
		return true
	default:
		return false
	}
}

var (
	readOnly   = Grant{Read: true}
	fullAccess = Grant{Create: true, Read: true, Update: true, Delete: true}

	// catalogResources are the storefront-visible resources.
	catalogResources = []Resource{
		ResourceProducts, ResourceCategories, ResourceFAQs, ResourceBlogs,
		ResourceCarousel, ResourceSEO, ResourceSettings,
	}
)

// BuiltinRoles returns the default permission profiles seeded into the role store.
func BuiltinRoles() []*Role {
	admin := make(map[Resource]Grant, len(Resources()))
	for _, res := range Resources() {
		admin[res] = fullAccess
	}

	viewer := make(map[Resource]Grant, len(catalogResources))
	for _, res := range catalogResources {
		viewer[res] = readOnly
	}

	customer := make(map[Resource]Grant, len(catalogResources)+1)
	for _, res := range catalogResources {
		customer[res] = readOnly
	}
	customer[ResourceQuotes] = Grant{Create: true}

	return []*Role{
		{Name: RoleAdmin, Description: "Full administrative access", Permissions: admin},
		{Name: RoleCustomer, Description: "Storefront customer", Permissions: customer},
		{Name: RoleViewer, Description: "Read-only catalog access", Permissions: viewer},
	}
}
