// Package access holds the static role-to-page allow-list and answers
// permission questions against it with a casbin enforcer.
package access

import (
	"fmt"

	"canteen-backend/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

type Resource string

const (
	ResourceDashboard Resource = "dashboard"
	ResourceStaff     Resource = "staff"
	ResourceMenu      Resource = "menu"
	ResourceOrders    Resource = "orders"
	ResourceInventory Resource = "inventory"
	ResourceDiscounts Resource = "discounts"
	ResourceBilling   Resource = "billing"
	ResourceReports   Resource = "reports"
	ResourceFeedback  Resource = "feedback"
	ResourceSettings  Resource = "settings"
)

type Page struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Resource Resource `json:"resource"`
}

// Pages is the console navigation in display order.
var Pages = []Page{
	{Title: "Dashboard", URL: "/", Resource: ResourceDashboard},
	{Title: "Staff Management", URL: "/staff", Resource: ResourceStaff},
	{Title: "Menu Management", URL: "/menu", Resource: ResourceMenu},
	{Title: "Orders", URL: "/orders", Resource: ResourceOrders},
	{Title: "Inventory", URL: "/inventory", Resource: ResourceInventory},
	{Title: "Discounts", URL: "/discounts", Resource: ResourceDiscounts},
	{Title: "Billing", URL: "/billing", Resource: ResourceBilling},
	{Title: "Reports", URL: "/reports", Resource: ResourceReports},
	{Title: "Feedback", URL: "/feedback", Resource: ResourceFeedback},
	{Title: "Settings", URL: "/settings", Resource: ResourceSettings},
}

var policy = map[Resource][]domain.Role{
	ResourceDashboard: domain.Roles,
	ResourceStaff:     {domain.RoleOwner, domain.RoleManager},
	ResourceMenu:      {domain.RoleOwner, domain.RoleManager, domain.RoleChef},
	ResourceOrders:    {domain.RoleOwner, domain.RoleManager, domain.RoleCashier},
	ResourceInventory: {domain.RoleOwner, domain.RoleManager, domain.RoleInventoryHandler},
	ResourceDiscounts: {domain.RoleOwner, domain.RoleManager},
	ResourceBilling:   {domain.RoleOwner, domain.RoleManager, domain.RoleCashier},
	ResourceReports:   {domain.RoleOwner, domain.RoleManager},
	ResourceFeedback:  {domain.RoleOwner, domain.RoleManager},
	ResourceSettings:  {domain.RoleOwner, domain.RoleManager},
}

const rbacModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj
`

type (
	Enforcer interface {
		Allowed(role domain.Role, resource Resource) bool
		AllowedPages(role domain.Role) []Page
	}

	enforcer struct {
		casbin *casbin.Enforcer
	}
)

func NewEnforcer() (Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load access model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	rules := make([][]string, 0)
	for resource, roles := range policy {
		for _, role := range roles {
			rules = append(rules, []string{string(role), string(resource)})
		}
	}
	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("load access policy: %w", err)
	}
	return &enforcer{casbin: e}, nil
}

func (e *enforcer) Allowed(role domain.Role, resource Resource) bool {
	if !role.Valid() {
		return false
	}
	ok, err := e.casbin.Enforce(string(role), string(resource))
	return err == nil && ok
}

func (e *enforcer) AllowedPages(role domain.Role) []Page {
	pages := make([]Page, 0, len(Pages))
	for _, page := range Pages {
		if e.Allowed(role, page.Resource) {
			pages = append(pages, page)
		}
	}
	return pages
}
