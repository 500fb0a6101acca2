package router

import (
	"errors"
	"fmt"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/detail"
)

// ErrInvalidTransition is returned when an explicit transition is fired from
// a page that does not allow it.
var ErrInvalidTransition = errors.New("invalid page transition")

// Page is one screen of the dashboard
type Page string

const (
	PageLogin         Page = "login"
	PageRegister      Page = "register"
	PageRoleSelection Page = "role-selection"
	PageDashboard     Page = "dashboard"
	PageDetail        Page = "detail"
)

// Auth is what the guards need to know about the session user
type Auth interface {
	HasUser() bool
	IsAuthenticated() bool
}

// Rule redirects to Target when Match holds. Rules are evaluated in order
// and the first match wins.
type Rule struct {
	Name   string
	Match  func(a Auth, p Page) bool
	Target Page
}

// DefaultRules gate every page on the auth state.
var DefaultRules = []Rule{
	{
		Name:   "no-user",
		Match:  func(a Auth, p Page) bool { return !a.HasUser() && p != PageLogin && p != PageRegister },
		Target: PageLogin,
	},
	{
		Name:   "needs-role",
		Match:  func(a Auth, p Page) bool { return a.HasUser() && !a.IsAuthenticated() },
		Target: PageRoleSelection,
	},
	{
		Name:   "authenticated",
		Match:  func(a Auth, p Page) bool { return a.IsAuthenticated() && p != PageDashboard && p != PageDetail },
		Target: PageDashboard,
	},
}

// Router is the page state machine. It is not safe for concurrent use; the
// owning session serialises access.
type Router struct {
	rules     []Rule
	page      Page
	selection *detail.Selection
	detail    *detail.CardDetail
}

// New starts on the login page
func New(rules []Rule) *Router {
	if rules == nil {
		rules = DefaultRules
	}
	return &Router{rules: rules, page: PageLogin}
}

func (r *Router) Page() Page {
	return r.page
}

// Selection returns the opened entity and its detail while on the detail page
func (r *Router) Selection() (*detail.Selection, *detail.CardDetail) {
	return r.selection, r.detail
}

// Sync applies the guard rules to the current page and returns the name of
// the rule that fired, or "".
func (r *Router) Sync(a Auth) string {
	for _, rule := range r.rules {
		if rule.Match(a, r.page) {
			r.moveTo(rule.Target)
			return rule.Name
		}
	}
	return ""
}

// ShowRegister moves from login to register
func (r *Router) ShowRegister(a Auth) error {
	return r.fire(a, PageLogin, PageRegister)
}

// ShowLogin moves from register back to login
func (r *Router) ShowLogin(a Auth) error {
	return r.fire(a, PageRegister, PageLogin)
}

// RoleSelected moves from role selection to the dashboard
func (r *Router) RoleSelected(a Auth) error {
	return r.fire(a, PageRoleSelection, PageDashboard)
}

// Open shows the detail page for sel
func (r *Router) Open(a Auth, sel detail.Selection, d detail.CardDetail) error {
	if err := r.fire(a, PageDashboard, PageDetail); err != nil {
		return err
	}
	if r.page == PageDetail {
		r.selection, r.detail = &sel, &d
	}
	return nil
}

// Back returns from the detail page to the dashboard
func (r *Router) Back(a Auth) error {
	return r.fire(a, PageDetail, PageDashboard)
}

func (r *Router) fire(a Auth, from, to Page) error {
	if r.page != from {
		return fmt.Errorf("%w: %s -> %s from %s", ErrInvalidTransition, from, to, r.page)
	}
	r.moveTo(to)
	r.Sync(a)
	return nil
}

func (r *Router) moveTo(p Page) {
	r.page = p
	if p != PageDetail {
		r.selection, r.detail = nil, nil
	}
}
