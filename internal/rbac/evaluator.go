package rbac

import "go-affiliate-ops/internal/model"

type actionSet map[model.Action]struct{}

// Evaluator answers permission queries against an immutable copy of a Matrix.
// It is safe for concurrent use.
type Evaluator struct {
	grants map[model.Page]map[model.Role]actionSet
}

// NewEvaluator copies m; later changes to m do not affect the evaluator.
func NewEvaluator(m Matrix) *Evaluator {
	grants := make(map[model.Page]map[model.Role]actionSet, len(m))
	for page, roles := range m {
		byRole := make(map[model.Role]actionSet, len(roles))
		for role, actions := range roles {
			set := make(actionSet, len(actions))
			for _, a := range actions {
				set[a] = struct{}{}
			}
			byRole[role] = set
		}
		grants[page] = byRole
	}
	return &Evaluator{grants: grants}
}

// Can reports whether role may perform action on page.
// An empty role means an unauthenticated actor and is always denied.
// Unknown pages and roles missing from a page are denied as well.
func (e *Evaluator) Can(role model.Role, page model.Page, action model.Action) bool {
	if role == "" {
		return false
	}
	roles, ok := e.grants[page]
	if !ok {
		return false
	}
	set, ok := roles[role]
	if !ok {
		return false
	}
	_, ok = set[action]
	return ok
}

// Actions returns the actions role holds on page, in create/read/update/delete order.
func (e *Evaluator) Actions(role model.Role, page model.Page) []model.Action {
	allowed := []model.Action{}
	for _, a := range model.AllActions {
		if e.Can(role, page, a) {
			allowed = append(allowed, a)
		}
	}
	return allowed
}

// Permissions returns every page on which role holds at least one action.
func (e *Evaluator) Permissions(role model.Role) map[model.Page][]model.Action {
	out := make(map[model.Page][]model.Action)
	for page := range e.grants {
		if actions := e.Actions(role, page); len(actions) > 0 {
			out[page] = actions
		}
	}
	return out
}
