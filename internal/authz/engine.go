package authz

import (
	"context"

	"steeple/internal/models"
	"steeple/internal/observability"
)

// Ledger is the authoritative source for all authorization decisions. The
// membership repository implements it; tests may stub it.
type Ledger interface {
	// RoleOf looks up the unique membership for the pair. The role is
	// normalized case-insensitively; found is false when no membership
	// exists.
	RoleOf(ctx context.Context, userID, churchID uint) (role Role, found bool, err error)

	// Home returns the identity's own church membership for implicit
	// scoping. The schema permits multiple memberships, so the pick must be
	// deterministic: earliest created_at wins, ties broken by smallest
	// church id, never insertion order of an unordered lookup.
	Home(ctx context.Context, userID uint) (*models.Membership, bool, error)
}

// ContentPolicy parameterizes the tenant-scoped write policy for one entity
// type. One policy type applied uniformly keeps Announcements and Events
// from drifting apart.
type ContentPolicy struct {
	// Entity names the entity type for metrics and error messages.
	Entity string
	// WriterRoles may create/update/delete records of this entity.
	WriterRoles []Role
	// RequiresOwnership additionally restricts update/delete to the
	// record's original creator.
	RequiresOwnership bool
}

// AnnouncementPolicy: any leader of the church may create, update, delete.
var AnnouncementPolicy = ContentPolicy{
	Entity:      "announcement",
	WriterRoles: []Role{RolePastor, RoleDeacon},
}

// EventPolicy: leaders create; only the creator-leader may update or delete.
var EventPolicy = ContentPolicy{
	Entity:            "event",
	WriterRoles:       []Role{RolePastor, RoleDeacon},
	RequiresOwnership: true,
}

func (p ContentPolicy) allows(role Role) bool {
	for _, r := range p.WriterRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Engine answers authorization questions against the ledger.
type Engine struct {
	ledger Ledger
}

// NewEngine returns an Engine backed by the given ledger.
func NewEngine(ledger Ledger) *Engine {
	return &Engine{ledger: ledger}
}

// RoleOf exposes the ledger lookup.
func (e *Engine) RoleOf(ctx context.Context, userID, churchID uint) (Role, bool, error) {
	return e.ledger.RoleOf(ctx, userID, churchID)
}

// IsLeader reports whether the user holds a leader role in the church.
func (e *Engine) IsLeader(ctx context.Context, userID, churchID uint) (bool, error) {
	role, found, err := e.ledger.RoleOf(ctx, userID, churchID)
	if err != nil {
		return false, err
	}
	return found && role.IsLeader(), nil
}

// ScopeChurch returns the church id that tenant-scoped reads must filter
// by. ok is false when the user has no membership anywhere; callers then
// return an empty result set, never an error.
func (e *Engine) ScopeChurch(ctx context.Context, userID uint) (uint, bool, error) {
	home, found, err := e.ledger.Home(ctx, userID)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, nil
	}
	return home.ChurchID, true, nil
}

// AuthorizeCreate decides whether userID may create a record of the policy's
// entity type, and resolves the church the record will belong to.
//
// The target church is derived from the caller's own membership; an explicit
// church in the payload is honored only when it names a church the caller
// leads. A spoofed church id therefore cannot widen the caller's reach.
func (e *Engine) AuthorizeCreate(ctx context.Context, p ContentPolicy, userID uint, explicitChurchID *uint) (uint, error) {
	if explicitChurchID != nil {
		role, found, err := e.ledger.RoleOf(ctx, userID, *explicitChurchID)
		if err != nil {
			return 0, err
		}
		if !found || !p.allows(role) {
			observability.RecordAuthzDecision(p.Entity, "create", "deny")
			return 0, models.NewForbiddenError("You must be a leader of this church to create " + p.Entity + "s")
		}
		observability.RecordAuthzDecision(p.Entity, "create", "allow")
		return *explicitChurchID, nil
	}

	home, found, err := e.ledger.Home(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !found {
		observability.RecordAuthzDecision(p.Entity, "create", "deny")
		return 0, models.NewForbiddenError("You must belong to a church to create " + p.Entity + "s")
	}
	if !p.allows(NormalizeRole(home.Role)) {
		observability.RecordAuthzDecision(p.Entity, "create", "deny")
		return 0, models.NewForbiddenError("You must be a leader of your church to create " + p.Entity + "s")
	}
	observability.RecordAuthzDecision(p.Entity, "create", "allow")
	return home.ChurchID, nil
}

// AuthorizeMutation decides whether userID may update or delete an existing
// record belonging to recordChurchID with the given creator.
func (e *Engine) AuthorizeMutation(ctx context.Context, p ContentPolicy, userID, recordChurchID uint, creatorID *uint) error {
	role, found, err := e.ledger.RoleOf(ctx, userID, recordChurchID)
	if err != nil {
		return err
	}
	if !found || !p.allows(role) {
		observability.RecordAuthzDecision(p.Entity, "mutate", "deny")
		return models.NewForbiddenError("You must be a leader of this church to modify its " + p.Entity + "s")
	}
	if p.RequiresOwnership {
		if creatorID == nil || *creatorID != userID {
			observability.RecordAuthzDecision(p.Entity, "mutate", "deny")
			return models.NewForbiddenError("Only the creator of this " + p.Entity + " can modify it")
		}
	}
	observability.RecordAuthzDecision(p.Entity, "mutate", "allow")
	return nil
}

// RequireMember returns the caller's role in the church, or Forbidden when
// no membership exists. Used by attendance, where any role suffices.
func (e *Engine) RequireMember(ctx context.Context, userID, churchID uint) (Role, error) {
	role, found, err := e.ledger.RoleOf(ctx, userID, churchID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", models.NewForbiddenError("You are not part of this church")
	}
	return role, nil
}
