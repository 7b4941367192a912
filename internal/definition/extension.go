package definition

// Binder is the part of every extension contract that establishes the
// back-reference to the owning definition at resolution time.
type Binder interface {
	BindOwner(d *Definition)
}

// Extension is the common base embedded by extension variants. It holds
// the non-owning back-reference to the definition the variant was
// resolved for.
type Extension struct {
	owner *Definition
}

// BindOwner records the owning definition. Called once, by Resolve.
func (e *Extension) BindOwner(d *Definition) { e.owner = d }

// Owner returns the explicit definition when supplied, else the bound
// owner.
func (e *Extension) Owner(explicit *Definition) *Definition {
	if explicit != nil {
		return explicit
	}
	return e.owner
}
