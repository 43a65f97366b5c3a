package components

import (
	"github.com/spaghettifunk/virtcam/engine/math"
)

// Projection caches the perspective matrix for a set of parameters. The
// matrix is recomputed from scratch whenever a parameter differs and left
// alone otherwise.
type Projection struct {
	params  math.ProjectionParams
	matrix  math.Mat4
	changed bool
}

func NewProjection(params math.ProjectionParams) *Projection {
	return &Projection{
		params:  params,
		matrix:  math.BuildProjection(params),
		changed: true,
	}
}

// SetParams rebuilds the matrix if params differ from the current ones and
// reports whether it did.
func (p *Projection) SetParams(params math.ProjectionParams) bool {
	if params == p.params {
		return false
	}
	p.params = params
	p.matrix = math.BuildProjection(params)
	p.changed = true
	return true
}

func (p *Projection) Params() math.ProjectionParams {
	return p.params
}

func (p *Projection) GetMatrix() math.Mat4 {
	return p.matrix
}

// Changed reports a rebuild that has not been acknowledged with ClearChanged.
func (p *Projection) Changed() bool {
	return p.changed
}

func (p *Projection) ClearChanged() {
	p.changed = false
}
