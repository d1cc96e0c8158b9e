package uniform

import _ "embed"

// FrameSource is the WGSL declaration of the block PackFrame writes. Its arrays are sized by
// the MAX_DIRECTIONAL_LIGHTS shader constant.
//
//go:embed frame.wgsl
var FrameSource string

// ObjectSource is the WGSL declaration of the block PackObject writes.
//
//go:embed object.wgsl
var ObjectSource string

// WGSL type names declared by FrameSource and ObjectSource.
const (
	FrameTypeName  = "FrameUniforms"
	ObjectTypeName = "ObjectUniforms"
)
