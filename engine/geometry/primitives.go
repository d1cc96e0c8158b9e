package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Plane creates a width x height rectangle in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//
// Returns:
//   - Mesh: the plane mesh (4 vertices, 2 triangles)
func Plane(width, height float32) Mesh {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	vertices := []Vertex{
		{Position: [3]float32{-hw, hh, 0}, Normal: n, UV: [2]float32{0, 0}, Color: white},
		{Position: [3]float32{-hw, -hh, 0}, Normal: n, UV: [2]float32{0, 1}, Color: white},
		{Position: [3]float32{hw, -hh, 0}, Normal: n, UV: [2]float32{1, 1}, Color: white},
		{Position: [3]float32{hw, hh, 0}, Normal: n, UV: [2]float32{1, 0}, Color: white},
	}
	return NewMesh(
		WithName("plane"),
		WithVertices(vertices),
		WithIndices([]uint32{0, 1, 3, 1, 2, 3}),
	)
}

// boxFace describes one face of a box: its outward normal and in-plane axes with u x v = normal.
type boxFace struct {
	normal, u, v mgl32.Vec3
}

var boxFaces = [6]boxFace{
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// Box creates an axis-aligned box centered on the origin. Each face has its own four
// vertices so normals and UVs are flat per face.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//
// Returns:
//   - Mesh: the box mesh (24 vertices, 12 triangles)
func Box(width, height, depth float32) Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range boxFaces {
		base := uint32(len(vertices))
		center := scale(f.normal, half)
		for _, c := range corners {
			p := center.Add(scale(f.u, half).Mul(c[0])).Add(scale(f.v, half).Mul(c[1]))
			vertices = append(vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				UV:       [2]float32{(c[0] + 1) / 2, 1 - (c[1]+1)/2},
				Color:    white,
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewMesh(
		WithName("box"),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// Cone creates a cone with its apex at +height/2 and a closed base at -height/2.
// Four radial segments give the pyramid used for the house roof.
//
// Parameters:
//   - radius: base radius
//   - height: apex-to-base height
//   - radialSegments: number of segments around the axis (minimum 3)
//
// Returns:
//   - Mesh: the cone mesh
func Cone(radius, height float32, radialSegments int) Mesh {
	radialSegments = max(radialSegments, 3)
	halfHeight := height / 2
	slope := radius / height

	var vertices []Vertex
	var indices []uint32

	// Torso: an apex ring and a base ring, duplicated per segment for per-face UVs.
	for y := range 2 {
		v := float32(y)
		r := v * radius
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := u * 2 * math32.Pi
			sin, cos := math32.Sincos(theta)
			n := mgl32.Vec3{sin, slope, cos}.Normalize()
			vertices = append(vertices, Vertex{
				Position: [3]float32{r * sin, -v*height + halfHeight, r * cos},
				Normal:   n,
				UV:       [2]float32{u, v},
				Color:    white,
			})
		}
	}
	row := uint32(radialSegments + 1)
	for x := range uint32(radialSegments) {
		b := row + x
		c := row + x + 1
		d := x + 1
		indices = append(indices, b, c, d)
	}

	// Base cap: one center vertex per segment, then the rim.
	centerStart := uint32(len(vertices))
	for range radialSegments {
		vertices = append(vertices, Vertex{
			Position: [3]float32{0, -halfHeight, 0},
			Normal:   [3]float32{0, -1, 0},
			UV:       [2]float32{0.5, 0.5},
			Color:    white,
		})
	}
	rimStart := uint32(len(vertices))
	for x := 0; x <= radialSegments; x++ {
		theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
		sin, cos := math32.Sincos(theta)
		vertices = append(vertices, Vertex{
			Position: [3]float32{radius * sin, -halfHeight, radius * cos},
			Normal:   [3]float32{0, -1, 0},
			UV:       [2]float32{cos*0.5 + 0.5, sin*0.5 + 0.5},
			Color:    white,
		})
	}
	for x := range uint32(radialSegments) {
		indices = append(indices, rimStart+x+1, rimStart+x, centerStart+x)
	}

	return NewMesh(
		WithName("cone"),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// Sphere creates a UV sphere centered on the origin.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: segments around the equator (minimum 3)
//   - heightSegments: segments from pole to pole (minimum 2)
//
// Returns:
//   - Mesh: the sphere mesh
func Sphere(radius float32, widthSegments, heightSegments int) Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	grid := make([][]uint32, 0, heightSegments+1)
	var vertices []Vertex
	var indices []uint32

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinV, cosV := math32.Sincos(v * math32.Pi)
		rowIdx := make([]uint32, 0, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinU, cosU := math32.Sincos(u * 2 * math32.Pi)
			n := mgl32.Vec3{-cosU * sinV, cosV, sinU * sinV}
			rowIdx = append(rowIdx, uint32(len(vertices)))
			vertices = append(vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				UV:       [2]float32{u, v},
				Color:    white,
			})
		}
		grid = append(grid, rowIdx)
	}

	for iy := range heightSegments {
		for ix := range widthSegments {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return NewMesh(
		WithName("sphere"),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// Axes creates three colored line segments from the origin: X red, Y green, Z blue.
//
// Parameters:
//   - size: length of each axis
//
// Returns:
//   - Mesh: a Lines mesh with 6 vertices
func Axes(size float32) Mesh {
	red := [4]float32{1, 0, 0, 1}
	green := [4]float32{0, 1, 0, 1}
	blue := [4]float32{0, 0, 1, 1}
	up := [3]float32{0, 1, 0}

	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: up, Color: red},
		{Position: [3]float32{size, 0, 0}, Normal: up, Color: red},
		{Position: [3]float32{0, 0, 0}, Normal: up, Color: green},
		{Position: [3]float32{0, size, 0}, Normal: up, Color: green},
		{Position: [3]float32{0, 0, 0}, Normal: up, Color: blue},
		{Position: [3]float32{0, 0, size}, Normal: up, Color: blue},
	}
	return NewMesh(
		WithName("axes"),
		WithTopology(Lines),
		WithVertices(vertices),
		WithIndices([]uint32{0, 1, 2, 3, 4, 5}),
	)
}

// scale multiplies two vectors component-wise.
func scale(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
