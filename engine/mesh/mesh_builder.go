package mesh

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithLabel is an option builder that sets the debug label of the Mesh.
// When no label is provided, NewMesh generates a random UUID label.
//
// Parameters:
//   - label: the debug label to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the label option to a mesh
func WithLabel(label string) MeshBuilderOption {
	return func(m *mesh) {
		m.label = label
	}
}
