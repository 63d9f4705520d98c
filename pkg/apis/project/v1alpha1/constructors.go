package v1alpha1

// NewProject creates a project configuration with API metadata set and an
// empty spec. Field defaults are applied by the configuration manager.
func NewProject() *Project {
	return &Project{
		APIVersion: APIVersion,
		Kind:       Kind,
		Spec:       Spec{},
	}
}
