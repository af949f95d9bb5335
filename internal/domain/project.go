package domain

// Project groups a set of flags. Projects are seeded and never edited by the store.
type Project struct {
	ID   string
	Name string
}

// FindProject returns the project with the given id.
func FindProject(projects []Project, id string) (Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
