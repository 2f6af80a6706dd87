package model

// Reference is an id+name pair pointing at an entity owned elsewhere
// (funding authority, region).
type Reference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
