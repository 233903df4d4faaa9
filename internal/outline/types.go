package outline

// Collection is the named, described container of the document forest being exported.
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NavigationNode is one entry in the API-provided collection tree. It carries
// the title and identifier of a document plus its ordered children, independent
// of document content.
type NavigationNode struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Children []NavigationNode `json:"children"`
}

// Author identifies the creator of a document.
type Author struct {
	Name string `json:"name"`
}

// Document is the full content record for a single document.
type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	CreatedBy Author `json:"createdBy"`
}

// AuthInfo describes the authenticated principal, returned by auth.info.
type AuthInfo struct {
	User struct {
		Name string `json:"name"`
	} `json:"user"`
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
}
