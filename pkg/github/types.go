// Package github adapts a fixed set of read operations and one write
// operation (issue creation) onto the GitHub REST API. GitHub owns all state.
package github

// Owner is the owning account of a repository.
type Owner struct {
	Login string `json:"login"`
}

// Repository is the summary shape returned by repository endpoints.
type Repository struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Owner       Owner  `json:"owner"`
	Private     bool   `json:"private"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	HTMLURL     string `json:"html_url"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// SearchResult is the envelope of /search/repositories.
type SearchResult struct {
	TotalCount int          `json:"total_count"`
	Items      []Repository `json:"items"`
}

// ContentEntry is one entry of a repository contents listing.
type ContentEntry struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int64  `json:"size"`
	HTMLURL  string `json:"html_url"`
	Content  string `json:"content,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// FileContents is a decoded file. Binary files carry the flag and no text,
// never raw bytes.
type FileContents struct {
	Path   string `json:"path"`
	Ref    string `json:"ref,omitempty"`
	Size   int64  `json:"size"`
	Binary bool   `json:"binary"`
	Text   string `json:"text,omitempty"`
}

// Issue is the shape returned after issue creation.
type Issue struct {
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	Body    string  `json:"body,omitempty"`
	State   string  `json:"state"`
	Labels  []Label `json:"labels,omitempty"`
	HTMLURL string  `json:"html_url"`
	User    *Owner  `json:"user,omitempty"`
}

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// User is the authenticated user's profile summary.
type User struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	PublicRepos int    `json:"public_repos"`
	HTMLURL     string `json:"html_url"`
}

// apiError is GitHub's error payload.
type apiError struct {
	Message string `json:"message"`
}

// issueRequest is the issue creation payload.
type issueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Labels []string `json:"labels,omitempty"`
}
