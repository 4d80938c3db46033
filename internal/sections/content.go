package sections

// FeatureItem is one entry of the feature grid.
type FeatureItem struct {
	Title string
	Body  string
}

// Post is a blog teaser.
type Post struct {
	Title   string
	Date    string
	Summary string
}

// Member is a team member card.
type Member struct {
	Name string
	Role string
}

var Features = []FeatureItem{
	{Title: "Nested routes", Body: "One layout, many pages. Every section renders inside the same shell."},
	{Title: "Partial navigation", Body: "Links swap only the outlet, the rest of the page stays put."},
	{Title: "Server rendered", Body: "Each path is a real URL that renders without scripts."},
}

var Posts = []Post{
	{Title: "Routing under a base path", Date: "2024-03-02", Summary: "Serving a site below a fixed prefix without rewriting every link."},
	{Title: "Layouts and outlets", Date: "2024-02-11", Summary: "How a parent page wraps whatever child matched the request."},
	{Title: "Hello, world", Date: "2024-01-20", Summary: "The first post."},
}

var Members = []Member{
	{Name: "Ada", Role: "Engineering"},
	{Name: "Grace", Role: "Design"},
	{Name: "Linus", Role: "Operations"},
}
