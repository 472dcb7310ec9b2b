package content

// Repository is the read-only access contract for editorial articles.
type Repository interface {
	// List returns the articles of a section, newest first.
	List(kind Kind) []*Article

	// Get returns the article with the given slug within a section.
	Get(kind Kind, slug string) (*Article, bool)
}
