package ports

// BrowserOpener opens published post URLs in the system browser
type BrowserOpener interface {
	// OpenPost opens {site.url}/blog/{slug}
	OpenPost(slug string) error

	// URL returns the address OpenPost would open
	URL(slug string) string
}
