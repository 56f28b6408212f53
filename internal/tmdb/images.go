package tmdb

const (
	posterSize   = "w185"
	backdropSize = "w300"
)

// PosterURL builds the narrow poster URL for a TMDB image path. Returns nil
// when the provider supplied no path.
func (c *Client) PosterURL(path string) *string {
	return c.imageURL(posterSize, path)
}

// BackdropURL builds the wide backdrop URL for a TMDB image path. Returns nil
// when the provider supplied no path.
func (c *Client) BackdropURL(path string) *string {
	return c.imageURL(backdropSize, path)
}

func (c *Client) imageURL(size, path string) *string {
	if path == "" {
		return nil
	}
	if path[0] != '/' {
		path = "/" + path
	}
	u := c.imageBaseURL + "/" + size + path
	return &u
}
