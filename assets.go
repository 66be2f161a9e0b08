package gamebook

import (
	"errors"
	"fmt"

	"github.com/alnah/go-gamebook/internal/assets"
)

// DefaultStyle is the name of the built-in stylesheet.
const DefaultStyle = assets.DefaultStyleName

// AssetLoader loads stylesheets for HTML and PDF output.
// Implementations may load from the filesystem, embedded files, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)
}

// styleLoader adapts the internal resolver to the public error set.
type styleLoader struct {
	resolver *assets.AssetResolver
}

// NewAssetLoader creates an AssetLoader for basePath.
// If basePath is empty, only the embedded styles are used; otherwise
// {basePath}/styles/{name}.css takes precedence over them.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return &styleLoader{resolver: resolver}, nil
}

func (l *styleLoader) LoadStyle(name string) (string, error) {
	css, err := l.resolver.LoadStyle(name)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
		}
		return "", err
	}
	return css, nil
}

// StyleNames lists the built-in style names.
func StyleNames() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}
