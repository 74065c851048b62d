package valueobject

// Asset describes an image file on local disk.
type Asset struct {
	Path       string
	Format     Format
	Dimensions Dimensions
}

func NewAsset(path string, format Format, dims Dimensions) Asset {
	return Asset{
		Path:       path,
		Format:     format,
		Dimensions: dims,
	}
}
