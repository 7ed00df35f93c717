package manifest

// Parser deserializes a capability manifest document.
type Parser interface {
	Parse(data []byte) (*Manifest, error)
}
