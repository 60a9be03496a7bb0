package fakefs

// NodeType valid types are FileNodeType "file", DirNodeType "dir"
type NodeType string

const (
	FileNodeType NodeType = "file"
	DirNodeType  NodeType = "dir"
)

// String returns the human name used in diagnostics ("file" or "directory").
func (t NodeType) String() string {
	if t == DirNodeType {
		return "directory"
	}
	return string(t)
}
