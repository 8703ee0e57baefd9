package inspector

import "github.com/mcncl/jsonshape/internal/models"

// ListMarker is appended to the path of a field produced while unwrapping an array.
const ListMarker = "<>"

// BuildPath joins a parent path and a key with "/". The root has an empty
// parent path; the key may be empty for an array at the document root.
func BuildPath(parentPath, key string) string {
	return parentPath + "/" + key
}

// ListPath marks path as one level of array unwrapping.
func ListPath(path string) string {
	return path + ListMarker
}

func parentPath(parent *models.ComplexNode) string {
	if parent == nil {
		return ""
	}
	return parent.Path
}

// assignPath sets the path and collection kind of a freshly created field.
func assignPath(f *models.FieldBase, parent *models.ComplexNode, key string, isArray bool) {
	f.Path = BuildPath(parentPath(parent), key)
	if isArray {
		f.Path = ListPath(f.Path)
		f.Collection = models.CollectionList
	} else {
		f.Collection = models.CollectionNone
	}
}
