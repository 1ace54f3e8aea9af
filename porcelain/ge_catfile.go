package porcelain

import (
	"fmt"
	"strings"

	"github.com/brickster241/mygit/utils/types"
)

// resolveObject accepts a full object hash of any type, or a revision naming a commit.
func (r *Repository) resolveObject(name string) (types.Hash, error) {
	if hash, err := types.ParseHash(name); err == nil {
		if ok, err := r.objects.Exists(hash); err == nil && ok {
			return hash, nil
		}
	}
	return r.ResolveRevision(name)
}

// CatFile returns the type and raw payload of an object.
func (r *Repository) CatFile(name string) (types.ObjectType, []byte, error) {
	hash, err := r.resolveObject(name)
	if err != nil {
		return "", nil, err
	}
	return r.objects.ReadObject(hash)
}

// PrettyPrint renders an object based on its type: blob content, one line per tree child, or the commit headers and message.
func (r *Repository) PrettyPrint(name string) (string, error) {
	hash, err := r.resolveObject(name)
	if err != nil {
		return "", err
	}
	objType, payload, err := r.objects.ReadObject(hash)
	if err != nil {
		return "", err
	}

	switch objType {
	case types.BlobObject:
		blob, err := r.objects.ReadBlob(hash)
		if err != nil {
			return "", err
		}
		return string(blob.Content), nil
	case types.TreeObject:
		tree, err := r.objects.ReadTree(hash)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, child := range tree.Children {
			childType, childPayload, err := r.objects.ReadObject(child)
			if err != nil {
				return "", err
			}
			childName, _, _ := strings.Cut(string(childPayload), "\x00")
			fmt.Fprintf(&sb, "%s %s\t%s\n", childType, child, childName)
		}
		return sb.String(), nil
	default:
		return string(payload), nil
	}
}
