package plumbing

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/brickster241/mygit/utils/constants"
	"github.com/brickster241/mygit/utils/types"
)

// ObjectStore persists Blobs, Trees and Commits under objects/<hash> of the control directory.
// Objects are immutable, so decoded payloads are cached for the life of the store.
type ObjectStore struct {
	fs    billy.Filesystem
	cache *lru.Cache[types.Hash, rawObject]
}

type rawObject struct {
	objType types.ObjectType
	payload []byte
}

// NewObjectStore returns a store over fs, which must be rooted at the control directory.
func NewObjectStore(fs billy.Filesystem) *ObjectStore {
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[types.Hash, rawObject](constants.ObjectCacheSize)
	return &ObjectStore{fs: fs, cache: cache}
}

func objectPath(hash types.Hash) string {
	return path.Join(constants.ObjectsDir, hash.String())
}

// WriteObject stores payload under hash. If the object already exists, it is NOT rewritten.
func (s *ObjectStore) WriteObject(objType types.ObjectType, hash types.Hash, payload []byte) error {
	filePath := objectPath(hash)

	// If object already exists, do nothing
	ok, err := exists(s.fs, filePath)
	if err != nil {
		return IOError("stat", filePath, err)
	}
	if ok {
		return nil
	}

	// "<type> <size>\0<payload>"
	header := fmt.Sprintf("%s %d\x00", objType, len(payload))
	store := append([]byte(header), payload...)

	// Z-lib compress the object
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(store); err != nil {
		return IOError("compress", filePath, err)
	}
	if err := w.Close(); err != nil {
		return IOError("compress", filePath, err)
	}

	if err := writeFileAtomic(s.fs, filePath, buf.Bytes()); err != nil {
		return IOError("write", filePath, err)
	}
	s.cache.Add(hash, rawObject{objType: objType, payload: bytes.Clone(payload)})
	return nil
}

// ReadObject returns the type and payload of the object stored under hash. The payload is the
// caller's to modify; the cached copy is never handed out.
func (s *ObjectStore) ReadObject(hash types.Hash) (types.ObjectType, []byte, error) {
	if obj, ok := s.cache.Get(hash); ok {
		return obj.objType, bytes.Clone(obj.payload), nil
	}

	filePath := objectPath(hash)
	data, err := readFile(s.fs, filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("object %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return "", nil, IOError("read", filePath, err)
	}

	// Z-lib decompress
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("object %s: %w: %w", hash, ErrDeserialization, err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, fmt.Errorf("object %s: %w: %w", hash, ErrDeserialization, err)
	}

	// Split Header, Content -> then Header to parts
	nullIdx := bytes.IndexByte(raw, 0)
	if nullIdx == -1 {
		return "", nil, fmt.Errorf("object %s: %w: missing header", hash, ErrDeserialization)
	}
	parts := strings.Split(string(raw[:nullIdx]), " ")
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("object %s: %w: invalid header", hash, ErrDeserialization)
	}
	objType := types.ObjectType(parts[0])
	size, err := strconv.Atoi(parts[1])
	if !objType.Valid() || err != nil || size != len(raw)-nullIdx-1 {
		return "", nil, fmt.Errorf("object %s: %w: invalid header %q", hash, ErrDeserialization, raw[:nullIdx])
	}

	payload := raw[nullIdx+1:]
	s.cache.Add(hash, rawObject{objType: objType, payload: payload})
	return objType, bytes.Clone(payload), nil
}

// Exists reports whether an object is stored under hash.
func (s *ObjectStore) Exists(hash types.Hash) (bool, error) {
	if s.cache.Contains(hash) {
		return true, nil
	}
	ok, err := exists(s.fs, objectPath(hash))
	if err != nil {
		return false, IOError("stat", objectPath(hash), err)
	}
	return ok, nil
}

// readTyped reads hash and checks it holds an object of the wanted type.
func (s *ObjectStore) readTyped(hash types.Hash, want types.ObjectType) ([]byte, error) {
	objType, payload, err := s.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	if objType != want {
		return nil, fmt.Errorf("object %s is a %s, not a %s: %w", hash, objType, want, ErrDeserialization)
	}
	return payload, nil
}

// WriteBlob stores a blob as "<name>\0<content>".
func (s *ObjectStore) WriteBlob(blob *types.Blob) (types.Hash, error) {
	hash := blob.Hash()
	payload := make([]byte, 0, len(blob.Name)+1+len(blob.Content))
	payload = append(payload, blob.Name...)
	payload = append(payload, 0)
	payload = append(payload, blob.Content...)
	if err := s.WriteObject(types.BlobObject, hash, payload); err != nil {
		return types.ZeroHash, err
	}
	return hash, nil
}

func (s *ObjectStore) ReadBlob(hash types.Hash) (*types.Blob, error) {
	payload, err := s.readTyped(hash, types.BlobObject)
	if err != nil {
		return nil, err
	}
	return decodeBlob(hash, payload)
}

func decodeBlob(hash types.Hash, payload []byte) (*types.Blob, error) {
	nullIdx := bytes.IndexByte(payload, 0)
	if nullIdx == -1 {
		return nil, fmt.Errorf("blob %s: %w: missing name", hash, ErrDeserialization)
	}
	return &types.Blob{
		Name:    string(payload[:nullIdx]),
		Content: payload[nullIdx+1:],
	}, nil
}
