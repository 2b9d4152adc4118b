package codec

import (
	"fmt"
	"strings"
)

// DefaultNamespace is substituted for any Identifier parsed from a string
// that carries no explicit "namespace:" prefix.
const DefaultNamespace = "minecraft"

// Identifier is a namespaced resource key, written on the wire as a
// VarInt-prefixed "namespace:key" string.
type Identifier struct {
	Namespace string
	Key       string
}

// NewIdentifier builds an Identifier, defaulting an empty namespace to
// DefaultNamespace.
func NewIdentifier(namespace, key string) Identifier {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return Identifier{Namespace: namespace, Key: key}
}

// ParseIdentifier splits "namespace:key" on the first colon. A string with
// no colon is taken to be a bare key in DefaultNamespace.
func ParseIdentifier(s string) Identifier {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return Identifier{Namespace: s[:i], Key: s[i+1:]}
	}
	return Identifier{Namespace: DefaultNamespace, Key: s}
}

func (id Identifier) String() string {
	return fmt.Sprintf("%s:%s", id.Namespace, id.Key)
}

// ReadIdentifier reads a string field and parses it as an Identifier.
func (b *ByteBuffer) ReadIdentifier() (Identifier, error) {
	s, err := b.ReadString()
	if err != nil {
		return Identifier{}, err
	}
	return ParseIdentifier(s), nil
}

// WriteIdentifier writes an Identifier as "namespace:key".
func (b *ByteBuffer) WriteIdentifier(id Identifier) {
	b.WriteString(id.String())
}
