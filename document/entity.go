package document

import "maps"

// Entity is out-of-band metadata attached to text ranges, e.g. a link URL.
// Entities are stored once in the Content registry and referenced by key.
type Entity struct {
	Type       EntityType
	Mutability Mutability
	data       map[string]string
}

// NewEntity builds an entity holding a copy of data.
func NewEntity(t EntityType, m Mutability, data map[string]string) Entity {
	return Entity{Type: t, Mutability: m, data: maps.Clone(data)}
}

// Data returns a copy of the entity data.
func (e Entity) Data() map[string]string {
	if e.data == nil {
		return map[string]string{}
	}
	return maps.Clone(e.data)
}

// Get returns one data value.
func (e Entity) Get(key string) string { return e.data[key] }

// URL returns the "url" data value of a link entity.
func (e Entity) URL() string { return e.data["url"] }

func (e Entity) equal(o Entity) bool {
	return e.Type == o.Type && e.Mutability == o.Mutability && maps.Equal(e.data, o.data)
}
