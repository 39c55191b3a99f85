package ontology

import "github.com/ylikuutio/ylikuutio/pkg/completion"

// Registry maps names to indexables and to entities. A name lives in at most
// one of the two maps, and the completion set always holds exactly the union
// of their keys. Every method is total: misses yield nil, false or empty.
type Registry struct {
	indexables  map[string]Indexable
	entities    map[string]Entity
	completable *completion.StringSet
}

func NewRegistry() *Registry {
	return &Registry{
		indexables:  make(map[string]Indexable),
		entities:    make(map[string]Entity),
		completable: completion.NewStringSet(),
	}
}

// AddIndexable registers name for indexable unless name is empty or taken.
func (r *Registry) AddIndexable(indexable Indexable, name string) bool {
	if indexable == nil || name == "" || r.IsName(name) {
		return false
	}
	r.indexables[name] = indexable
	r.completable.Insert(name)
	return true
}

// AddEntity registers name for entity unless name is empty or taken.
func (r *Registry) AddEntity(entity Entity, name string) bool {
	if entity == nil || name == "" || r.IsName(name) {
		return false
	}
	r.entities[name] = entity
	r.completable.Insert(name)
	return true
}

// EraseEntity removes an entity name. Indexable names are never erased.
func (r *Registry) EraseEntity(name string) bool {
	if _, ok := r.entities[name]; !ok {
		return false
	}
	delete(r.entities, name)
	r.completable.Erase(name)
	return true
}

// eraseEntityIfOwner removes name only if it currently maps to entity.
func (r *Registry) eraseEntityIfOwner(name string, entity Entity) bool {
	if current, ok := r.entities[name]; !ok || current != entity {
		return false
	}
	return r.EraseEntity(name)
}

func (r *Registry) IsName(name string) bool {
	return r.IsIndexable(name) || r.IsEntity(name)
}

func (r *Registry) IsIndexable(name string) bool {
	_, ok := r.indexables[name]
	return ok
}

func (r *Registry) IsEntity(name string) bool {
	_, ok := r.entities[name]
	return ok
}

func (r *Registry) GetEntity(name string) Entity {
	return r.entities[name]
}

func (r *Registry) GetIndexable(name string) Indexable {
	return r.indexables[name]
}

// GetIndexedEntity forwards to the Get of the indexable registered as name.
func (r *Registry) GetIndexedEntity(indexableName string, index int) Entity {
	indexable, ok := r.indexables[indexableName]
	if !ok {
		return nil
	}
	return indexable.Get(index)
}

// SetGlobalName gives entity a registry-wide name, replacing its previous
// one. An empty name only drops the old one. It fails if another owner
// holds the name.
func (r *Registry) SetGlobalName(entity Entity, name string) bool {
	if entity == nil {
		return false
	}
	b := entity.base()
	if name == b.globalName && (name == "" || r.GetEntity(name) == entity) {
		return true
	}
	if name != "" && r.IsName(name) {
		return false
	}
	if b.globalName != "" {
		r.eraseEntityIfOwner(b.globalName, entity)
	}
	b.globalName = ""
	if name == "" {
		return true
	}
	r.AddEntity(entity, name)
	b.globalName = name
	return true
}

// Complete returns input when no name has it as a prefix, the only match
// when there is one, and the longest common prefix of all matches otherwise.
func (r *Registry) Complete(input string) string {
	return r.completable.Complete(input)
}

func (r *Registry) GetCompletions(input string) []string {
	return r.completable.Completions(input)
}

func (r *Registry) GetNumberOfCompletions(input string) int {
	return r.completable.NumberOfCompletions(input)
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	return r.completable.Members()
}

func (r *Registry) Len() int {
	return r.completable.Len()
}
