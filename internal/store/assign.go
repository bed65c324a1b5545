package store

// AssignmentCache is the persisted list of grievance numbers the current
// officer has self-selected. It is a UI hint only; the server's
// assignment fields stay authoritative and the cache can lag behind
// them.
type AssignmentCache struct {
	storage Storage
}

func NewAssignmentCache(storage Storage) *AssignmentCache {
	return &AssignmentCache{storage: storage}
}

// List returns the cached grievance numbers, never nil.
func (c *AssignmentCache) List() []string {
	var ids []string
	if err := c.storage.Get(KeyAssigned, &ids); err != nil {
		return []string{}
	}
	if ids == nil {
		ids = []string{}
	}
	return ids
}

// Contains reports whether a grievance number is cached.
func (c *AssignmentCache) Contains(grvnNum string) bool {
	for _, id := range c.List() {
		if id == grvnNum {
			return true
		}
	}
	return false
}

// Add records a grievance number once.
func (c *AssignmentCache) Add(grvnNum string) {
	ids := c.List()
	for _, id := range ids {
		if id == grvnNum {
			return
		}
	}
	c.storage.Set(KeyAssigned, append(ids, grvnNum))
}

// Clear drops the whole cache.
func (c *AssignmentCache) Clear() {
	c.storage.Del(KeyAssigned)
}
