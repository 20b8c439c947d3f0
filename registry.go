package cliapi

import "github.com/mwantia/cliapi/argtable"

// record binds a registered command to the parser table built from it.
type record struct {
	cmd      *Command
	table    *argtable.Table // nil for commands without arguments
	argCount int
}

// registry is the fixed capacity table of declared commands.
type registry struct {
	records  []record
	capacity int
}

func newRegistry(capacity int) *registry {
	return &registry{
		records:  make([]record, 0, capacity),
		capacity: capacity,
	}
}

func (r *registry) len() int {
	return len(r.records)
}

func (r *registry) full() bool {
	return len(r.records) >= r.capacity
}

func (r *registry) add(rec record) {
	r.records = append(r.records, rec)
}

func (r *registry) find(name string) *record {
	for i := range r.records {
		if r.records[i].cmd.Name == name {
			return &r.records[i]
		}
	}
	return nil
}

// reset releases every parser table and empties the registry.
func (r *registry) reset() {
	for i := range r.records {
		if r.records[i].table != nil {
			r.records[i].table.Free()
		}
	}

	clear(r.records)
	r.records = r.records[:0]
}
