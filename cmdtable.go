package plume

// cmdKind distinguishes the two callable variants in the command table.
type cmdKind uint8

const (
	cmdBuiltin cmdKind = iota
	cmdProc
)

// builtinFunc is the internal shape of every callable: the interpreter, the
// full argument vector (argv[0] is the command's own invocation name), and
// the command's opaque private data. The return value is the five-valued
// status; the result text lives in the interpreter.
type builtinFunc func(i *Interp, argv []string, priv any) Status

// command is one entry in the command table: either a built-in callable or
// a defined procedure holding its parameter-list and body text.
type command struct {
	name   string
	fn     builtinFunc // cmdBuiltin
	params string      // cmdProc
	body   string      // cmdProc
	priv   any
	kind   cmdKind
}

// commandBuckets is the fixed bucket count of the command table.
const commandBuckets = 128

// commandTable maps command names to their callable behavior: a fixed-size
// hash table with chained buckets, hashed with DJB2 over the name bytes.
type commandTable struct {
	buckets [commandBuckets][]*command
	count   int
}

func djb2(name string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(name); i++ {
		h = h*33 + uint32(name[i])
	}
	return h
}

// lookup returns the command bound to name, or nil.
func (t *commandTable) lookup(name string) *command {
	for _, c := range t.buckets[djb2(name)%commandBuckets] {
		if c.name == name {
			return c
		}
	}
	return nil
}

// insert binds a command, replacing any existing binding of the same name.
// Names stay unique in the table.
func (t *commandTable) insert(c *command) {
	bucket := djb2(c.name) % commandBuckets
	for idx, old := range t.buckets[bucket] {
		if old.name == c.name {
			t.buckets[bucket][idx] = c
			return
		}
	}
	t.buckets[bucket] = append(t.buckets[bucket], c)
	t.count++
}

// remove deletes the binding for name, reporting whether it existed.
func (t *commandTable) remove(name string) bool {
	bucket := djb2(name) % commandBuckets
	for idx, c := range t.buckets[bucket] {
		if c.name == name {
			chain := t.buckets[bucket]
			t.buckets[bucket] = append(chain[:idx], chain[idx+1:]...)
			t.count--
			return true
		}
	}
	return false
}

// each calls fn for every command in the table. Iteration order follows the
// bucket layout and is not sorted; callers sort if they need stable output.
func (t *commandTable) each(fn func(*command)) {
	for bucket := range t.buckets {
		for _, c := range t.buckets[bucket] {
			fn(c)
		}
	}
}
