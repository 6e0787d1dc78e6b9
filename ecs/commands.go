package ecs

// Commands collects work that must wait until every system of the current
// frame has run, such as host operations that rebuild singletons the later
// systems are still reading.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run after every system has executed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs the queued functions in order and empties the buffer.
// Functions queued by a running function run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	clear(c.defers)
	c.defers = c.defers[:0]
}
